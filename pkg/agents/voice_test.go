package agents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm/fake"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceRespond(t *testing.T) {
	f := fake.New("It ships tomorrow.")
	v := agents.NewVoiceAgent(fake.Transcriber{Text: "where is my order"}, agents.NewAssistantAgent(newAgent(t, f)))

	got, err := v.Respond(context.Background(), "c-1", []byte("RIFF"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, agents.VoiceResponse{Transcript: "where is my order", Response: "It ships tomorrow."}, got)
	assert.Contains(t, f.LastPrompt(), `"where is my order"`)
}

func TestVoiceRespond_TranscriptionFailure(t *testing.T) {
	boom := errors.New("unsupported audio")
	for _, stt := range []fake.Transcriber{{Err: boom}, {Text: ""}} {
		f := fake.New("unused")
		v := agents.NewVoiceAgent(stt, agents.NewAssistantAgent(newAgent(t, f)))

		_, err := v.Respond(context.Background(), "c-1", []byte("RIFF"), "audio/wav")
		var ge *agent.GenerationError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "transcribe", ge.Operation)
		assert.Zero(t, f.Calls())
	}
}

func TestVoiceRespond_ReplyFailureKeepsTranscript(t *testing.T) {
	f := fake.WithReplies(fake.Reply{Err: errors.New("down")})
	v := agents.NewVoiceAgent(fake.Transcriber{Text: "hello"}, agents.NewAssistantAgent(newAgent(t, f)))
	got, err := v.Respond(context.Background(), "c-1", nil, "")
	assert.True(t, agent.IsGenerationError(err))
	assert.Equal(t, "hello", got.Transcript)
}
