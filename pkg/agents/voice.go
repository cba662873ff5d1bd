package agents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/agent"
)

// ErrNoSpeech is reported when a recording transcribes to nothing.
var ErrNoSpeech = errors.New("agents: no speech in recording")

// VoiceAgent answers spoken questions: it transcribes the recording and
// replies to the transcript as a chat message.
type VoiceAgent struct {
	stt       llm.Transcriber
	assistant *AssistantAgent
}

// NewVoiceAgent answers recordings transcribed by stt through assistant.
func NewVoiceAgent(stt llm.Transcriber, assistant *AssistantAgent) *VoiceAgent {
	return &VoiceAgent{stt: stt, assistant: assistant}
}

// Respond transcribes audio and replies. A failed or empty transcription is
// a *agent.GenerationError, as is a failed reply.
func (v *VoiceAgent) Respond(ctx context.Context, customerID string, audio []byte, mimeType string) (VoiceResponse, error) {
	text, err := v.stt.Transcribe(ctx, audio, mimeType)
	if err == nil && text == "" {
		err = ErrNoSpeech
	}
	if err != nil {
		v.assistant.agent.Logger().ErrorContext(ctx, "transcription failed", "error", err)
		return VoiceResponse{}, &agent.GenerationError{Operation: "transcribe", InvocationID: uuid.NewString(), Err: err}
	}
	reply, err := v.assistant.Reply(ctx, customerID, text)
	if err != nil {
		return VoiceResponse{Transcript: text}, err
	}
	return VoiceResponse{Transcript: text, Response: reply}, nil
}
