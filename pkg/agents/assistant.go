package agents

import (
	"context"

	"github.com/nawi-n/SmartCart/pkg/agent"
)

// AssistantAgent answers customers directly. Its conversational methods
// return *agent.GenerationError instead of canned text when the model fails.
type AssistantAgent struct {
	agent *agent.Agent
}

// NewAssistantAgent creates an AssistantAgent.
func NewAssistantAgent(a *agent.Agent) *AssistantAgent { return &AssistantAgent{agent: a} }

// Reply answers a chat message.
func (s *AssistantAgent) Reply(ctx context.Context, customerID, message string) (string, error) {
	return agent.Execute(ctx, s.agent, chatReply, agent.Context{
		"customer_id": customerID,
		"message":     message,
	})
}

// AnswerProduct answers a question about one product.
func (s *AssistantAgent) AnswerProduct(ctx context.Context, product any, query string) (string, error) {
	return agent.Execute(ctx, s.agent, answerProductQuery, agent.Context{
		"product": product,
		"query":   query,
	})
}

// AnswerRecommendation answers a question about what to buy.
func (s *AssistantAgent) AnswerRecommendation(ctx context.Context, customer any, query string) (string, error) {
	return agent.Execute(ctx, s.agent, answerRecommendationQuery, agent.Context{
		"customer": customer,
		"query":    query,
	})
}

// Sentiment scores the emotions in text. Failures yield all-zero scores.
func (s *AssistantAgent) Sentiment(ctx context.Context, text string) (Sentiment, error) {
	return agent.Execute(ctx, s.agent, analyzeSentiment, agent.Context{"text": text})
}
