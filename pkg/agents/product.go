package agents

import (
	"context"

	"github.com/nawi-n/SmartCart/pkg/agent"
)

// ProductAgent profiles products and relates them to personas.
type ProductAgent struct {
	agent *agent.Agent
}

// NewProductAgent creates a ProductAgent.
func NewProductAgent(a *agent.Agent) *ProductAgent { return &ProductAgent{agent: a} }

// GenerateProfile builds a marketing profile from any JSON-encodable product record.
func (p *ProductAgent) GenerateProfile(ctx context.Context, product any) (ProductProfile, error) {
	return agent.Execute(ctx, p.agent, generateProductProfile, agent.Context{"product": product})
}

// MatchWithPersona rates how well profile fits persona.
func (p *ProductAgent) MatchWithPersona(ctx context.Context, profile ProductProfile, persona Persona) (PersonaMatch, error) {
	return agent.Execute(ctx, p.agent, matchWithPersona, agent.Context{
		"profile": profile,
		"persona": persona,
	})
}

// Story writes a short product-page story. Falls back to Apology.
func (p *ProductAgent) Story(ctx context.Context, product any) (string, error) {
	return agent.Execute(ctx, p.agent, generateProductStory, agent.Context{"product": product})
}

// SeasonalPerformance estimates how product sells across seasons and holidays.
func (p *ProductAgent) SeasonalPerformance(ctx context.Context, product any) (SeasonalPerformance, error) {
	return agent.Execute(ctx, p.agent, analyzeSeasonalPerformance, agent.Context{"product": product})
}
