// Package agent implements prompt-templated LLM operations with strict
// decoding and per-operation fallbacks.
//
// An Operation pairs a prompt template with a decoder and a fallback. Execute
// renders the template from a caller-supplied Context, sends the prompt to a
// Completer exactly once, and decodes the raw reply into the operation's
// result type:
//
//   - A reply that decodes is returned as-is.
//   - A reply that does not decode yields the operation's fallback.
//   - A provider failure or timeout yields the fallback for lenient
//     operations and a *GenerationError for strict ones.
//
// There are no retries and no result caching. Every value an operation
// returns conforms to the JSON Schema derived from its result type; the
// Registry checks each fallback against that schema at registration time.
//
// Example usage:
//
//	score := agent.Operation[float64]{
//		Name:     "calculate_match_score",
//		Decode:   agent.Score(),
//		Fallback: agent.Constant(0.5),
//	}
//	v, err := agent.Execute(ctx, a, score, agent.Context{"persona": p, "product": prod})
package agent
