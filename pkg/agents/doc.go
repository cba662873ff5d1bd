// Package agents holds the SmartCart domain agents (customer, product,
// recommendation, assistant and voice) and the prompt catalog they render.
//
// Every method runs one registered operation through agent.Execute, except
// Recommend, which fans out match scoring and explanations, and the voice
// agent, which transcribes before replying.
package agents
