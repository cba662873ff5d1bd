package assembler

import (
	tiktoken "github.com/pkoukk/tiktoken-go"
)

// NewTikTokenEstimator returns a TokenEstimator backed by tiktoken-go for the given model.
// If the model is unknown, EncodingForModel returns an error.
func NewTikTokenEstimator(model string) (TokenEstimator, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, err
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}, nil
}

// EstimatorFor returns the tiktoken estimator for model, or RuneEstimator
// when the encoding cannot be loaded (e.g. offline).
func EstimatorFor(model string) TokenEstimator {
	if model == "" {
		return RuneEstimator
	}
	est, err := NewTikTokenEstimator(model)
	if err != nil {
		return RuneEstimator
	}
	return est
}
