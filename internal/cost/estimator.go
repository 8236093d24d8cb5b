// Package cost converts function source into dollar estimates and keeps the
// running totals for a scan.
package cost

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts the tokens a piece of text would consume. The default
// implementation uses tiktoken; tests inject a deterministic counter.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// heuristicCounter approximates tokens as one per four bytes, the usual rule
// of thumb when no encoder is available for the model.
type heuristicCounter struct{}

func (heuristicCounter) Count(text string) int {
	return (len(text) + 3) / 4
}

// Estimator prices a function's source ahead of a generation request. Pure
// and deterministic; it never performs I/O.
type Estimator struct {
	counter    TokenCounter
	rate       float64 // dollars per token
	multiplier float64 // pads for the unknown response, always >= 1
}

// NewEstimator builds an estimator for the given model. When no tiktoken
// encoding is known for the model it falls back to a byte heuristic.
func NewEstimator(model string, rate, multiplier float64) *Estimator {
	var counter TokenCounter
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		counter = &tiktokenCounter{enc: enc}
	} else {
		slog.Warn("no token encoding for model, using byte heuristic", "model", model)
		counter = heuristicCounter{}
	}
	return NewEstimatorWithCounter(counter, rate, multiplier)
}

// NewEstimatorWithCounter builds an estimator around an explicit counter.
func NewEstimatorWithCounter(counter TokenCounter, rate, multiplier float64) *Estimator {
	if multiplier < 1 {
		multiplier = 1
	}
	return &Estimator{counter: counter, rate: rate, multiplier: multiplier}
}

// Estimate returns an upper-bound dollar estimate for generating a docstring
// for the given function source. The request tokens are counted; the response
// is unknown, hence the multiplier.
func (e *Estimator) Estimate(functionSource string) float64 {
	return float64(e.counter.Count(functionSource)) * e.rate * e.multiplier
}

// Rate returns the dollars-per-token rate the estimator was built with.
func (e *Estimator) Rate() float64 {
	return e.rate
}
