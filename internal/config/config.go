package config

import (
	"fmt"
	"time"
)

// Defaults mirror the behaviour of earlier releases: a small chat model, the
// published per-token rate for it, and a padding multiplier because the
// response size is unknown at estimation time.
const (
	DefaultModel          = "gpt-4o-mini"
	DefaultTokenRate      = 0.002 / 1000 // dollars per token
	DefaultCostMultiplier = 1.5
	DefaultTimeout        = 20 * time.Second
	DefaultWorkers        = 8
)

// Config carries every knob the scanner needs. It is built once in main and
// handed to the services explicitly; nothing reads package-level state.
type Config struct {
	// TargetDir is the directory to scan. Required.
	TargetDir string

	// DryRun estimates cost without contacting the provider or writing files.
	DryRun bool

	// Verbosity is 0..3 (error, warn, info, debug).
	Verbosity int

	// Provider selects the chat backend: openai, anthropic or gemini.
	Provider string

	// Model is the provider-side model name.
	Model string

	// APIKey authenticates against the selected provider.
	APIKey string

	// Timeout bounds each generation request.
	Timeout time.Duration

	// TokenRate is the dollars-per-token rate used for accounting.
	TokenRate float64

	// CostMultiplier pads dry-run estimates to cover the unknown response.
	// Must be at least 1.
	CostMultiplier float64

	// Workers bounds the generation pool per file.
	Workers int

	// Only restricts the scan to files matching a recursive glob (supports **).
	// Empty means every .py file under TargetDir.
	Only string
}

// Validate rejects configurations the scanner cannot run with.
func (c *Config) Validate() error {
	if c.TargetDir == "" {
		return fmt.Errorf("target directory is required")
	}
	if c.Verbosity < 0 || c.Verbosity > 3 {
		return fmt.Errorf("verbosity must be between 0 and 3, got %d", c.Verbosity)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.TokenRate < 0 {
		return fmt.Errorf("token rate cannot be negative, got %g", c.TokenRate)
	}
	if c.CostMultiplier < 1 {
		return fmt.Errorf("cost multiplier must be at least 1, got %g", c.CostMultiplier)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.Workers)
	}
	if !c.DryRun && c.APIKey == "" {
		return fmt.Errorf("API key for %s is not configured", c.Provider)
	}
	return nil
}

// New returns a Config populated with defaults. Flags and environment
// overrides are layered on top by the caller.
func New() *Config {
	return &Config{
		Provider:       "openai",
		Model:          DefaultModel,
		Timeout:        DefaultTimeout,
		TokenRate:      DefaultTokenRate,
		CostMultiplier: DefaultCostMultiplier,
		Workers:        DefaultWorkers,
	}
}
