// Package llm provides the capability-provider client abstraction and its
// configuration. Stages depend only on the narrow Client interface so they
// can be tested against deterministic stubs.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: entity extraction, structured output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: rewriting, gap planning.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config holds the provider and model configuration.
//
// Retry policy lives here and nowhere else: stages make at most one logical
// attempt per run, and any retrying of transient provider failures is the
// client's responsibility.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	MaxAttempts int           // attempts per call, minimum 1
	RetryDelay  time.Duration // delay between attempts
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		MaxAttempts: 2,
		RetryDelay:  2 * time.Second,
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier's model replaced.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)),
		MaxAttempts: c.MaxAttempts,
		RetryDelay:  c.RetryDelay,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
