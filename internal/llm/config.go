// Package llm provides the model client abstraction and its Gemini
// implementation.
package llm

// Provider identifies an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider, the only one wired today.
const ProviderGemini Provider = "gemini"

// DefaultModel is the model used for grounded roadmap generation unless
// overridden by configuration. Grounded generation needs the strongest
// reasoning tier: it must follow the citation contract while using the
// search tool.
const DefaultModel = "gemini-2.5-pro"

// Config selects the provider and the model for grounded generation.
type Config struct {
	Provider Provider
	Model    string
}

// DefaultConfig returns the Gemini configuration with the default model.
func DefaultConfig() *Config {
	return &Config{Provider: ProviderGemini, Model: DefaultModel}
}

// WithModel returns a copy of the config using the given model.
func (c *Config) WithModel(model string) *Config {
	return &Config{Provider: c.Provider, Model: model}
}
