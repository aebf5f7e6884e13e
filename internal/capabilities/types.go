package capabilities

// ModelCapabilities holds the metadata for a specific model.
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	// Display information
	DisplayName string `yaml:"display_name" json:"display_name"`

	// Core capabilities
	SupportsTools bool `yaml:"supports_tools" json:"supports_tools"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`
}

// ProviderCapabilities holds all models for a provider.
type ProviderCapabilities struct {
	Provider string                       `yaml:"provider" json:"provider"`
	Models   map[string]ModelCapabilities `yaml:"models" json:"models"`
}
