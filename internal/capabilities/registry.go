package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry manages model capabilities across providers.
type Registry struct {
	providers map[string]*ProviderCapabilities
	mu        sync.RWMutex
}

// NewRegistry creates a new capability registry and loads embedded YAML files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderCapabilities),
	}

	if err := r.loadProviderFile("anthropic"); err != nil {
		return nil, fmt.Errorf("failed to load anthropic capabilities: %w", err)
	}

	return r, nil
}

// loadProviderFile loads a provider's capability YAML file.
func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var providerCaps ProviderCapabilities
	if err := yaml.Unmarshal(data, &providerCaps); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	for id, model := range providerCaps.Models {
		model.ID = id
		providerCaps.Models[id] = model
	}

	r.mu.Lock()
	r.providers[provider] = &providerCaps
	r.mu.Unlock()

	return nil
}

// GetModelCapabilities returns capabilities for a specific model.
func (r *Registry) GetModelCapabilities(provider, model string) (*ModelCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providerCaps, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	caps, ok := providerCaps.Models[model]
	if !ok {
		return nil, fmt.Errorf("unknown model %s for provider %s", model, provider)
	}

	return &caps, nil
}

// MaxOutputTokens returns the output token budget for a model, or the
// fallback when the model is not in the registry.
func (r *Registry) MaxOutputTokens(provider, model string, fallback int) int {
	caps, err := r.GetModelCapabilities(provider, model)
	if err != nil || caps.MaxOutput <= 0 {
		return fallback
	}
	return caps.MaxOutput
}

// SupportsTools reports whether a model handles tool use. Unknown models are
// assumed to support it.
func (r *Registry) SupportsTools(provider, model string) bool {
	caps, err := r.GetModelCapabilities(provider, model)
	if err != nil {
		return true
	}
	return caps.SupportsTools
}
