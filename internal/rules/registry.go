// Package rules manages registration of the formatting operation providers.
package rules

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
)

var providers []formatter.Provider

// Register adds a provider to the registry.
// Providers are consulted in the order they are registered; a later
// provider wins ties against an earlier one.
func Register(p formatter.Provider) {
	providers = append(providers, p)
}

// Providers returns all registered providers in consultation order.
func Providers() []formatter.Provider {
	return providers
}

// Names returns the names of the registered providers in order.
func Names() []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}
