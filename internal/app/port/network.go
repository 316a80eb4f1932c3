package port

import "walletctl/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its
	// identifier. Returns the definition and true when found, false otherwise.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}
