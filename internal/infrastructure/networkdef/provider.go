package networkdef

import (
	"fmt"
	"os"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	networkDefs    map[string]entity.NetworkDefinition
	orderedDefs    []entity.NetworkDefinition
}

// Predefined network definitions. A yaml definitions file extends or
// overrides these; without one, these are the networks the tool knows.
var ( //nolint:gochecknoglobals // Global for definitions
	BaseSepolia = entity.NetworkDefinition{
		Identifier:       "base-sepolia",
		Name:             "Base Sepolia",
		NativeSymbol:     "ETH",
		TestNetwork:      true,
		BlockExplorerURL: "https://sepolia.basescan.org",
	}
	BaseMainnet = entity.NetworkDefinition{
		Identifier:       "base-mainnet",
		Name:             "Base Mainnet",
		NativeSymbol:     "ETH",
		TestNetwork:      false,
		BlockExplorerURL: "https://basescan.org",
	}
	EthereumSepolia = entity.NetworkDefinition{
		Identifier:       "ethereum-sepolia",
		Name:             "Ethereum Sepolia",
		NativeSymbol:     "ETH",
		TestNetwork:      true,
		BlockExplorerURL: "https://sepolia.etherscan.io",
	}
	EthereumMainnet = entity.NetworkDefinition{
		Identifier:       "ethereum-mainnet",
		Name:             "Ethereum Mainnet",
		NativeSymbol:     "ETH",
		TestNetwork:      false,
		BlockExplorerURL: "https://etherscan.io",
	}
	PolygonMainnet = entity.NetworkDefinition{
		Identifier:       "polygon-mainnet",
		Name:             "Polygon PoS",
		NativeSymbol:     "MATIC",
		TestNetwork:      false,
		BlockExplorerURL: "https://polygonscan.com",
	}
	ArbitrumMainnet = entity.NetworkDefinition{
		Identifier:       "arbitrum-mainnet",
		Name:             "Arbitrum One",
		NativeSymbol:     "ETH",
		TestNetwork:      false,
		BlockExplorerURL: "https://arbiscan.io",
	}
)

// builtinDefinitions is a helper to quickly access all predefined definitions.
var builtinDefinitions = []entity.NetworkDefinition{
	BaseSepolia,
	BaseMainnet,
	EthereumSepolia,
	EthereumMainnet,
	PolygonMainnet,
	ArbitrumMainnet,
}

// definitionsFile is the yaml shape of an external definitions file.
type definitionsFile struct {
	Networks []entity.NetworkDefinition `yaml:"networks"`
}

// NewNetworkDefinitionProvider creates a provider seeded with the builtin
// definitions. When definitionsPath is non-empty the yaml file at that path
// is loaded on top; entries with a known identifier override the builtin,
// new identifiers are appended.
func NewNetworkDefinitionProvider(log port.Logger, definitionsPath string) (*NetworkDefinitionProvider, error) {
	p := &NetworkDefinitionProvider{
		logger:      log,
		networkDefs: make(map[string]entity.NetworkDefinition),
	}
	for _, def := range builtinDefinitions {
		p.add(def)
	}

	if definitionsPath == "" {
		p.logger.Debug("No network definitions file configured, using builtin definitions",
			"count", len(p.orderedDefs))
		return p, nil
	}

	data, err := os.ReadFile(definitionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read network definitions file %s: %w", definitionsPath, err)
	}

	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network definitions from %s: %w", definitionsPath, err)
	}

	for _, def := range file.Networks {
		if def.Identifier == "" {
			p.logger.Warn("Skipping network definition without identifier", "file", definitionsPath)
			continue
		}
		p.add(def)
	}

	p.logger.Info("Network definitions loaded", "file", definitionsPath, "count", len(p.orderedDefs))
	return p, nil
}

func (p *NetworkDefinitionProvider) add(def entity.NetworkDefinition) {
	if _, exists := p.networkDefs[def.Identifier]; exists {
		for i, d := range p.orderedDefs {
			if d.Identifier == def.Identifier {
				p.orderedDefs[i] = def
				break
			}
		}
	} else {
		p.orderedDefs = append(p.orderedDefs, def)
	}
	p.networkDefs[def.Identifier] = def
}

// GetAllNetworkDefinitions returns all known network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.orderedDefs))
	copy(defsCopy, p.orderedDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns a specific network definition by its
// identifier. Returns the definition and true when found, false otherwise.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.networkDefs[identifier]
	return def, ok
}
