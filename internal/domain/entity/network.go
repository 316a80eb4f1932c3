package entity

import "strings"

// NetworkDefinition holds the configuration for a custody-service network.
// This structure is defined at the domain level to be used across application
// and infrastructure layers.
type NetworkDefinition struct {
	Identifier   string `json:"identifier" yaml:"identifier"`
	Name         string `json:"name" yaml:"name"`
	NativeSymbol string `json:"nativeSymbol" yaml:"nativeSymbol"`
	// TestNetwork marks designated test networks. Newly created wallets on a
	// test network get a best-effort faucet funding attempt.
	TestNetwork      bool   `json:"testNetwork" yaml:"testNetwork"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// ExplorerTxURL builds a block-explorer link for a transaction hash, empty
// when the network has no configured explorer.
func (d NetworkDefinition) ExplorerTxURL(txHash string) string {
	if d.BlockExplorerURL == "" || txHash == "" {
		return ""
	}
	return strings.TrimRight(d.BlockExplorerURL, "/") + "/tx/" + txHash
}
