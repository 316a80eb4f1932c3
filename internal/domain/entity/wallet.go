package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WalletRecord is the locally persisted mapping for a wallet this operator
// knows about: one record per address, written on creation and immutable
// afterwards. It is metadata only and never authoritative for remote state.
type WalletRecord struct {
	Address  string `json:"address"`
	Network  string `json:"network"`
	WalletID string `json:"wallet_id"`
}

// WalletSnapshot is an immutable projection of a custody-service wallet taken
// at fetch time. Anything that depends on current balances or signing
// capability must operate on a freshly fetched snapshot, not one obtained
// earlier in the invocation.
type WalletSnapshot struct {
	ID                 string                     `json:"id"`
	Network            string                     `json:"network"`
	DefaultAddress     string                     `json:"default_address"`
	CanSign            bool                       `json:"can_sign"`
	ServerSignerStatus string                     `json:"server_signer_status"`
	Balances           map[string]decimal.Decimal `json:"balances"`
}

// BalanceOf returns the snapshot balance for an asset symbol, zero when the
// wallet holds none of it. Asset symbols are matched case-insensitively.
func (w WalletSnapshot) BalanceOf(asset string) decimal.Decimal {
	if b, ok := w.Balances[strings.ToLower(asset)]; ok {
		return b
	}
	return decimal.Zero
}

// WalletInspection bundles everything show-balance renders for one wallet:
// the local record metadata, the refreshed remote snapshot and the transfer
// history of the wallet's default address.
type WalletInspection struct {
	Record    WalletRecord       `json:"record"`
	Snapshot  WalletSnapshot     `json:"snapshot"`
	Transfers []TransferSnapshot `json:"transfers"`
}
