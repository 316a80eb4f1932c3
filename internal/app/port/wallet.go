package port

import (
	"context"

	"walletctl/internal/domain/entity"
)

// WalletDirectory resolves wallet addresses to live custody-service wallets.
type WalletDirectory interface {
	// ResolveByAddress finds the wallet whose default address equals the
	// given address. Fails with entity.NotFoundError when the service does
	// not know the address, regardless of any local record.
	ResolveByAddress(ctx context.Context, address string) (entity.WalletSnapshot, error)

	// Refresh fetches a new authoritative snapshot for a wallet. Must be
	// called immediately before any balance-dependent decision.
	Refresh(ctx context.Context, walletID string) (entity.WalletSnapshot, error)
}

// RecordStore persists the local wallet records, one per address.
type RecordStore interface {
	// Save writes the record keyed by address, silently overwriting any
	// existing record for the same address.
	Save(record entity.WalletRecord) error

	// Load fetches the record for an address, failing with
	// entity.NotFoundError when none exists.
	Load(address string) (entity.WalletRecord, error)
}

// WalletService covers the wallet-level operations exposed by the CLI and
// the read-only HTTP surface.
type WalletService interface {
	// Create creates a wallet on the configured network, persists its local
	// record and, on test networks, makes a best-effort faucet request.
	Create(ctx context.Context) (entity.CreateWalletResult, error)

	// List fetches all wallets known to the custody service with refreshed
	// balances.
	List(ctx context.Context) ([]entity.WalletSnapshot, error)

	// Inspect fetches the local record, refreshed remote state and transfer
	// history for one wallet address.
	Inspect(ctx context.Context, address string) (entity.WalletInspection, error)
}
