package port

import (
	"context"

	"walletctl/internal/domain/entity"
)

// CustodyClient defines the interface for interacting with the remote
// wallet-custody service. Every call returns a fresh snapshot; the client
// never caches and never mutates previously returned values.
type CustodyClient interface {
	// ListWallets fetches all wallets known to the custody service.
	ListWallets(ctx context.Context) ([]entity.WalletSnapshot, error)

	// GetWallet fetches one wallet's authoritative state, balances included.
	GetWallet(ctx context.Context, walletID string) (entity.WalletSnapshot, error)

	// CreateWallet creates a wallet on the named network.
	CreateWallet(ctx context.Context, network string) (entity.WalletSnapshot, error)

	// RequestFaucet asks the service to seed a test-network wallet with a
	// small amount of test asset.
	RequestFaucet(ctx context.Context, walletID string) error

	// CreateTransfer submits a transfer. The call is made exactly once per
	// invocation; callers never retry it.
	CreateTransfer(ctx context.Context, walletID string, sub entity.TransferSubmission) (entity.TransferSnapshot, error)

	// GetTransfer fetches the current state of an in-flight transfer.
	GetTransfer(ctx context.Context, walletID, transferID string) (entity.TransferSnapshot, error)

	// ListTransfers fetches the transfer history of a wallet.
	ListTransfers(ctx context.Context, walletID string) ([]entity.TransferSnapshot, error)
}
