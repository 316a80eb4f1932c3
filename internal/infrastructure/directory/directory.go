package directory

import (
	"context"
	"strings"
	"time"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"

	"github.com/patrickmn/go-cache"
)

const walletListCacheKey = "wallet_list"

// WalletDirectory implements port.WalletDirectory over the custody client.
// Address resolution fetches the full wallet list and linear-scans for the
// matching default address: correctness over efficiency, acceptable because
// wallet counts here are operator-scale. The list is cached briefly so a
// single invocation touching several wallets does not refetch it; Refresh
// always bypasses the cache.
type WalletDirectory struct {
	custody   port.CustodyClient
	logger    port.Logger
	listCache *cache.Cache
}

var _ port.WalletDirectory = (*WalletDirectory)(nil)

// NewWalletDirectory creates a directory with the given wallet-list cache TTL.
func NewWalletDirectory(custody port.CustodyClient, logger port.Logger, cacheTTL time.Duration) *WalletDirectory {
	return &WalletDirectory{
		custody:   custody,
		logger:    logger,
		listCache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// ResolveByAddress finds the wallet whose default address equals the given
// address, failing with entity.NotFoundError when the custody service does
// not know it. The returned snapshot carries no balances; callers must
// Refresh before any balance-dependent decision.
func (d *WalletDirectory) ResolveByAddress(ctx context.Context, address string) (entity.WalletSnapshot, error) {
	wallets, err := d.listWallets(ctx)
	if err != nil {
		return entity.WalletSnapshot{}, err
	}

	for _, w := range wallets {
		if strings.EqualFold(w.DefaultAddress, address) {
			d.logger.Debug("Wallet resolved by address", "address", address, "walletID", w.ID)
			return w, nil
		}
	}

	d.logger.Info("Wallet not found by address", "address", address, "walletsScanned", len(wallets))
	return entity.WalletSnapshot{}, &entity.NotFoundError{Kind: "wallet", Key: address}
}

// Refresh fetches a new authoritative snapshot for the wallet, balances and
// signer status included. Never served from cache.
func (d *WalletDirectory) Refresh(ctx context.Context, walletID string) (entity.WalletSnapshot, error) {
	return d.custody.GetWallet(ctx, walletID)
}

func (d *WalletDirectory) listWallets(ctx context.Context) ([]entity.WalletSnapshot, error) {
	if cached, ok := d.listCache.Get(walletListCacheKey); ok {
		if wallets, ok := cached.([]entity.WalletSnapshot); ok {
			return wallets, nil
		}
	}

	wallets, err := d.custody.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	d.listCache.Set(walletListCacheKey, wallets, cache.DefaultExpiration)
	return wallets, nil
}
