package directory

import (
	"context"
	"sync"
	"testing"
	"time"

	"walletctl/internal/domain/entity"
	"walletctl/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCustody implements the slice of port.CustodyClient the directory
// actually uses; everything else panics so an unexpected call fails loudly.
type countingCustody struct {
	mu        sync.Mutex
	wallets   []entity.WalletSnapshot
	byID      map[string]entity.WalletSnapshot
	listCalls int
	getCalls  int
}

func (c *countingCustody) ListWallets(context.Context) ([]entity.WalletSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls++
	return c.wallets, nil
}

func (c *countingCustody) GetWallet(_ context.Context, walletID string) (entity.WalletSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	if w, ok := c.byID[walletID]; ok {
		return w, nil
	}
	return entity.WalletSnapshot{}, &entity.NotFoundError{Kind: "wallet", Key: walletID}
}

func (c *countingCustody) CreateWallet(context.Context, string) (entity.WalletSnapshot, error) {
	panic("unexpected CreateWallet call")
}

func (c *countingCustody) RequestFaucet(context.Context, string) error {
	panic("unexpected RequestFaucet call")
}

func (c *countingCustody) CreateTransfer(context.Context, string, entity.TransferSubmission) (entity.TransferSnapshot, error) {
	panic("unexpected CreateTransfer call")
}

func (c *countingCustody) GetTransfer(context.Context, string, string) (entity.TransferSnapshot, error) {
	panic("unexpected GetTransfer call")
}

func (c *countingCustody) ListTransfers(context.Context, string) ([]entity.TransferSnapshot, error) {
	panic("unexpected ListTransfers call")
}

func twoWallets() []entity.WalletSnapshot {
	return []entity.WalletSnapshot{
		{ID: "wallet-1", DefaultAddress: "0xAbCdEf"},
		{ID: "wallet-2", DefaultAddress: "0x123456"},
	}
}

func TestResolveByAddress(t *testing.T) {
	custody := &countingCustody{wallets: twoWallets()}
	dir := NewWalletDirectory(custody, logger.NewSlogAdapter(), time.Minute)

	wallet, err := dir.ResolveByAddress(context.Background(), "0x123456")

	require.NoError(t, err)
	assert.Equal(t, "wallet-2", wallet.ID)
}

func TestResolveByAddressIsCaseInsensitive(t *testing.T) {
	custody := &countingCustody{wallets: twoWallets()}
	dir := NewWalletDirectory(custody, logger.NewSlogAdapter(), time.Minute)

	wallet, err := dir.ResolveByAddress(context.Background(), "0xABCDEF")

	require.NoError(t, err)
	assert.Equal(t, "wallet-1", wallet.ID)
}

func TestResolveByAddressNotFound(t *testing.T) {
	custody := &countingCustody{wallets: twoWallets()}
	dir := NewWalletDirectory(custody, logger.NewSlogAdapter(), time.Minute)

	_, err := dir.ResolveByAddress(context.Background(), "0xNobody")

	var notFound *entity.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "0xNobody", notFound.Key)
}

func TestResolveUsesCachedList(t *testing.T) {
	custody := &countingCustody{wallets: twoWallets()}
	dir := NewWalletDirectory(custody, logger.NewSlogAdapter(), time.Minute)

	for range 3 {
		_, err := dir.ResolveByAddress(context.Background(), "0x123456")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, custody.listCalls, "repeated resolution within the TTL reuses the cached list")
}

func TestRefreshBypassesCache(t *testing.T) {
	custody := &countingCustody{
		wallets: twoWallets(),
		byID:    map[string]entity.WalletSnapshot{"wallet-1": {ID: "wallet-1", DefaultAddress: "0xAbCdEf"}},
	}
	dir := NewWalletDirectory(custody, logger.NewSlogAdapter(), time.Minute)

	for range 2 {
		_, err := dir.Refresh(context.Background(), "wallet-1")
		require.NoError(t, err)
	}

	assert.Equal(t, 2, custody.getCalls, "every refresh hits the custody service")
	assert.Equal(t, 0, custody.listCalls)
}
