package service

import (
	"context"
	"fmt"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"
	"walletctl/internal/infrastructure/configloader"
	"walletctl/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WalletManagementService implements port.WalletService: wallet creation with
// local record persistence and best-effort test-network funding, listing with
// refreshed balances, and per-wallet inspection with transfer history.
type WalletManagementService struct {
	custody         port.CustodyClient
	directory       port.WalletDirectory
	records         port.RecordStore
	networks        port.NetworkDefinitionProvider
	logger          *zap.Logger
	network         string
	listConcurrency int
}

var _ port.WalletService = (*WalletManagementService)(nil)

// NewWalletManagementService creates the wallet service for the configured
// network.
func NewWalletManagementService(
	custody port.CustodyClient,
	directory port.WalletDirectory,
	records port.RecordStore,
	networks port.NetworkDefinitionProvider,
	logger *zap.Logger,
	cfg *configloader.Config,
) *WalletManagementService {
	return &WalletManagementService{
		custody:         custody,
		directory:       directory,
		records:         records,
		networks:        networks,
		logger:          logger.Named("WalletManagementService"),
		network:         cfg.Network,
		listConcurrency: cfg.Performance.ListConcurrency,
	}
}

// Create creates a wallet on the configured network, persists its local
// record and, when the network is a designated test network, makes a
// best-effort faucet request. Funding failure is reported in the side-channel
// result and never fails the creation.
func (s *WalletManagementService) Create(ctx context.Context) (entity.CreateWalletResult, error) {
	wallet, err := s.custody.CreateWallet(ctx, s.network)
	if err != nil {
		return entity.CreateWalletResult{}, fmt.Errorf("failed to create wallet on %s: %w", s.network, err)
	}
	metrics.WalletsCreatedTotal.Inc()

	record := entity.WalletRecord{
		Address:  wallet.DefaultAddress,
		Network:  s.network,
		WalletID: wallet.ID,
	}
	if err := s.records.Save(record); err != nil {
		// The wallet exists remotely; losing the local record is worth
		// surfacing but the creation itself succeeded.
		return entity.CreateWalletResult{}, fmt.Errorf("wallet %s created but saving its record failed: %w", wallet.ID, err)
	}

	result := entity.CreateWalletResult{Record: record, Snapshot: wallet}

	def, known := s.networks.GetNetworkDefinitionByName(s.network)
	if !known || !def.TestNetwork {
		return result, nil
	}

	result.Funding.Attempted = true
	if err := s.custody.RequestFaucet(ctx, wallet.ID); err != nil {
		s.logger.Warn("Faucet funding failed",
			zap.String("walletID", wallet.ID),
			zap.Error(err))
		result.Funding.Error = err.Error()
		return result, nil
	}
	result.Funding.Funded = true

	// Show the operator the seeded balance when the refresh works out.
	if funded, err := s.directory.Refresh(ctx, wallet.ID); err == nil {
		result.Snapshot = funded
	}
	return result, nil
}

// List fetches all wallets known to the custody service and refreshes their
// balances concurrently, bounded by the configured concurrency limit.
func (s *WalletManagementService) List(ctx context.Context) ([]entity.WalletSnapshot, error) {
	wallets, err := s.custody.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	refreshed := make([]entity.WalletSnapshot, len(wallets))
	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.listConcurrency)

	for i, w := range wallets {
		eg.Go(func() error {
			snap, err := s.directory.Refresh(childCtx, w.ID)
			if err != nil {
				// A wallet whose refresh fails is listed without balances
				// rather than sinking the whole listing.
				s.logger.Warn("Failed to refresh wallet for listing",
					zap.String("walletID", w.ID),
					zap.Error(err))
				refreshed[i] = w
				return nil
			}
			refreshed[i] = snap
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Inspect fetches the local record, the refreshed remote snapshot and the
// transfer history for one wallet address.
func (s *WalletManagementService) Inspect(ctx context.Context, address string) (entity.WalletInspection, error) {
	record, err := s.records.Load(address)
	if err != nil {
		return entity.WalletInspection{}, err
	}

	wallet, err := s.directory.ResolveByAddress(ctx, address)
	if err != nil {
		return entity.WalletInspection{}, err
	}

	snapshot, err := s.directory.Refresh(ctx, wallet.ID)
	if err != nil {
		return entity.WalletInspection{}, err
	}

	transfers, err := s.custody.ListTransfers(ctx, wallet.ID)
	if err != nil {
		return entity.WalletInspection{}, fmt.Errorf("failed to list transfers for %s: %w", address, err)
	}

	return entity.WalletInspection{
		Record:    record,
		Snapshot:  snapshot,
		Transfers: transfers,
	}, nil
}
