package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"
	"walletctl/internal/infrastructure/configloader"
	"walletctl/internal/pkg/metrics"

	"go.uber.org/zap"
)

// TransferLifecycleService drives a transfer from precondition checks through
// submission and a bounded polling loop to a terminal outcome. One invocation
// handles exactly one transfer; there is no parallelism and no retry of
// submission — the only retry-shaped behavior is the status polling loop,
// which retries observation, never submission.
type TransferLifecycleService struct {
	directory    port.WalletDirectory
	custody      port.CustodyClient
	records      port.RecordStore
	networks     port.NetworkDefinitionProvider
	logger       *zap.Logger
	pollInterval time.Duration
	timeout      time.Duration
}

var _ port.TransferService = (*TransferLifecycleService)(nil)

// NewTransferLifecycleService creates the lifecycle controller.
func NewTransferLifecycleService(
	directory port.WalletDirectory,
	custody port.CustodyClient,
	records port.RecordStore,
	networks port.NetworkDefinitionProvider,
	logger *zap.Logger,
	cfg configloader.TransferConfig,
) *TransferLifecycleService {
	return &TransferLifecycleService{
		directory:    directory,
		custody:      custody,
		records:      records,
		networks:     networks,
		logger:       logger.Named("TransferLifecycleService"),
		pollInterval: cfg.PollInterval(),
		timeout:      cfg.Timeout(),
	}
}

// Execute validates preconditions, collects confirmation, submits the
// transfer once and polls it to a terminal state.
func (s *TransferLifecycleService) Execute(ctx context.Context, req entity.TransferRequest, confirmer port.Confirmer) (entity.TransferOutcome, error) {
	wallet, err := s.directory.ResolveByAddress(ctx, req.SourceAddress)
	if err != nil {
		return entity.TransferOutcome{}, err
	}

	// The snapshot from resolution may be stale; balance decisions need a
	// fresh one.
	fresh, err := s.directory.Refresh(ctx, wallet.ID)
	if err != nil {
		return entity.TransferOutcome{}, err
	}

	s.logger.Debug("Source wallet refreshed",
		zap.String("walletID", fresh.ID),
		zap.Bool("canSign", fresh.CanSign),
		zap.String("serverSignerStatus", fresh.ServerSignerStatus))

	available := fresh.BalanceOf(req.Asset)
	if available.LessThan(req.Quantity) {
		return entity.TransferOutcome{}, &entity.InsufficientBalanceError{
			Asset:     strings.ToLower(req.Asset),
			Required:  req.Quantity,
			Available: available,
		}
	}

	gasless := entity.GaslessFor(req.Asset)

	if !confirmer.Confirm(req, gasless) {
		s.logger.Info("Transfer cancelled by operator before submission")
		metrics.TransfersTotal.WithLabelValues(entity.OutcomeCancelled.String()).Inc()
		return entity.TransferOutcome{Kind: entity.OutcomeCancelled}, nil
	}

	transfer, err := s.custody.CreateTransfer(ctx, fresh.ID, entity.TransferSubmission{
		Amount:      req.Quantity,
		Asset:       strings.ToLower(req.Asset),
		Destination: req.DestinationAddress,
		Gasless:     gasless,
	})
	if err != nil {
		metrics.TransfersTotal.WithLabelValues("submission_failed").Inc()
		return entity.TransferOutcome{}, &entity.SubmissionFailedError{Err: err}
	}

	s.logger.Info("Transfer submitted",
		zap.String("transferID", transfer.ID),
		zap.String("initialStatus", transfer.Status.Raw),
		zap.Bool("gasless", gasless))

	outcome := s.awaitTerminal(ctx, fresh.ID, transfer)

	if outcome.Kind == entity.OutcomeSucceeded {
		outcome.ExplorerLink = s.explorerLink(req.SourceAddress, fresh.Network, outcome.TransactionHash)
		// Convenience read so the caller can observe post-transfer state;
		// failure here never changes the outcome.
		if final, err := s.directory.Refresh(ctx, fresh.ID); err != nil {
			s.logger.Warn("Final balance reload after transfer failed", zap.Error(err))
		} else {
			outcome.FinalBalances = final.Balances
		}
	}

	metrics.TransfersTotal.WithLabelValues(outcome.Kind.String()).Inc()
	return outcome, nil
}

// awaitTerminal polls the transfer on a fixed interval until a terminal
// status is observed or the wall-clock deadline passes. No backoff: the
// service's settlement time is typically short and bounded.
func (s *TransferLifecycleService) awaitTerminal(ctx context.Context, walletID string, transfer entity.TransferSnapshot) entity.TransferOutcome {
	deadline := time.Now().Add(s.timeout)
	current := transfer

	for {
		switch current.Status.State {
		case entity.TransferComplete:
			s.logger.Info("Transfer completed", zap.String("transactionHash", current.TransactionHash))
			return entity.TransferOutcome{
				Kind:            entity.OutcomeSucceeded,
				TransactionHash: current.TransactionHash,
			}
		case entity.TransferFailed:
			s.logger.Warn("Transfer failed", zap.String("reason", current.FailureReason))
			return entity.TransferOutcome{
				Kind:   entity.OutcomeFailed,
				Reason: current.FailureReason,
			}
		case entity.TransferUnknown:
			// An unrecognized status means the API contract changed under us;
			// not safe to keep polling.
			s.logger.Error("Unexpected transfer status", zap.String("status", current.Status.Raw))
			return entity.TransferOutcome{
				Kind:   entity.OutcomeFailed,
				Reason: "unexpected status: " + current.Status.Raw,
			}
		case entity.TransferPending:
			// The only non-terminal state; fall through to the wait below.
		}

		if !time.Now().Before(deadline) {
			s.logger.Warn("Transfer timed out while still pending",
				zap.String("transferID", current.ID),
				zap.Duration("timeout", s.timeout))
			return entity.TransferOutcome{
				Kind:   entity.OutcomeTimedOut,
				Reason: "transfer still pending at deadline; it may still settle out-of-band",
			}
		}

		select {
		case <-ctx.Done():
			return entity.TransferOutcome{
				Kind:   entity.OutcomeTimedOut,
				Reason: "polling abandoned: " + ctx.Err().Error(),
			}
		case <-time.After(s.pollInterval):
		}

		next, err := s.custody.GetTransfer(ctx, walletID, current.ID)
		metrics.TransferPollTicksTotal.Inc()
		if err != nil {
			var notFound *entity.NotFoundError
			if errors.As(err, &notFound) {
				// A submitted transfer that the service no longer knows is
				// terminal from our point of view.
				return entity.TransferOutcome{
					Kind:   entity.OutcomeFailed,
					Reason: "transfer disappeared from custody service: " + err.Error(),
				}
			}
			// Transient reload failure: the loop retries observation until
			// the deadline.
			s.logger.Warn("Transfer status reload failed, retrying", zap.Error(err))
			continue
		}
		current = next
	}
}

// explorerLink resolves the block-explorer link for a completed transfer.
// The local record's network metadata is consulted first; it is advisory
// only, so a missing record falls back to the snapshot's network.
func (s *TransferLifecycleService) explorerLink(sourceAddress, snapshotNetwork, txHash string) string {
	network := snapshotNetwork
	if record, err := s.records.Load(sourceAddress); err == nil {
		network = record.Network
	}
	if def, ok := s.networks.GetNetworkDefinitionByName(network); ok {
		return def.ExplorerTxURL(txHash)
	}
	return ""
}
