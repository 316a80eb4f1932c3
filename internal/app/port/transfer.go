package port

import (
	"context"

	"walletctl/internal/domain/entity"
)

// Confirmer collects the explicit operator confirmation required before a
// transfer is submitted. Submission is irreversible, so this is a deliberate
// human-in-the-loop control; how the answer is collected is up to the caller.
type Confirmer interface {
	Confirm(req entity.TransferRequest, gasless bool) bool
}

// TransferService drives a transfer from validation through submission and
// polling to a terminal outcome.
type TransferService interface {
	// Execute validates preconditions, asks the confirmer, submits the
	// transfer and polls it to a terminal state. Precondition failures are
	// returned as errors (entity.NotFoundError, entity.InsufficientBalanceError,
	// entity.SubmissionFailedError); lifecycle results are returned as the
	// outcome.
	Execute(ctx context.Context, req entity.TransferRequest, confirmer Confirmer) (entity.TransferOutcome, error)
}
