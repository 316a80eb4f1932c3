package entity

import "github.com/shopspring/decimal"

// OutcomeKind is the terminal result of a transfer invocation.
type OutcomeKind int

const (
	// OutcomeSucceeded means a terminal complete status was observed.
	OutcomeSucceeded OutcomeKind = iota
	// OutcomeFailed covers service-reported failures and unrecognized
	// terminal statuses.
	OutcomeFailed
	// OutcomeTimedOut means the deadline passed while the transfer was still
	// pending. Distinct from OutcomeFailed: the remote operation may still
	// resolve later out-of-band.
	OutcomeTimedOut
	// OutcomeCancelled means the operator declined confirmation before
	// submission. Nothing reached the custody service.
	OutcomeCancelled
)

// String renders the outcome kind for logs and console output.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TransferOutcome is what the lifecycle controller reports back to the
// caller once a transfer reaches a terminal state (or never starts).
type TransferOutcome struct {
	Kind            OutcomeKind                `json:"kind"`
	TransactionHash string                     `json:"transaction_hash,omitempty"`
	ExplorerLink    string                     `json:"explorer_link,omitempty"`
	Reason          string                     `json:"reason,omitempty"`
	// FinalBalances is a convenience read taken after a successful transfer
	// so the caller can observe post-transfer state. Absent on any other
	// outcome, and absence never changes the outcome itself.
	FinalBalances   map[string]decimal.Decimal `json:"final_balances,omitempty"`
}

// FundingOutcome is the side-channel result of the best-effort faucet request
// made after creating a wallet on a test network. A funding failure is
// reported here and never escalates into a wallet-creation failure.
type FundingOutcome struct {
	Attempted bool   `json:"attempted"`
	Funded    bool   `json:"funded"`
	Error     string `json:"error,omitempty"`
}

// CreateWalletResult is returned by wallet creation: the persisted local
// record, the created wallet's snapshot and the faucet side-channel result.
type CreateWalletResult struct {
	Record   WalletRecord   `json:"record"`
	Snapshot WalletSnapshot `json:"snapshot"`
	Funding  FundingOutcome `json:"funding"`
}
