package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// gaslessAsset is the single asset whose network fee is sponsored by the
// custody service. The rule is fixed policy, not user-configurable.
const gaslessAsset = "usdc"

// GaslessFor reports whether a transfer of the given asset is submitted as a
// sponsored (gasless) transfer. Matching is case-insensitive.
func GaslessFor(asset string) bool {
	return strings.EqualFold(asset, gaslessAsset)
}

// TransferRequest describes one requested transfer. It is constructed once
// per invocation and never modified.
type TransferRequest struct {
	SourceAddress      string
	DestinationAddress string
	Asset              string
	Quantity           decimal.Decimal
}

// TransferSubmission is the payload handed to the custody service when a
// transfer is created.
type TransferSubmission struct {
	Amount      decimal.Decimal
	Asset       string
	Destination string
	Gasless     bool
}

// TransferState is the closed set of transfer states the lifecycle controller
// operates on. Raw service statuses are parsed into this set once, at the
// custody boundary, so the polling state machine never inspects strings.
type TransferState int

const (
	// TransferPending is the only non-terminal state.
	TransferPending TransferState = iota
	// TransferComplete means the transfer settled on the network.
	TransferComplete
	// TransferFailed means the service reported a terminal failure.
	TransferFailed
	// TransferUnknown covers any status string the client does not recognize.
	// An unrecognized status is evidence of an API contract change, so it is
	// treated as terminal rather than retried.
	TransferUnknown
)

// TransferStatus pairs the parsed state with the raw service status string,
// kept for reporting unknown values verbatim.
type TransferStatus struct {
	State TransferState
	Raw   string
}

// ParseTransferStatus classifies a raw custody-service status string. The
// service exposes an open-ended status value, so classification is by
// case-insensitive substring match; anything unmatched becomes
// TransferUnknown with the raw value preserved.
func ParseTransferStatus(raw string) TransferStatus {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "complete"):
		return TransferStatus{State: TransferComplete, Raw: raw}
	case strings.Contains(s, "failed"):
		return TransferStatus{State: TransferFailed, Raw: raw}
	case strings.Contains(s, "pending"):
		return TransferStatus{State: TransferPending, Raw: raw}
	default:
		return TransferStatus{State: TransferUnknown, Raw: raw}
	}
}

// Terminal reports whether no further state change is expected from polling.
func (s TransferStatus) Terminal() bool {
	return s.State != TransferPending
}

// TransferSnapshot is an immutable view of an in-flight transfer taken at
// fetch time. Each poll tick fetches a new snapshot; the tool never mutates
// transfer state locally.
type TransferSnapshot struct {
	ID              string          `json:"id"`
	WalletID        string          `json:"wallet_id"`
	Asset           string          `json:"asset"`
	Amount          decimal.Decimal `json:"amount"`
	Destination     string          `json:"destination"`
	Status          TransferStatus  `json:"status"`
	TransactionHash string          `json:"transaction_hash,omitempty"`
	FailureReason   string          `json:"failure_reason,omitempty"`
}
