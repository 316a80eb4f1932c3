package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError reports an unknown wallet address or missing local record.
// Recoverable: the operation is aborted and the error reported to the caller.
type NotFoundError struct {
	// Kind names what was looked up, e.g. "wallet" or "wallet record".
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// InsufficientBalanceError is the pre-submission guard result: the freshly
// read balance did not cover the requested quantity. Nothing was submitted.
type InsufficientBalanceError struct {
	Asset     string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: required %s, available %s",
		e.Asset, e.Required.String(), e.Available.String())
}

// SubmissionFailedError means the custody service rejected the transfer
// creation call. The call is never retried; no partial transfer state exists
// to reconcile because nothing was accepted remotely.
type SubmissionFailedError struct {
	Err error
}

func (e *SubmissionFailedError) Error() string {
	return fmt.Sprintf("transfer submission failed: %v", e.Err)
}

func (e *SubmissionFailedError) Unwrap() error {
	return e.Err
}
