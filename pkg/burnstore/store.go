// Package burnstore persists burn records keyed by transaction signature.
package burnstore

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xenartist/memo.rip/pkg/burn"
)

var (
	// ErrNotFound is returned when a signature lookup finds no row.
	ErrNotFound = errors.New("burn not found")
	// ErrStore wraps every persistence failure.
	ErrStore = errors.New("burn store")
)

// Store defines burn persistence. Aggregates only ever read reconciled rows
// with a positive amount, except TotalBurned which sums every reconciled row.
type Store interface {
	// InsertProvisional records a signature with no detail. It reports
	// whether a row was created; an existing row in any state is left untouched.
	InsertProvisional(ctx context.Context, signature string) (bool, error)
	// UpsertReconciled writes every detail field and marks the row reconciled.
	// Repeated calls converge on the last payload.
	UpsertReconciled(ctx context.Context, detail *burn.Detail) error
	// DeleteUnconfirmed removes a row that has not been reconciled.
	// Reconciled rows are never deleted.
	DeleteUnconfirmed(ctx context.Context, signature string) (bool, error)
	// ListUnreconciled returns up to limit provisional rows, least recently
	// checked first, then in insertion order.
	ListUnreconciled(ctx context.Context, limit int) ([]burn.Record, error)
	// RecordAttempt stores the outcome of a failed reconciliation attempt.
	RecordAttempt(ctx context.Context, signature string, attemptErr error) error
	GetBurn(ctx context.Context, signature string) (*burn.Record, error)

	TopByAmount(ctx context.Context, limit int) ([]burn.Record, error)
	Latest(ctx context.Context, limit int) ([]burn.Record, error)
	TopByAddressTotal(ctx context.Context, limit int, minTotal decimal.Decimal) ([]burn.AddressTotal, error)
	TotalBurned(ctx context.Context) (decimal.Decimal, error)
	// Aggregate computes the requested kinds (all when none are given)
	// against one consistent view of the table.
	Aggregate(ctx context.Context, limits burn.Limits, kinds ...burn.Kind) (*burn.Snapshot, error)
}

func wantKinds(kinds []burn.Kind) map[burn.Kind]bool {
	if len(kinds) == 0 {
		kinds = burn.AllKinds
	}
	want := make(map[burn.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	return want
}

func attemptMessage(err error) string {
	if err == nil {
		return ""
	}
	const maxLen = 1024
	msg := err.Error()
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
