// Package burn holds the domain types shared by the ingestion pipeline and the read side.
package burn

import (
	"time"

	"github.com/shopspring/decimal"
)

// State of a burn record in the reconciliation lifecycle.
type State string

const (
	StateProvisional State = "provisional"
	StateReconciled  State = "reconciled"
)

// Detail is the structured content extracted from one finalized burn transaction.
type Detail struct {
	Signature string
	Burner    string
	Amount    uint64
	Token     string
	Memo      string
	Timestamp time.Time
}

// Record is one row of the burns table.
// Provisional rows only carry Signature and CreatedAt.
type Record struct {
	Signature  string
	Burner     string
	Amount     uint64
	Token      string
	Memo       string
	Timestamp  time.Time
	Reconciled bool
	CreatedAt  time.Time

	CheckAttempts int
	LastCheckedAt *time.Time
	LastError     string
}

// State reports the lifecycle state of the record.
func (r *Record) State() State {
	if r.Reconciled {
		return StateReconciled
	}
	return StateProvisional
}

// ApplyDetail overwrites every reconciled field from d and marks the record reconciled.
func (r *Record) ApplyDetail(d *Detail) {
	r.Burner = d.Burner
	r.Amount = d.Amount
	r.Token = d.Token
	r.Memo = d.Memo
	r.Timestamp = d.Timestamp
	r.Reconciled = true
	r.LastError = ""
}

// AddressTotal is one entry of the per-address leaderboard.
type AddressTotal struct {
	Address     string
	TotalAmount decimal.Decimal
	BurnCount   int64
}

// Kind selects one aggregate view over the reconciled records.
type Kind int

const (
	KindTopByAmount Kind = iota
	KindLatest
	KindTopByAddressTotal
	KindTotalBurned
)

// AllKinds lists every aggregate, in the order a snapshot is built.
var AllKinds = []Kind{KindTopByAmount, KindLatest, KindTopByAddressTotal, KindTotalBurned}

func (k Kind) String() string {
	switch k {
	case KindTopByAmount:
		return "top_by_amount"
	case KindLatest:
		return "latest"
	case KindTopByAddressTotal:
		return "top_by_address_total"
	case KindTotalBurned:
		return "total_burned"
	default:
		return "unknown"
	}
}

// Limits bounds the aggregate queries.
type Limits struct {
	TopN            int
	AddressTopN     int
	MinAddressTotal decimal.Decimal
}

// DefaultLimits returns the leaderboard sizes the public API serves.
func DefaultLimits() Limits {
	return Limits{
		TopN:            10,
		AddressTopN:     69,
		MinAddressTotal: decimal.NewFromInt(420),
	}
}

// Snapshot is an immutable set of aggregates computed together.
// It is replaced wholesale and never mutated after construction.
type Snapshot struct {
	TopByAmount       []Record
	Latest            []Record
	TopByAddressTotal []AddressTotal
	TotalBurned       decimal.Decimal
	RefreshedAt       time.Time
}
