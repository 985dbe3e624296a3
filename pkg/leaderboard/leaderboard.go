// Package leaderboard defines the JSON views served by the read API.
package leaderboard

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenartist/memo.rip/pkg/burn"
)

const percentagePrecision = 24

// BurnStats is the body of GET /api/burns.
type BurnStats struct {
	// TotalBurn is the burned amount in whole display units, rounded down.
	TotalBurn      int64   `json:"totalBurn"`
	BurnPercentage float64 `json:"burnPercentage"`
}

// BurnItem is one entry of /api/top-burns and /api/latest-burns.
type BurnItem struct {
	Signature string    `json:"signature"`
	Burner    string    `json:"burner"`
	Amount    uint64    `json:"amount"`
	Memo      *string   `json:"memo"`
	Token     string    `json:"token"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddressItem is one entry of /api/top-total-burns.
type AddressItem struct {
	Rank        int         `json:"rank"`
	Address     string      `json:"address"`
	TotalAmount json.Number `json:"totalAmount"`
	BurnCount   int64       `json:"burnCount"`
}

// BurnDetail is the body of GET /api/burns/{signature}.
type BurnDetail struct {
	Signature     string     `json:"signature"`
	State         burn.State `json:"state"`
	Burner        string     `json:"burner,omitempty"`
	Amount        uint64     `json:"amount,omitempty"`
	Memo          *string    `json:"memo,omitempty"`
	Token         string     `json:"token,omitempty"`
	Timestamp     int64      `json:"timestamp,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CheckAttempts int        `json:"checkAttempts"`
	LastCheckedAt *time.Time `json:"lastCheckedAt,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
}

// NewBurnStats converts a base-unit total into display units and the share of supply.
func NewBurnStats(totalBase decimal.Decimal, decimals int32, totalSupply uint64) *BurnStats {
	display := totalBase.Shift(-decimals).Floor()
	stats := &BurnStats{TotalBurn: display.IntPart()}
	if totalSupply > 0 {
		stats.BurnPercentage = display.
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromUint64(totalSupply), percentagePrecision).
			InexactFloat64()
	}
	return stats
}

// NewBurnItems converts reconciled records to list entries, keeping order.
func NewBurnItems(records []burn.Record) []BurnItem {
	items := make([]BurnItem, 0, len(records))
	for i := range records {
		r := &records[i]
		items = append(items, BurnItem{
			Signature: r.Signature,
			Burner:    r.Burner,
			Amount:    r.Amount,
			Memo:      memoOf(r.Memo),
			Token:     r.Token,
			Timestamp: r.Timestamp.Unix(),
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return items
}

// NewAddressItems ranks address totals starting at 1, keeping order.
func NewAddressItems(totals []burn.AddressTotal) []AddressItem {
	items := make([]AddressItem, 0, len(totals))
	for i, t := range totals {
		items = append(items, AddressItem{
			Rank:        i + 1,
			Address:     t.Address,
			TotalAmount: json.Number(t.TotalAmount.String()),
			BurnCount:   t.BurnCount,
		})
	}
	return items
}

// NewBurnDetail converts a record in any state.
func NewBurnDetail(r *burn.Record) *BurnDetail {
	d := &BurnDetail{
		Signature:     r.Signature,
		State:         r.State(),
		CreatedAt:     r.CreatedAt.UTC(),
		CheckAttempts: r.CheckAttempts,
		LastCheckedAt: r.LastCheckedAt,
		LastError:     r.LastError,
	}
	if r.Reconciled {
		d.Burner = r.Burner
		d.Amount = r.Amount
		d.Memo = memoOf(r.Memo)
		d.Token = r.Token
		d.Timestamp = r.Timestamp.Unix()
	}
	return d
}

func memoOf(memo string) *string {
	if memo == "" {
		return nil
	}
	return &memo
}
