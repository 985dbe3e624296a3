package burnstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenartist/memo.rip/pkg/burn"
)

type memoryEntry struct {
	rec burn.Record
	seq uint64
}

// MemoryStore is an in-memory implementation of Store.
// Writes are serialized by a single mutex, so aggregates see a consistent table.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*memoryEntry
	seq  uint64
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory burn store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[string]*memoryEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) InsertProvisional(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[signature]; ok {
		return false, nil
	}
	s.seq++
	s.rows[signature] = &memoryEntry{
		rec: burn.Record{Signature: signature, CreatedAt: s.now().UTC()},
		seq: s.seq,
	}
	return true, nil
}

func (s *MemoryStore) UpsertReconciled(_ context.Context, detail *burn.Detail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[detail.Signature]
	if !ok {
		s.seq++
		e = &memoryEntry{
			rec: burn.Record{Signature: detail.Signature, CreatedAt: s.now().UTC()},
			seq: s.seq,
		}
		s.rows[detail.Signature] = e
	}
	d := *detail
	d.Timestamp = d.Timestamp.UTC()
	e.rec.ApplyDetail(&d)
	return nil
}

func (s *MemoryStore) DeleteUnconfirmed(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[signature]
	if !ok || e.rec.Reconciled {
		return false, nil
	}
	delete(s.rows, signature)
	return true, nil
}

func (s *MemoryStore) ListUnreconciled(_ context.Context, limit int) ([]burn.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []*memoryEntry
	for _, e := range s.rows {
		if !e.rec.Reconciled {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		a, b := pending[i].rec.LastCheckedAt, pending[j].rec.LastCheckedAt
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return pending[i].seq < pending[j].seq
	})
	if limit >= 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return copyRecords(pending), nil
}

func (s *MemoryStore) RecordAttempt(_ context.Context, signature string, attemptErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[signature]
	if !ok || e.rec.Reconciled {
		return nil
	}
	checked := s.now().UTC()
	e.rec.CheckAttempts++
	e.rec.LastCheckedAt = &checked
	e.rec.LastError = attemptMessage(attemptErr)
	return nil
}

func (s *MemoryStore) GetBurn(_ context.Context, signature string) (*burn.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[signature]
	if !ok {
		return nil, ErrNotFound
	}
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStore) TopByAmount(_ context.Context, limit int) ([]burn.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topByAmount(limit), nil
}

func (s *MemoryStore) Latest(_ context.Context, limit int) ([]burn.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest(limit), nil
}

func (s *MemoryStore) TopByAddressTotal(_ context.Context, limit int, minTotal decimal.Decimal) ([]burn.AddressTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topByAddressTotal(limit, minTotal), nil
}

func (s *MemoryStore) TotalBurned(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalBurned(), nil
}

func (s *MemoryStore) Aggregate(_ context.Context, limits burn.Limits, kinds ...burn.Kind) (*burn.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := wantKinds(kinds)
	snap := &burn.Snapshot{TotalBurned: decimal.Zero}
	if want[burn.KindTopByAmount] {
		snap.TopByAmount = s.topByAmount(limits.TopN)
	}
	if want[burn.KindLatest] {
		snap.Latest = s.latest(limits.TopN)
	}
	if want[burn.KindTopByAddressTotal] {
		snap.TopByAddressTotal = s.topByAddressTotal(limits.AddressTopN, limits.MinAddressTotal)
	}
	if want[burn.KindTotalBurned] {
		snap.TotalBurned = s.totalBurned()
	}
	return snap, nil
}

func (s *MemoryStore) visible() []*memoryEntry {
	var out []*memoryEntry
	for _, e := range s.rows {
		if e.rec.Reconciled && e.rec.Amount > 0 {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemoryStore) topByAmount(limit int) []burn.Record {
	rows := s.visible()
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].rec, rows[j].rec
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.Signature < b.Signature
	})
	return copyRecords(truncate(rows, limit))
}

func (s *MemoryStore) latest(limit int) []burn.Record {
	rows := s.visible()
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].rec, rows[j].rec
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Signature < b.Signature
	})
	return copyRecords(truncate(rows, limit))
}

func (s *MemoryStore) topByAddressTotal(limit int, minTotal decimal.Decimal) []burn.AddressTotal {
	totals := make(map[string]*burn.AddressTotal)
	for _, e := range s.visible() {
		t, ok := totals[e.rec.Burner]
		if !ok {
			t = &burn.AddressTotal{Address: e.rec.Burner, TotalAmount: decimal.Zero}
			totals[e.rec.Burner] = t
		}
		t.TotalAmount = t.TotalAmount.Add(decimal.NewFromUint64(e.rec.Amount))
		t.BurnCount++
	}

	out := make([]burn.AddressTotal, 0, len(totals))
	for _, t := range totals {
		if t.TotalAmount.GreaterThanOrEqual(minTotal) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalAmount.Cmp(out[j].TotalAmount); c != 0 {
			return c > 0
		}
		return out[i].Address < out[j].Address
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryStore) totalBurned() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.rows {
		if e.rec.Reconciled {
			total = total.Add(decimal.NewFromUint64(e.rec.Amount))
		}
	}
	return total
}

func truncate(rows []*memoryEntry, limit int) []*memoryEntry {
	if limit >= 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func copyRecords(rows []*memoryEntry) []burn.Record {
	out := make([]burn.Record, len(rows))
	for i, e := range rows {
		out[i] = e.rec
	}
	return out
}
