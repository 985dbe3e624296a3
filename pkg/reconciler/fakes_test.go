package reconciler

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/solana/solanatest"
)

const testMint = "Mint1"

// fakeFetcher answers GetTransaction through FetchFunc and counts calls per signature.
type fakeFetcher struct {
	FetchFunc func(ctx context.Context, signature string, call int) (json.RawMessage, error)

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeFetcher) GetTransaction(ctx context.Context, signature string) (json.RawMessage, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[signature]++
	call := f.calls[signature]
	f.mu.Unlock()

	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, signature, call)
	}
	return burnTx(signature, 1_000_000), nil
}

func (f *fakeFetcher) Calls(signature string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[signature]
}

type countingInvalidator struct {
	n atomic.Int32
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.n.Add(1)
	return nil
}

func burnTx(signature string, amount uint64) json.RawMessage {
	return solanatest.Burn{
		Signature: signature,
		Burner:    "Addr1",
		Mint:      testMint,
		Amount:    amount,
		Memo:      "hello",
		BlockTime: 1700000000,
	}.Transaction()
}

func testWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxAttempts:    3,
		RetryDelay:     time.Millisecond,
		AttemptTimeout: time.Second,
		Mint:           testMint,
	}
}

func newTestWorker(t *testing.T, fetcher Fetcher, cfg WorkerConfig) (*Worker, *burnstore.MemoryStore, *countingInvalidator) {
	t.Helper()
	store := burnstore.NewMemoryStore()
	inv := &countingInvalidator{}
	w := NewWorker(fetcher, store, inv, cfg, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Shutdown(ctx)
	})
	return w, store, inv
}

func insertProvisional(t *testing.T, store *burnstore.MemoryStore, signatures ...string) {
	t.Helper()
	for _, sig := range signatures {
		_, err := store.InsertProvisional(context.Background(), sig)
		require.NoError(t, err)
	}
}
