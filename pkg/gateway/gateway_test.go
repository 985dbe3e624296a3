package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/pkg/burn"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/rpc"
	"github.com/xenartist/memo.rip/pkg/solana"
	"github.com/xenartist/memo.rip/pkg/solana/solanatest"
)

const testSig = "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"

type scheduled struct {
	signature string
	delay     time.Duration
}

type recordingScheduler struct {
	mu     sync.Mutex
	calls  []scheduled
	reject bool
}

func (s *recordingScheduler) Schedule(signature string, delay time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, scheduled{signature, delay})
	return !s.reject
}

func (s *recordingScheduler) Calls() []scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduled(nil), s.calls...)
}

func testConfig() Config {
	return Config{
		ConfirmationMethod: solana.MethodGetSignatureStatuses,
		MaxPollAttempts:    3,
		PollInterval:       time.Millisecond,
		SettleDelay:        15 * time.Second,
	}
}

func newTestGateway(t *testing.T, node *solanatest.Node) (*Gateway, *burnstore.MemoryStore, *recordingScheduler) {
	t.Helper()
	store := burnstore.NewMemoryStore()
	sched := &recordingScheduler{}
	client := solana.NewClient([]string{node.URL})
	return New(client, store, sched, testConfig(), zap.NewNop()), store, sched
}

func statusRequest(t *testing.T, signature string) []byte {
	t.Helper()
	req, err := rpc.NewRequest(1, solana.MethodGetSignatureStatuses, []string{signature}, map[string]any{
		"searchTransactionHistory": true,
	})
	require.NoError(t, err)
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func resultOf(t *testing.T, resp *solana.RawResponse) json.RawMessage {
	t.Helper()
	var out rpc.Response
	require.NoError(t, json.Unmarshal(resp.Body, &out))
	return out.Result
}

func TestGateway_ConfirmedSchedulesReconciliation(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.Status(solana.CommitmentFinalized))
	gw, store, sched := newTestGateway(t, node)
	ctx := context.Background()

	resp, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	require.NoError(t, err)
	assert.JSONEq(t, string(solanatest.Status(solana.CommitmentFinalized)), string(resultOf(t, resp)))

	rec, err := store.GetBurn(ctx, testSig)
	require.NoError(t, err)
	assert.Equal(t, burn.StateProvisional, rec.State())

	assert.Equal(t, []scheduled{{testSig, 15 * time.Second}}, sched.Calls())
	assert.Equal(t, 1, node.Calls(solana.MethodGetSignatureStatuses))
}

func TestGateway_PollsUntilConfirmed(t *testing.T) {
	node := solanatest.NewNode(t)
	var polls atomic.Int32
	node.Handle(solana.MethodGetSignatureStatuses, func(*rpc.Request) (json.RawMessage, *rpc.Error) {
		switch polls.Add(1) {
		case 1:
			return solanatest.UnknownStatus(), nil
		case 2:
			return solanatest.Status(solana.CommitmentProcessed), nil
		default:
			return solanatest.Status(solana.CommitmentConfirmed), nil
		}
	})
	gw, _, sched := newTestGateway(t, node)

	_, err := gw.HandleProxiedCall(context.Background(), statusRequest(t, testSig))
	require.NoError(t, err)
	assert.Equal(t, int32(3), polls.Load())
	assert.Len(t, sched.Calls(), 1)
}

func TestGateway_TimeoutDeletesProvisionalRow(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.Status(solana.CommitmentProcessed))
	gw, store, sched := newTestGateway(t, node)
	ctx := context.Background()

	resp, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Equal(t, 3, node.Calls(solana.MethodGetSignatureStatuses))
	assert.Empty(t, sched.Calls())

	_, err = store.GetBurn(ctx, testSig)
	assert.ErrorIs(t, err, burnstore.ErrNotFound)
}

func TestGateway_PollBudgetEndsSlowPolling(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Handle(solana.MethodGetSignatureStatuses, func(*rpc.Request) (json.RawMessage, *rpc.Error) {
		time.Sleep(20 * time.Millisecond)
		return solanatest.Status(solana.CommitmentProcessed), nil
	})
	store := burnstore.NewMemoryStore()
	sched := &recordingScheduler{}
	cfg := testConfig()
	cfg.MaxPollAttempts = 30
	cfg.PollBudget = 100 * time.Millisecond
	gw := New(solana.NewClient([]string{node.URL}), store, sched, cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.False(t, solana.IsTransportError(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.Less(t, node.Calls(solana.MethodGetSignatureStatuses), 30)
	assert.Empty(t, sched.Calls())

	_, err = store.GetBurn(ctx, testSig)
	assert.ErrorIs(t, err, burnstore.ErrNotFound)
}

func TestGateway_CallerCancelKeepsProvisionalRow(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.Status(solana.CommitmentProcessed))
	store := burnstore.NewMemoryStore()
	cfg := testConfig()
	cfg.MaxPollAttempts = 1000
	cfg.PollInterval = 5 * time.Millisecond
	cfg.PollBudget = 5 * time.Second
	gw := New(solana.NewClient([]string{node.URL}), store, &recordingScheduler{}, cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfirmationTimeout)

	rec, err := store.GetBurn(context.Background(), testSig)
	require.NoError(t, err)
	assert.False(t, rec.Reconciled)
}

func TestGateway_TimeoutKeepsReconciledRow(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.UnknownStatus())
	gw, store, _ := newTestGateway(t, node)
	ctx := context.Background()

	require.NoError(t, store.UpsertReconciled(ctx, &burn.Detail{
		Signature: testSig, Burner: "Addr1", Amount: 10, Token: "Mint1", Timestamp: time.Unix(1700000000, 0),
	}))

	_, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	assert.ErrorIs(t, err, ErrConfirmationTimeout)

	rec, err := store.GetBurn(ctx, testSig)
	require.NoError(t, err)
	assert.True(t, rec.Reconciled)
}

func TestGateway_FailedTransactionIsForgotten(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.FailedStatus())
	gw, store, sched := newTestGateway(t, node)
	ctx := context.Background()

	resp, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	require.NoError(t, err)
	assert.JSONEq(t, string(solanatest.FailedStatus()), string(resultOf(t, resp)))
	assert.Empty(t, sched.Calls())

	_, err = store.GetBurn(ctx, testSig)
	assert.ErrorIs(t, err, burnstore.ErrNotFound)
}

func TestGateway_TransportErrorKeepsProvisionalRow(t *testing.T) {
	node := solanatest.NewNode(t)
	gw, store, _ := newTestGateway(t, node)
	node.Close()
	ctx := context.Background()

	_, err := gw.HandleProxiedCall(ctx, statusRequest(t, testSig))
	require.Error(t, err)
	assert.True(t, solana.IsTransportError(err))

	rec, err := store.GetBurn(ctx, testSig)
	require.NoError(t, err)
	assert.False(t, rec.Reconciled)
}

func TestGateway_UpstreamRPCErrorPassesThrough(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Handle(solana.MethodGetSignatureStatuses, func(*rpc.Request) (json.RawMessage, *rpc.Error) {
		return nil, &rpc.Error{Code: -32005, Message: "Node is behind"}
	})
	gw, _, sched := newTestGateway(t, node)

	resp, err := gw.HandleProxiedCall(context.Background(), statusRequest(t, testSig))
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), "Node is behind")
	assert.Equal(t, 1, node.Calls(solana.MethodGetSignatureStatuses))
	assert.Empty(t, sched.Calls())
}

func TestGateway_PassThroughHasNoSideEffects(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result("getBalance", json.RawMessage(`{"context":{"slot":1},"value":42}`))
	node.Result(solana.MethodGetSignatureStatuses, solanatest.Status(solana.CommitmentFinalized))
	gw, store, sched := newTestGateway(t, node)
	ctx := context.Background()

	balance, err := rpc.NewRequest(7, "getBalance", "Addr1")
	require.NoError(t, err)
	balanceBody, err := json.Marshal(balance)
	require.NoError(t, err)

	bodies := map[string][]byte{
		"other method":      balanceBody,
		"batch":             []byte(`[` + string(statusRequest(t, testSig)) + `]`),
		"invalid signature": statusRequest(t, "0OIl"),
		"no params":         []byte(`{"jsonrpc":"2.0","id":1,"method":"getSignatureStatuses"}`),
		"wrong version":     []byte(`{"jsonrpc":"1.0","id":1,"method":"getSignatureStatuses","params":[["` + testSig + `"]]}`),
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := gw.HandleProxiedCall(ctx, body)
			require.NoError(t, err)
		})
	}

	rows, err := store.ListUnreconciled(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, sched.Calls())
}
