// Package solanatest provides transaction fixtures and a scripted JSON-RPC
// endpoint for tests that talk to a Solana node.
package solanatest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/xenartist/memo.rip/pkg/rpc"
)

const (
	// TokenProgram is the SPL token program id.
	TokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	// MemoProgram is the SPL memo v2 program id.
	MemoProgram = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
)

// Burn describes a jsonParsed burn transaction to build.
type Burn struct {
	Signature string
	Burner    string
	Mint      string
	Amount    uint64
	Memo      string
	BlockTime int64
}

// Transaction renders b as a getTransaction jsonParsed result.
func (b Burn) Transaction() json.RawMessage {
	instructions := []map[string]any{
		{
			"program":   "spl-token",
			"programId": TokenProgram,
			"parsed": map[string]any{
				"type": "burn",
				"info": map[string]any{
					"account":   "Acct" + b.Burner,
					"amount":    fmt.Sprintf("%d", b.Amount),
					"authority": b.Burner,
					"mint":      b.Mint,
				},
			},
		},
	}
	if b.Memo != "" {
		instructions = append(instructions, map[string]any{
			"program":   "spl-memo",
			"programId": MemoProgram,
			"parsed":    b.Memo,
		})
	}

	tx := map[string]any{
		"slot":      250000000,
		"blockTime": b.BlockTime,
		"meta":      map[string]any{"err": nil, "fee": 5000},
		"transaction": map[string]any{
			"signatures": []string{b.Signature},
			"message":    map[string]any{"instructions": instructions},
		},
	}
	raw, err := json.Marshal(tx)
	if err != nil {
		panic(err)
	}
	return raw
}

// Status renders a single-entry getSignatureStatuses result.
func Status(confirmationStatus string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"context":{"slot":250000010},"value":[{"slot":250000000,"confirmations":null,"err":null,"confirmationStatus":%q}]}`,
		confirmationStatus))
}

// FailedStatus renders a status entry whose transaction failed on chain.
func FailedStatus() json.RawMessage {
	return json.RawMessage(`{"context":{"slot":250000010},"value":[{"slot":250000000,"confirmations":0,"err":{"InstructionError":[0,"Custom"]},"confirmationStatus":"confirmed"}]}`)
}

// UnknownStatus renders a status lookup for a signature the node has not seen.
func UnknownStatus() json.RawMessage {
	return json.RawMessage(`{"context":{"slot":250000010},"value":[null]}`)
}

// Handler answers one JSON-RPC request with a result or an error.
type Handler func(req *rpc.Request) (json.RawMessage, *rpc.Error)

// Node is a scripted JSON-RPC endpoint.
type Node struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string]int
}

// NewNode starts a Node that is closed when the test ends.
func NewNode(t *testing.T) *Node {
	t.Helper()
	n := &Node{
		handlers: make(map[string]Handler),
		calls:    make(map[string]int),
	}
	n.Server = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.Close)
	return n
}

// Handle installs h for method, replacing any previous handler.
func (n *Node) Handle(method string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

// Result answers every call of method with result.
func (n *Node) Result(method string, result json.RawMessage) {
	n.Handle(method, func(*rpc.Request) (json.RawMessage, *rpc.Error) { return result, nil })
}

// Calls returns how many times method was requested.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if rpc.IsBatch(body) {
		var reqs []rpc.Request
		if err := json.Unmarshal(body, &reqs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out := make([]rpc.Response, 0, len(reqs))
		for i := range reqs {
			out = append(out, n.answer(&reqs[i]))
		}
		_ = json.NewEncoder(w).Encode(out)
		return
	}

	var req rpc.Request
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(n.answer(&req))
}

func (n *Node) answer(req *rpc.Request) rpc.Response {
	n.mu.Lock()
	n.calls[req.Method]++
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()

	resp := rpc.Response{JSONRPC: rpc.Version, ID: req.ID}
	if !ok {
		resp.Error = rpc.NewError(rpc.MethodNotFound)
		return resp
	}
	result, rpcErr := h(req)
	switch {
	case rpcErr != nil:
		resp.Error = rpcErr
	case result == nil:
		resp.Result = json.RawMessage("null")
	default:
		resp.Result = result
	}
	return resp
}
