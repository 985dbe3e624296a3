package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/internal/metrics"
	"github.com/xenartist/memo.rip/pkg/rpc"
)

// DefaultTimeout bounds a single upstream round trip.
const DefaultTimeout = 30 * time.Second

// Upstream method names.
const (
	MethodGetTransaction        = "getTransaction"
	MethodGetSignatureStatuses  = "getSignatureStatuses"
	forwardMetricLabel          = "forward"
	maxUpstreamResponseBodySize = 32 << 20
)

var (
	// ErrNoEndpoints is returned when the endpoint list is empty.
	ErrNoEndpoints = errors.New("no RPC endpoints available")
	// ErrNonJSONResponse marks an upstream body that is not valid JSON.
	ErrNonJSONResponse = errors.New("upstream returned a non-JSON response")
)

// TransportError reports an upstream that could not be reached or answered garbage.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("rpc transport: %v", e.Err)
	}
	return fmt.Sprintf("rpc transport %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// RawResponse is an upstream reply as received.
type RawResponse struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

// Client sends JSON-RPC requests to a rotating set of upstream endpoints.
// It never retries; retry policy belongs to callers.
type Client struct {
	endpoints  atomic.Pointer[[]string]
	next       atomic.Uint64
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a round-robin client over endpoints.
func NewClient(endpoints []string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SetEndpoints(endpoints)
	return c
}

// SetEndpoints atomically replaces the endpoint list.
// Calls that already picked an endpoint keep using it.
func (c *Client) SetEndpoints(endpoints []string) {
	list := append([]string(nil), endpoints...)
	c.endpoints.Store(&list)
	metrics.RPCEndpoints.Set(float64(len(list)))
}

// Endpoints returns a copy of the active endpoint list.
func (c *Client) Endpoints() []string {
	return append([]string(nil), *c.endpoints.Load()...)
}

func (c *Client) pick() (string, error) {
	list := *c.endpoints.Load()
	if len(list) == 0 {
		return "", &TransportError{Err: ErrNoEndpoints}
	}
	n := c.next.Add(1) - 1
	return list[n%uint64(len(list))], nil
}

// Forward posts body to the next endpoint and returns the raw reply.
// A reply that is not JSON is reported as a TransportError.
func (c *Client) Forward(ctx context.Context, body []byte) (*RawResponse, error) {
	return c.post(ctx, forwardMetricLabel, body)
}

func (c *Client) post(ctx context.Context, method string, body []byte) (*RawResponse, error) {
	start := time.Now()
	defer func() {
		metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.roundTrip(ctx, body)
	outcome := "ok"
	if err != nil {
		outcome = "transport_error"
		c.logger.Debug("upstream call failed", zap.String("method", method), zap.Error(err))
	}
	metrics.RPCRequestsTotal.WithLabelValues(method, outcome).Inc()
	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, body []byte) (*RawResponse, error) {
	endpoint, err := c.pick()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamResponseBodySize))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	if !json.Valid(respBody) {
		return nil, &TransportError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("%w (status %d)", ErrNonJSONResponse, resp.StatusCode),
		}
	}

	return &RawResponse{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Call performs one JSON-RPC call and returns the raw result.
// A JSON null result is returned as nil without error.
// An error member in the reply is returned as *rpc.Error.
func (c *Client) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	req, err := rpc.NewRequest(uuid.NewString(), method, params...)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	raw, err := c.post(ctx, method, body)
	if err != nil {
		return nil, err
	}

	var resp rpc.Response
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, &TransportError{Endpoint: raw.Endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if raw.StatusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: raw.Endpoint, Err: fmt.Errorf("unexpected status %d", raw.StatusCode)}
	}
	if rpc.IsNull(resp.Result) {
		return nil, nil
	}
	return resp.Result, nil
}

// GetTransaction fetches finalized transaction detail with parsed instructions.
// It returns nil when the node does not know the transaction yet.
func (c *Client) GetTransaction(ctx context.Context, signature string) (json.RawMessage, error) {
	return c.Call(ctx, MethodGetTransaction, signature, map[string]any{
		"encoding":                       "jsonParsed",
		"maxSupportedTransactionVersion": 0,
		"commitment":                     "finalized",
	})
}

// GetSignatureStatus returns the status of one signature, or nil when unknown.
func (c *Client) GetSignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error) {
	raw, err := c.Call(ctx, MethodGetSignatureStatuses, []string{signature}, map[string]any{
		"searchTransactionHistory": true,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var result SignatureStatusesResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode signature statuses: %w", err)
	}
	return result.First(), nil
}
