package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apphttp "github.com/xenartist/memo.rip/pkg/app/http"
	"github.com/xenartist/memo.rip/pkg/solana"
	"github.com/xenartist/memo.rip/pkg/solana/solanatest"
)

func newProxyServer(gw *Gateway, maxBody int64) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, gw, maxBody, zap.NewNop())
	return r
}

func postProxy(t *testing.T, h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apphttp.ErrorResponse {
	t.Helper()
	var got apphttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestProxyHTTP_ForwardsUpstreamResponse(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.Status(solana.CommitmentConfirmed))
	gw, _, _ := newTestGateway(t, node)
	h := newProxyServer(gw, 1<<20)

	for _, path := range []string{ProxyPath, ProxyAliasPath} {
		t.Run(path, func(t *testing.T) {
			rec := postProxy(t, h, path, statusRequest(t, testSig))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"confirmationStatus":"confirmed"`)
		})
	}
}

func TestProxyHTTP_ConfirmationTimeout(t *testing.T) {
	node := solanatest.NewNode(t)
	node.Result(solana.MethodGetSignatureStatuses, solanatest.UnknownStatus())
	gw, _, _ := newTestGateway(t, node)

	rec := postProxy(t, newProxyServer(gw, 1<<20), ProxyPath, statusRequest(t, testSig))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, apphttp.ErrorResponse{Error: "Transaction confirmation timeout", Code: http.StatusGatewayTimeout}, decodeError(t, rec))
}

func TestProxyHTTP_UpstreamUnreachable(t *testing.T) {
	node := solanatest.NewNode(t)
	gw, _, _ := newTestGateway(t, node)
	node.Close()

	rec := postProxy(t, newProxyServer(gw, 1<<20), ProxyAliasPath, []byte(`{"jsonrpc":"2.0","id":1,"method":"getSlot"}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Proxy error occurred", decodeError(t, rec).Error)
}

func TestProxyHTTP_BodyTooLarge(t *testing.T) {
	node := solanatest.NewNode(t)
	gw, _, _ := newTestGateway(t, node)

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"getSlot","params":["` + strings.Repeat("a", 64) + `"]}`)
	rec := postProxy(t, newProxyServer(gw, 32), ProxyPath, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body too large", decodeError(t, rec).Error)
	assert.Zero(t, node.Calls("getSlot"))
}

func TestProxyHTTP_UpstreamStatusIsPreserved(t *testing.T) {
	node := solanatest.NewNode(t)
	gw, _, _ := newTestGateway(t, node)

	rec := postProxy(t, newProxyServer(gw, 1<<20), ProxyPath, []byte(`{"jsonrpc":"2.0","id":1,"method":"notAMethod"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method not found")
}
