package gateway

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/xenartist/memo.rip/pkg/app/errors"
	apphttp "github.com/xenartist/memo.rip/pkg/app/http"
	"github.com/xenartist/memo.rip/pkg/solana"
)

// Proxy routes.
const (
	ProxyPath      = "/rpc-proxy"
	ProxyAliasPath = "/api/solana-rpc"
)

// HTTP exposes the Gateway as JSON-RPC proxy endpoints.
type HTTP struct {
	gateway      *Gateway
	maxBodyBytes int64
	logger       *zap.Logger
}

// RegisterRoutes registers the proxy endpoints on the given chi router.
func RegisterRoutes(r chi.Router, gw *Gateway, maxBodyBytes int64, logger *zap.Logger) {
	h := &HTTP{
		gateway:      gw,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}

	r.Post(ProxyPath, apphttp.HandleError(h.proxy))
	r.Post(ProxyAliasPath, apphttp.HandleError(h.proxy))
}

func (h *HTTP) proxy(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes+1))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if int64(len(body)) > h.maxBodyBytes {
		return apperrors.BadRequestError(nil, "request body too large")
	}

	resp, err := h.gateway.HandleProxiedCall(r.Context(), body)
	if err != nil {
		return h.mapError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
	return nil
}

func (h *HTTP) mapError(err error) error {
	switch {
	case errors.Is(err, ErrConfirmationTimeout):
		return apperrors.TimeoutError(err, "Transaction confirmation timeout")
	case solana.IsTransportError(err):
		h.logger.Error("Proxy error", zap.Error(err))
		return apperrors.DependencyFailureError(err, "Proxy error occurred")
	default:
		h.logger.Error("Proxy request failed", zap.Error(err))
		return apperrors.GeneralError(err)
	}
}
