package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/xenartist/memo.rip/pkg/app/http"
)

// HTTP wraps the Service to provide the read endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the /api read endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/burns", apphttp.HandleError(h.burnStats))
		r.Get("/burns/{signature}", apphttp.HandleError(h.getBurn))
		r.Get("/top-burns", apphttp.HandleError(h.topBurns))
		r.Get("/latest-burns", apphttp.HandleError(h.latestBurns))
		r.Get("/top-total-burns", apphttp.HandleError(h.topTotalBurns))
	})
}

func (h *HTTP) burnStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.BurnStats(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, stats)
	return nil
}

func (h *HTTP) topBurns(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.TopBurns(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, items)
	return nil
}

func (h *HTTP) latestBurns(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.LatestBurns(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, items)
	return nil
}

func (h *HTTP) topTotalBurns(w http.ResponseWriter, r *http.Request) error {
	items, err := h.service.TopTotalBurns(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, items)
	return nil
}

func (h *HTTP) getBurn(w http.ResponseWriter, r *http.Request) error {
	detail, err := h.service.GetBurn(r.Context(), chi.URLParam(r, "signature"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, detail)
	return nil
}
