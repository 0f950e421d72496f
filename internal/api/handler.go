package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/perpview/perpview/internal/domain"
)

// PortfolioDeriver runs the wallet-level derivation pipeline.
type PortfolioDeriver interface {
	Derive(ctx context.Context, wallet string) (domain.WalletPortfolio, error)
}

// Handler provides HTTP endpoints for the wallet view API.
type Handler struct {
	portfolios    PortfolioDeriver
	deriveTimeout time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(portfolios PortfolioDeriver, deriveTimeout time.Duration) *Handler {
	return &Handler{portfolios: portfolios, deriveTimeout: deriveTimeout}
}

// GetWallet handles GET /api/v1/wallet/{address}.
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")

	ctx := r.Context()
	if h.deriveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.deriveTimeout)
		defer cancel()
	}

	view, err := h.portfolios.Derive(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWallet) {
			writeError(w, http.StatusBadRequest, "invalid wallet address")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "derivation timed out")
			return
		}
		slog.Error("failed to derive portfolio", "wallet", address, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
