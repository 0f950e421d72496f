package api

import (
	"net/http"
	"time"
)

// NewServer wires the handler routes into an HTTP server bound to addr.
func NewServer(addr string, h *Handler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/wallet/{address}", h.GetWallet)
	mux.HandleFunc("GET /health", healthCheck)

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
