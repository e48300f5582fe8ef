// Package transport exposes HTTP and gRPC handlers.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"go.uber.org/zap"
)

const (
	defaultTraceDepth   = 2
	defaultMaxDepth     = 6
	defaultTraceTimeout = 30 * time.Second
	defaultMaxLocations = 1000
)

type HandlerConfig struct {
	// DefaultDepth is used when the request has no depth parameter.
	DefaultDepth int
	// MaxDepth caps the depth a client may ask for.
	MaxDepth int
	Timeout  time.Duration
	// MaxTransactions caps the records returned by the transactions endpoint.
	MaxTransactions int
}

// ForensicsHandler serves traces and address histories as JSON.
type ForensicsHandler struct {
	forensics Forensics
	cfg       HandlerConfig
	logger    *zap.Logger
}

func NewForensicsHandler(forensics Forensics, cfg HandlerConfig, logger *zap.Logger) *ForensicsHandler {
	if cfg.DefaultDepth <= 0 {
		cfg.DefaultDepth = defaultTraceDepth
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTraceTimeout
	}
	if cfg.MaxTransactions <= 0 {
		cfg.MaxTransactions = defaultMaxLocations
	}
	return &ForensicsHandler{forensics: forensics, cfg: cfg, logger: logger}
}

// Register adds the handler routes to mux.
func (h *ForensicsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/trace", h.trace)
	mux.HandleFunc("GET /v1/transactions", h.transactions)
}

type traceResponse struct {
	Address string            `json:"address"`
	Depth   int               `json:"depth"`
	Graph   *model.TraceGraph `json:"graph"`
}

type transactionsResponse struct {
	Address      string                    `json:"address"`
	Transactions []model.TransactionRecord `json:"transactions"`
	Truncated    bool                      `json:"truncated,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ForensicsHandler) trace(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	depth := h.cfg.DefaultDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: depth %q is not an integer", model.ErrInvalidArgument, raw))
			return
		}
		depth = d
	}
	if depth > h.cfg.MaxDepth {
		h.writeError(w, fmt.Errorf("%w: depth %d exceeds limit %d", model.ErrInvalidArgument, depth, h.cfg.MaxDepth))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout)
	defer cancel()

	g, err := h.forensics.Trace(ctx, address, depth)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, traceResponse{Address: address, Depth: depth, Graph: g})
}

func (h *ForensicsHandler) transactions(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	locs, err := h.forensics.Lookup(address)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := transactionsResponse{Address: address, Transactions: []model.TransactionRecord{}}
	if len(locs) > h.cfg.MaxTransactions {
		locs = locs[:h.cfg.MaxTransactions]
		resp.Truncated = true
	}
	for _, loc := range locs {
		if err := r.Context().Err(); err != nil {
			h.writeError(w, err)
			return
		}
		rec, err := h.forensics.Transaction(loc)
		if err != nil {
			h.logger.Warn("skip unreadable record", zap.Stringer("location", loc), zap.Error(err))
			continue
		}
		resp.Transactions = append(resp.Transactions, rec)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *ForensicsHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// client went away
		status = 499
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *ForensicsHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
