// Package httpapi exposes the read-only dashboard API. Handlers validate
// input before touching the store and translate store failures into the
// error taxonomy; raw store errors never reach clients.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salesdash/api/internal/domain"
	"github.com/salesdash/api/internal/query"
	"github.com/salesdash/api/internal/repository"
)

type Handler struct {
	repo   repository.SaleRepository
	logger *logrus.Logger
}

func NewHandler(repo repository.SaleRepository, logger *logrus.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Register wires the API routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sales", h.handleListSales)
	mux.HandleFunc("GET /api/sales/filters/options", h.handleFilterOptions)
	mux.HandleFunc("GET /api/sales/{transactionId}", h.handleGetSale)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("/", h.handleNotFound)
}

type salesResponse struct {
	Success    bool              `json:"success"`
	Data       []domain.Sale     `json:"data"`
	Stats      domain.Stats      `json:"stats"`
	Pagination domain.Pagination `json:"pagination"`
}

type saleResponse struct {
	Success bool        `json:"success"`
	Data    domain.Sale `json:"data"`
}

type filtersResponse struct {
	Success bool                 `json:"success"`
	Filters domain.FilterOptions `json:"filters"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	q, err := query.Normalize(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	sales, total, err := h.repo.List(r.Context(), q)
	if err != nil {
		h.writeError(w, domain.ClassifyStoreError(err))
		return
	}

	stats, err := h.repo.Aggregate(r.Context(), q.Filter)
	if err != nil {
		h.writeError(w, domain.ClassifyStoreError(err))
		return
	}

	writeJSON(w, http.StatusOK, salesResponse{
		Success:    true,
		Data:       sales,
		Stats:      stats,
		Pagination: domain.NewPagination(q.Page, q.Limit, total),
	})
}

func (h *Handler) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.repo.FilterOptions(r.Context())
	if err != nil {
		h.writeError(w, domain.ClassifyStoreError(err))
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{Success: true, Filters: options})
}

var transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func (h *Handler) handleGetSale(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionId")
	if !transactionIDPattern.MatchString(transactionID) {
		h.writeError(w, &domain.InvalidIdentifierError{ID: transactionID})
		return
	}

	sale, err := h.repo.GetByTransactionID(r.Context(), transactionID)
	if err != nil {
		h.writeError(w, domain.ClassifyStoreError(err))
		return
	}
	writeJSON(w, http.StatusOK, saleResponse{Success: true, Data: sale})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "endpoint not found"})
}

// writeError maps a taxonomy error to its HTTP status. Store failures are
// logged with their cause and surfaced with a generic message only.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		identifierErr *domain.InvalidIdentifierError
		duplicateErr  *domain.DuplicateKeyError
		storeErr      *domain.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})
	case errors.As(err, &identifierErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: identifierErr.Error()})
	case errors.As(err, &duplicateErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: duplicateErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrNotFound.Error()})
	case errors.As(err, &storeErr):
		h.logger.WithError(errors.Unwrap(storeErr)).Error("store failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: storeErr.Error()})
	default:
		h.logger.WithError(err).Error("unexpected failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
