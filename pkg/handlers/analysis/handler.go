package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mathe-alves-alv/analise-dre/pkg/adapters"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/api"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	svc "github.com/mathe-alves-alv/analise-dre/pkg/services/analysis"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 4 << 20

type Handler struct {
	analyzer svc.Analyzer
}

func NewHandler(analyzer svc.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// Routes mounts the handler under the given router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/analyses", h.CreateAnalysis)
	r.Post("/markup", h.ComputeMarkup)
	r.Get("/categories", h.ListCategories)
	r.Get("/catalogs", h.ListCatalogs)
	r.Get("/catalogs/{name}", h.GetCatalog)
}

func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AnalysisRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	lines := req.Lines
	if req.Text != "" {
		if len(lines) > 0 {
			writeError(w, r, http.StatusBadRequest, "send either lines or text, not both", "text")
			return
		}
		split, err := svc.SplitLines(req.Text)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), "text")
			return
		}
		lines = split
	}

	inv, err := adapters.MapInventoryApiToDomain(req.Inventory)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sel, err := adapters.MapSelectionApiToDomain(req.Selection)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	ratio, err := h.ratio(req.TargetProfitRatio)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	c, err := h.analyzer.Catalogs().Get(req.Catalog)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "catalog")
		return
	}

	id := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("analysis_id", id).Logger()
	ctx = logger.WithContext(ctx)

	result, err := h.analyzer.Analyze(ctx, domain.AnalysisRequest{
		Lines:     lines,
		Inventory: inv,
		Catalog:   c.Name(),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.AnalysisResponse{
		ID:                id,
		Catalog:           c.Name(),
		Result:            adapters.MapAnalysisResultDomainToApi(*result),
		Selection:         sel.Keys(),
		TargetProfitRatio: ratio,
		MarkupFactor:      h.analyzer.Markup(ctx, result, sel, ratio),
	})
}

// ComputeMarkup prices a result returned earlier. A request without a result
// gets a null markup.
func (h *Handler) ComputeMarkup(w http.ResponseWriter, r *http.Request) {
	var req api.MarkupRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	sel, err := adapters.MapSelectionApiToDomain(req.Selection)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	ratio, err := h.ratio(req.TargetProfitRatio)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var result *domain.AnalysisResult
	if req.Result != nil {
		restored := adapters.MapAnalysisResultApiToDomain(*req.Result)
		result = &restored
	}

	writeJSON(w, r, http.StatusOK, api.MarkupResponse{
		Selection:         sel.Keys(),
		TargetProfitRatio: ratio,
		MarkupFactor:      h.analyzer.Markup(r.Context(), result, sel, ratio),
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapCategoriesDomainToApi(domain.Categories()))
}

func (h *Handler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	registry := h.analyzer.Catalogs()

	response := make([]api.CatalogSummary, 0)
	for _, name := range registry.List() {
		c, err := registry.Get(name)
		if err != nil {
			continue
		}
		response = append(response, adapters.MapCatalogSummaryDomainToApi(c))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, err := h.analyzer.Catalogs().Get(name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error(), "")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapCatalogDomainToApi(c))
}

var errNegativeRatio = errors.New("targetProfitRatio must not be negative")

func (h *Handler) ratio(requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested == nil {
		return h.analyzer.TargetProfitRatio(), nil
	}
	if requested.IsNegative() {
		return decimal.Zero, errNegativeRatio
	}
	return *requested, nil
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *metrics.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, err.Error(), "inventory."+verr.Field)
	case errors.Is(err, domain.ErrUnknownCategory):
		writeError(w, r, http.StatusBadRequest, err.Error(), "selection")
	case errors.Is(err, errNegativeRatio):
		writeError(w, r, http.StatusBadRequest, err.Error(), "targetProfitRatio")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("analysis failed")
		writeError(w, r, http.StatusInternalServerError, "analysis failed", "")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message, field string) {
	writeJSON(w, r, status, api.ErrorResponse{Message: message, Field: field})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
