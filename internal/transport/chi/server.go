package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record"
	healthuc "github.com/kailas-cloud/helix/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

// maxImportBytes caps the body of an import request.
const maxImportBytes = 8 << 20

// ListingService is the consumer interface for listing operations.
type ListingService interface {
	Kinds() []schema.Schema
	Overview(ctx context.Context) ([]listinguc.Summary, error)
	Query(ctx context.Context, kind string, q listinguc.Query) (listinguc.Page, error)
	Import(ctx context.Context, kind string, records []record.Record) error
}

// HealthChecker is the consumer interface for health reports.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the listings HTTP API.
type Server struct {
	listings      ListingService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(listings ListingService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		listings: listings,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, ErrorCodeListingNotFound),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrReadOnlyStore, http.StatusMethodNotAllowed, ErrorCodeReadOnly),
		sentinelHandler(domain.ErrFetchFailed, http.StatusBadGateway, ErrorCodeFetchFailed),
	}
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrListingNotFound,
		domain.ErrInvalidFilter,
		domain.ErrInvalidRecord,
		domain.ErrReadOnlyStore,
		domain.ErrFetchFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationMessage returns the full error text for caller errors and fallback otherwise.
func validationMessage(err error, fallback string) string {
	if errors.Is(err, domain.ErrInvalidFilter) || errors.Is(err, domain.ErrInvalidRecord) {
		return err.Error()
	}
	return fallback
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := validationMessage(err, safeDomainMessage(err))
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
