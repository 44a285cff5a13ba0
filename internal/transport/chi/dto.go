package chi

import (
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeListingNotFound  ErrorCode = "listing_not_found"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeReadOnly         ErrorCode = "read_only"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeFetchFailed      ErrorCode = "fetch_failed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldInfo describes one declared listing field.
type FieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListingInfo describes a listing and its size.
type ListingInfo struct {
	Kind         string      `json:"kind"`
	Title        string      `json:"title"`
	Fields       []FieldInfo `json:"fields"`
	SearchFields []string    `json:"search_fields"`
	FacetFields  []string    `json:"facet_fields"`
	SortFields   []string    `json:"sort_fields"`
	Total        int         `json:"total"`
	Degraded     bool        `json:"degraded"`
}

// ListingsResponse is the body of GET /api/v1/listings.
type ListingsResponse struct {
	Items []ListingInfo `json:"items"`
}

// QueryResponse is the body of GET /api/v1/listings/{kind}.
type QueryResponse struct {
	Items        []record.Record `json:"items"`
	MatchedCount int             `json:"matched_count"`
	TotalCount   int             `json:"total_count"`
	Summary      string          `json:"summary"`
	Degraded     bool            `json:"degraded"`
}

// ImportRequest is the body of PUT /api/v1/listings/{kind}.
type ImportRequest struct {
	Items []map[string]any `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func listingToDTO(sum listinguc.Summary) ListingInfo {
	s := sum.Schema
	fields := make([]FieldInfo, 0, len(s.Fields()))
	for _, f := range s.Fields() {
		fields = append(fields, FieldInfo{Name: f.Name(), Type: string(f.FieldType())})
	}
	return ListingInfo{
		Kind:         s.Kind(),
		Title:        s.Title(),
		Fields:       fields,
		SearchFields: nonNil(s.SearchFields()),
		FacetFields:  nonNil(s.FacetFields()),
		SortFields:   nonNil(s.SortFields()),
		Total:        sum.Total,
		Degraded:     sum.Degraded,
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func pageToDTO(p listinguc.Page) QueryResponse {
	return QueryResponse{
		Items:        p.Result.Items(),
		MatchedCount: p.Result.MatchedCount(),
		TotalCount:   p.Result.TotalCount(),
		Summary:      p.Result.Summary(),
		Degraded:     p.Degraded,
	}
}

func healthToDTO(r health.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}
