package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	"github.com/kailas-cloud/helix/internal/domain/record"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

// StaleHeader marks responses computed over a stale or empty snapshot.
const StaleHeader = "X-Listing-Stale"

// Query parameter prefixes.
const (
	facetPrefix = "facet."
	gtPrefix    = "gt."
	gtePrefix   = "gte."
	ltPrefix    = "lt."
	ltePrefix   = "lte."
)

// ListListings handles GET /api/v1/listings.
func (s *Server) ListListings(w http.ResponseWriter, r *http.Request) {
	sums, err := s.listings.Overview(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]ListingInfo, 0, len(sums))
	for _, sum := range sums {
		items = append(items, listingToDTO(sum))
	}
	writeJSON(w, http.StatusOK, ListingsResponse{Items: items})
}

// QueryListing handles GET /api/v1/listings/{kind}.
func (s *Server) QueryListing(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	q, err := queryFromParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err))
		return
	}

	page, err := s.listings.Query(r.Context(), kind, q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if page.Degraded {
		w.Header().Set(StaleHeader, "true")
	}
	writeJSON(w, http.StatusOK, pageToDTO(page))
}

// ImportListing handles PUT /api/v1/listings/{kind}.
func (s *Server) ImportListing(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var req ImportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request body")
		return
	}

	records := make([]record.Record, 0, len(req.Items))
	for i, item := range req.Items {
		rec, err := record.FromMap(item)
		if err != nil {
			s.handleDomainError(w, fmt.Errorf("%w: items[%d]: %w", domain.ErrInvalidRecord, i, err))
			return
		}
		records = append(records, rec)
	}

	if err := s.listings.Import(r.Context(), kind, records); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryFromParams parses q, facet.<f>, gt/gte/lt/lte.<f>, sort and order.
func queryFromParams(v url.Values) (listinguc.Query, error) {
	facets := make(map[string]string)
	bounds := make(map[string]*[4]*float64) // gt, gte, lt, lte

	for key, vals := range v {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]

		if name, ok := strings.CutPrefix(key, facetPrefix); ok {
			facets[name] = val
			continue
		}
		for i, prefix := range []string{gtPrefix, gtePrefix, ltPrefix, ltePrefix} {
			name, ok := strings.CutPrefix(key, prefix)
			if !ok {
				continue
			}
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return listinguc.Query{}, fmt.Errorf("%s: not a number: %q", key, val)
			}
			b := bounds[name]
			if b == nil {
				b = &[4]*float64{}
				bounds[name] = b
			}
			b[i] = &f
		}
	}

	var ranges []filter.Condition
	for _, name := range slices.Sorted(maps.Keys(bounds)) {
		b := bounds[name]
		rng, err := filter.NewRangeFilter(b[0], b[1], b[2], b[3])
		if err != nil {
			return listinguc.Query{}, fmt.Errorf("range %s: %w", name, err)
		}
		cond, err := filter.NewRange(name, rng)
		if err != nil {
			return listinguc.Query{}, err
		}
		ranges = append(ranges, cond)
	}

	st, err := filter.NewState(v.Get("q"), facets, ranges)
	if err != nil {
		return listinguc.Query{}, err
	}

	q := listinguc.Query{Filter: st}
	if field := v.Get("sort"); field != "" {
		spec, err := order.NewSpec(field, order.Direction(v.Get("order")))
		if err != nil {
			return listinguc.Query{}, err
		}
		q.Sort = spec
	} else if v.Get("order") != "" {
		return listinguc.Query{}, errors.New("order requires sort")
	}
	return q, nil
}
