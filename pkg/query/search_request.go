package query

import (
	"net/http"
	"slices"

	"github.com/gorilla/schema"
	"github.com/matst80/listing-filters/pkg/filter"
)

const (
	DefaultSort     = "newest"
	DefaultPageSize = 40
	MaxPage         = 100
	MaxPageSize     = 1000
)

// SortOptions lists the sort keys the listing backend understands.
var SortOptions = []string{DefaultSort, "price-asc", "price-desc", "beds", "sqft", "days-on-market"}

// SearchRequest holds the scalar query parameters. Facets travel as the
// repeated str and rng parameters and are kept in the filter state.
type SearchRequest struct {
	Status     string `json:"status" schema:"status,omitempty"`
	TimeRange  string `json:"time" schema:"time,omitempty"`
	CustomDate string `json:"date" schema:"date,omitempty"`
	Query      string `json:"q" schema:"q,omitempty"`
	Sort       string `json:"sort" schema:"sort,omitempty"`
	Page       int    `json:"page" schema:"page,omitempty"`
	PageSize   int    `json:"pageSize" schema:"size,omitempty"`
}

// Page is the pagination part of a request.
type Page struct {
	Number int
	Size   int
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (s *SearchRequest) Sanitize() {
	s.Page = clamp(s.Page, 0, MaxPage)
	if s.PageSize == 0 {
		s.PageSize = DefaultPageSize
	}
	s.PageSize = clamp(s.PageSize, 1, MaxPageSize)
	if !slices.Contains(SortOptions, s.Sort) {
		s.Sort = DefaultSort
	}
}

func makeBaseSearchRequest() *SearchRequest {
	return &SearchRequest{
		Sort:     DefaultSort,
		PageSize: DefaultPageSize,
	}
}

// FromRequest parses the query string of r.
func FromRequest(r *http.Request, fallback filter.Status) (*SearchRequest, filter.State, error) {
	return Parse(r.URL.Query(), fallback)
}
