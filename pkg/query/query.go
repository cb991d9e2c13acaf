package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/matst80/listing-filters/pkg/filter"
)

// Facet names used in the str and rng parameters.
const (
	FacetCity          = "city"
	FacetPropertyType  = "type"
	FacetPropertyClass = "class"
	FacetHouseStyle    = "style"
	FacetBasement      = "basement"
	FacetLotFrontage   = "frontage"
	FacetLotDepth      = "depth"
	FacetPropertyAge   = "age"
	FacetPool          = "pool"
	FacetWaterfront    = "waterfront"
	FacetOpenHouse     = "openHouse"
	FacetKeywords      = "keywords"

	FacetPrice = "price"
	FacetBeds  = "beds"
	FacetBaths = "baths"
)

const valueSeparator = "||"

// Build turns a state plus paging, sort and search term into backend query
// parameters. The state is normalized first and parameters holding their
// default value are left out.
func Build(s filter.State, page Page, sort, term string) (url.Values, error) {
	s = filter.NormalizeState(s, s.Status)
	sr := SearchRequest{
		Status:   string(s.Status),
		Query:    strings.TrimSpace(term),
		Sort:     sort,
		Page:     page.Number,
		PageSize: page.Size,
	}
	sr.Sanitize()
	if s.TimeRange != filter.AllTime {
		sr.TimeRange = string(s.TimeRange)
	}
	if s.TimeRange == filter.CustomDateRange {
		sr.CustomDate = s.CustomDate
	}
	if sr.Sort == DefaultSort {
		sr.Sort = ""
	}
	if sr.PageSize == DefaultPageSize {
		sr.PageSize = 0
	}

	values := url.Values{}
	if err := encoder.Encode(sr, values); err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	str := func(facet string, members ...string) {
		if len(members) == 0 || (len(members) == 1 && members[0] == "") {
			return
		}
		values.Add("str", facet+":"+strings.Join(members, valueSeparator))
	}
	rng := func(facet string, lo, hi *float64) {
		if lo == nil && hi == nil {
			return
		}
		values.Add("rng", facet+":"+formatBound(lo)+"-"+formatBound(hi))
	}

	str(FacetCity, s.Cities...)
	str(FacetPropertyType, s.PropertyTypes...)

	lo, hi := filter.ResolveBounds(s.Price, filter.PricePresets)
	rng(FacetPrice, lo, hi)
	lo, hi = filter.ResolveBounds(s.Beds, filter.BedPresets)
	rng(FacetBeds, lo, hi)
	lo, hi = filter.ResolveBounds(s.Baths, filter.BathPresets)
	rng(FacetBaths, lo, hi)

	a := s.Advanced
	str(FacetKeywords, a.Keywords...)
	str(FacetPropertyClass, a.PropertyClasses...)
	styles := make([]string, 0, len(a.HouseStyle))
	for _, display := range a.HouseStyle {
		if raw, ok := filter.HouseStyleRaw(display); ok {
			styles = append(styles, raw)
		}
	}
	str(FacetHouseStyle, styles...)
	str(FacetBasement, a.BasementFeatures...)
	str(FacetLotFrontage, a.LotFrontage)
	str(FacetLotDepth, a.LotDepth)
	str(FacetPropertyAge, a.PropertyAge)
	str(FacetPool, string(a.SwimmingPool))
	str(FacetWaterfront, string(a.Waterfront))
	if a.OpenHouse != filter.OpenHouseAll {
		str(FacetOpenHouse, string(a.OpenHouse))
	}
	for _, field := range filter.RangeFields {
		d, _ := filter.DomainOf(field)
		r := a.Range(field)
		if r.Min <= d.Lo && r.Max >= d.Hi {
			continue
		}
		rng(string(field), &r.Min, &r.Max)
	}
	return values, nil
}

// Encode is Build rendered as a query string.
func Encode(s filter.State, page Page, sort, term string) (string, error) {
	values, err := Build(s, page, sort, term)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// Parse reads parameters produced by Build back into a request and a
// normalized state. Malformed facet entries are skipped; an error is only
// returned when the scalar parameters cannot be decoded, in which case the
// result still holds everything that could be read.
func Parse(values url.Values, fallback filter.Status) (*SearchRequest, filter.State, error) {
	sr := makeBaseSearchRequest()
	decodeErr := decoder.Decode(sr, values)
	sr.Sanitize()

	s := filter.DefaultState(fallback)
	if sr.Status != "" {
		s.Status = filter.Status(sr.Status)
	}
	if sr.TimeRange != "" {
		s.TimeRange = filter.TimeRange(sr.TimeRange)
	}
	s.CustomDate = sr.CustomDate
	decodeStringFacets(values["str"], &s)
	decodeRangeFacets(values["rng"], &s)

	s = filter.NormalizeState(s, fallback)
	sr.Status = string(s.Status)
	sr.TimeRange = string(s.TimeRange)
	sr.CustomDate = s.CustomDate
	if decodeErr != nil {
		return sr, s, fmt.Errorf("decode search request: %w", decodeErr)
	}
	return sr, s, nil
}

func decodeStringFacets(entries []string, s *filter.State) {
	a := &s.Advanced
	for _, v := range entries {
		facet, raw, ok := strings.Cut(v, ":")
		if !ok {
			continue
		}
		facet = strings.TrimSpace(facet)
		members := make([]string, 0, 1)
		for _, m := range strings.Split(raw, valueSeparator) {
			if m = strings.TrimSpace(m); m != "" {
				members = append(members, m)
			}
		}
		if facet == "" || len(members) == 0 {
			continue
		}
		first := members[0]
		switch facet {
		case FacetCity:
			s.Cities = members
		case FacetPropertyType:
			s.PropertyTypes = members
		case FacetKeywords:
			a.Keywords = members
		case FacetPropertyClass:
			a.PropertyClasses = members
		case FacetHouseStyle:
			a.HouseStyle = members
		case FacetBasement:
			a.BasementFeatures = members
		case FacetLotFrontage:
			a.LotFrontage = first
		case FacetLotDepth:
			a.LotDepth = first
		case FacetPropertyAge:
			a.PropertyAge = first
		case FacetPool:
			a.SwimmingPool = filter.YesNo(first)
		case FacetWaterfront:
			a.Waterfront = filter.YesNo(first)
		case FacetOpenHouse:
			a.OpenHouse = filter.OpenHouseTiming(first)
		}
	}
}

func decodeRangeFacets(entries []string, s *filter.State) {
	for _, v := range entries {
		facet, bounds, ok := strings.Cut(v, ":")
		if !ok {
			continue
		}
		loText, hiText, ok := strings.Cut(bounds, "-")
		if !ok {
			continue
		}
		lo, err := parseBound(loText)
		if err != nil {
			continue
		}
		hi, err := parseBound(hiText)
		if err != nil {
			continue
		}
		switch facet {
		case FacetPrice:
			s.Price = filter.Custom(lo, hi)
		case FacetBeds:
			s.Beds = roomSelection(lo, hi)
		case FacetBaths:
			s.Baths = roomSelection(lo, hi)
		default:
			field := filter.RangeField(facet)
			d, known := filter.DomainOf(field)
			if !known {
				continue
			}
			r := filter.NumberRange{Min: d.Lo, Max: d.Hi}
			if lo != nil {
				r.Min = *lo
			}
			if hi != nil {
				r.Max = *hi
			}
			s.Advanced.Ranges[field] = r
		}
	}
}

func roomSelection(lo, hi *float64) filter.RangeSelection {
	if lo != nil && hi != nil && *lo == *hi {
		return filter.Exact(*lo)
	}
	return filter.Custom(lo, hi)
}

func parseBound(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
