package persistance

import (
	"errors"
	"fmt"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/filter"
)

var ErrInvalidDocument = errors.New("invalid filter document")

// FromState converts a state to its persisted layout.
func FromState(s filter.State) Document {
	doc := Document{
		Status:        string(s.Status),
		TimeRange:     string(s.TimeRange),
		Cities:        nonNil(s.Cities),
		PropertyTypes: nonNil(s.PropertyTypes),
		Advanced:      fromAdvanced(s.Advanced),
	}
	if s.CustomDate != "" {
		doc.TimeRangeCustomDate = stringPtr(s.CustomDate)
	}
	doc.Price.Min, doc.Price.Max, doc.Price.Preset, _ = fromSelection(s.Price)
	doc.Beds.Min, doc.Beds.Max, doc.Beds.Preset, doc.Beds.Exact = fromSelection(s.Beds)
	doc.Baths.Min, doc.Baths.Max, doc.Baths.Preset, doc.Baths.Exact = fromSelection(s.Baths)
	return doc
}

func fromSelection(r filter.RangeSelection) (lo, hi *float64, preset *string, exact *float64) {
	switch r.Kind() {
	case filter.SelectExact:
		v, _ := r.ExactValue()
		return nil, nil, nil, filter.Float(v)
	case filter.SelectCustom:
		lo, hi = r.Bounds()
		return lo, hi, nil, nil
	}
	name, _ := r.PresetName()
	return nil, nil, stringPtr(name), nil
}

func fromAdvanced(a filter.AdvancedState) AdvancedDocument {
	doc := AdvancedDocument{
		Keywords:         nonNil(a.Keywords),
		PropertyClasses:  nonNil(a.PropertyClasses),
		Ranges:           make(map[string]BoundsDocument, len(filter.RangeFields)),
		HouseStyle:       nonNil(a.HouseStyle),
		LotFrontage:      optional(a.LotFrontage),
		LotDepth:         optional(a.LotDepth),
		BasementFeatures: nonNil(a.BasementFeatures),
		PropertyAge:      optional(a.PropertyAge),
		SwimmingPool:     optional(string(a.SwimmingPool)),
		Waterfront:       optional(string(a.Waterfront)),
		OpenHouseTiming:  string(a.OpenHouse),
	}
	for _, field := range filter.RangeFields {
		r := a.Range(field)
		doc.Ranges[string(field)] = BoundsDocument{Min: r.Min, Max: r.Max}
	}
	return doc
}

// Encode serializes a state to JSON.
func Encode(s filter.State) ([]byte, error) {
	data, err := jsoncompat.Marshal(FromState(s))
	if err != nil {
		return nil, fmt.Errorf("encode filter state: %w", err)
	}
	return data, nil
}

// Decode parses JSON produced by Encode, or any loosely shaped document
// following the same layout. Missing or malformed fields fall back to the
// defaults for fallback.
func Decode(data []byte, fallback filter.Status) (filter.State, error) {
	var raw any
	if err := jsoncompat.Unmarshal(data, &raw); err != nil {
		return filter.DefaultState(fallback), fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return filter.DefaultState(fallback), fmt.Errorf("%w: expected an object", ErrInvalidDocument)
	}
	return Parse(doc, fallback), nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return stringPtr(v)
}

func stringPtr(v string) *string {
	return &v
}
