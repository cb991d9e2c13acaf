package persistance

import (
	"math"
	"strconv"
	"strings"

	"github.com/matst80/listing-filters/pkg/filter"
)

// Parse converts a loosely typed document, e.g. one decoded from JSON into
// map[string]any, into a normalized state. It never fails: unknown keys are
// ignored and malformed values fall back to the field default.
func Parse(doc map[string]any, fallback filter.Status) filter.State {
	s := filter.DefaultState(fallback)
	if doc == nil {
		return s
	}
	if status, ok := asString(doc["status"]); ok {
		s.Status = filter.Status(status)
	}
	if tr, ok := asString(doc["timeRange"]); ok {
		s.TimeRange = filter.TimeRange(tr)
	}
	if date, ok := asString(doc["timeRangeCustomDate"]); ok {
		s.CustomDate = date
	}
	s.Cities = asStrings(doc["cities"])
	s.PropertyTypes = asStrings(doc["propertyTypes"])
	s.Price = parseSelection(doc["price"], false)
	s.Beds = parseSelection(doc["beds"], true)
	s.Baths = parseSelection(doc["baths"], true)
	if adv, ok := doc["advanced"].(map[string]any); ok {
		s.Advanced = parseAdvanced(adv)
	}
	return filter.NormalizeState(s, fallback)
}

func parseSelection(raw any, allowExact bool) filter.RangeSelection {
	obj, ok := raw.(map[string]any)
	if !ok {
		return filter.Preset(filter.AnyPreset)
	}
	if preset, ok := asString(obj["preset"]); ok && preset != filter.AnyPreset && preset != "" {
		return filter.Preset(preset)
	}
	if allowExact {
		if exact := asFloat(obj["exact"]); exact != nil {
			return filter.Exact(*exact)
		}
	}
	return filter.Custom(asFloat(obj["min"]), asFloat(obj["max"]))
}

func parseAdvanced(obj map[string]any) filter.AdvancedState {
	a := filter.DefaultAdvanced()
	a.Keywords = asStrings(obj["keywords"])
	a.PropertyClasses = asStrings(obj["propertyClasses"])
	a.HouseStyle = asStrings(obj["houseStyle"])
	a.BasementFeatures = asStrings(obj["basementFeatures"])
	a.LotFrontage, _ = asString(obj["lotFrontage"])
	a.LotDepth, _ = asString(obj["lotDepth"])
	a.PropertyAge, _ = asString(obj["propertyAge"])
	a.SwimmingPool = asYesNo(obj["swimmingPool"])
	a.Waterfront = asYesNo(obj["waterfront"])

	if timing, ok := asString(obj["openHouseTiming"]); ok {
		a.OpenHouse = filter.OpenHouseTiming(timing)
	} else if timing, ok := asString(obj["openHouse"]); ok {
		a.OpenHouse = filter.OpenHouseTiming(timing)
	}

	ranges, _ := obj["ranges"].(map[string]any)
	for _, field := range filter.RangeFields {
		raw, ok := ranges[string(field)]
		if !ok {
			// older documents kept the ranges next to the other fields
			raw, ok = obj[string(field)]
		}
		bounds, isObject := raw.(map[string]any)
		if !ok || !isObject {
			continue
		}
		d, _ := filter.DomainOf(field)
		r := filter.NumberRange{Min: d.Lo, Max: d.Hi}
		if v := asFloat(bounds["min"]); v != nil {
			r.Min = *v
		}
		if v := asFloat(bounds["max"]); v != nil {
			r.Max = *v
		}
		a.Ranges[field] = r
	}
	return a
}

func asString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// asStrings accepts arrays of strings or a comma separated string. Blank and
// repeated entries are dropped.
func asStrings(raw any) []string {
	result := []string{}
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			add(part)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case []string:
		for _, s := range v {
			add(s)
		}
	}
	return result
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// asFloat returns nil for null, missing and malformed values.
func asFloat(raw any) *float64 {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(numberCleaner.Replace(n), 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func asYesNo(raw any) filter.YesNo {
	switch v := raw.(type) {
	case bool:
		if v {
			return filter.Yes
		}
		return filter.No
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "true":
			return filter.Yes
		case "no", "false":
			return filter.No
		}
	}
	return filter.AnyYesNo
}
