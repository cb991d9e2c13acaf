package persistance

import (
	"math"

	"github.com/matst80/listing-filters/pkg/filter"
)

// ParseAction converts a {type, payload} record into a typed action. The
// type names match filter.ActionName. Unknown types return nil, which the
// reducer treats as a no-op.
func ParseAction(rec ActionRecord) filter.Action {
	p := rec.Payload
	if p == nil {
		p = map[string]any{}
	}
	str := func(key string) string {
		v, _ := asString(p[key])
		return v
	}
	switch rec.Type {
	case "set-status":
		return filter.SetStatus{Status: filter.Status(str("status"))}
	case "set-time-range":
		return filter.SetTimeRange{Range: filter.TimeRange(str("range"))}
	case "set-custom-date":
		return filter.SetCustomDate{Date: str("date")}
	case "set-cities":
		return filter.SetCities{Cities: asStrings(p["cities"])}
	case "toggle-city":
		return filter.ToggleCity{City: str("city")}
	case "set-property-types":
		return filter.SetPropertyTypes{Types: asStrings(p["types"])}
	case "toggle-property-type":
		return filter.TogglePropertyType{Type: str("type")}
	case "set-price":
		return filter.SetPrice{Patch: parseRangePatch(p)}
	case "set-beds":
		return filter.SetBeds{Patch: parseRangePatch(p)}
	case "set-baths":
		return filter.SetBaths{Patch: parseRangePatch(p)}
	case "merge-advanced":
		adv, _ := p["advanced"].(map[string]any)
		return filter.MergeAdvanced{Advanced: parseAdvanced(adv)}
	case "reset-advanced":
		return filter.ResetAdvanced{}
	case "reset-all":
		return filter.ResetAll{}
	case "add-quick-filter":
		return filter.AddQuickFilter{Label: str("label")}
	case "remove-quick-filter":
		return filter.RemoveQuickFilter{Label: str("label")}
	case "toggle-quick-filter":
		return filter.ToggleQuickFilter{Label: str("label")}
	}
	if adv := parseAdvancedAction(rec.Type, p); adv != nil {
		return filter.Advanced{Action: adv}
	}
	return nil
}

func parseAdvancedAction(kind string, p map[string]any) filter.AdvancedAction {
	str := func(key string) string {
		v, _ := asString(p[key])
		return v
	}
	switch kind {
	case "advanced/set-field":
		return filter.SetField{Field: filter.AdvancedField(str("field")), Value: str("value")}
	case "advanced/set-range":
		bound := filter.MinBound
		if str("bound") == "max" {
			bound = filter.MaxBound
		}
		value := math.NaN()
		if v := asFloat(p["value"]); v != nil {
			value = *v
		}
		return filter.SetRange{Field: filter.RangeField(str("field")), Bound: bound, Value: value}
	case "advanced/toggle-basement-feature":
		return filter.ToggleBasementFeature{Feature: str("feature")}
	case "advanced/toggle-house-style":
		return filter.ToggleHouseStyle{Style: str("style")}
	case "advanced/toggle-property-class":
		return filter.TogglePropertyClass{Class: str("class")}
	case "advanced/set-open-house":
		return filter.SetOpenHouse{Timing: filter.OpenHouseTiming(str("timing"))}
	case "advanced/reset":
		baseline, _ := p["baseline"].(map[string]any)
		return filter.ResetAdvancedTo{Baseline: parseAdvanced(baseline)}
	}
	return nil
}

// parseRangePatch reads min, max, preset and exact. A present key with a
// null or malformed value clears that part, an absent key keeps it. A null
// preset or exact next to bounds only marks them inactive, so
// {min: 1, preset: null} is a custom range.
func parseRangePatch(p map[string]any) filter.RangePatch {
	var patch filter.RangePatch
	number := func(key string) filter.Update[float64] {
		raw, ok := p[key]
		if !ok {
			return filter.Keep[float64]()
		}
		if v := asFloat(raw); v != nil {
			return filter.To(*v)
		}
		return filter.Clear[float64]()
	}
	patch.Min = number("min")
	patch.Max = number("max")
	patch.Exact = number("exact")
	hasBounds := patch.Min.IsSet() || patch.Max.IsSet()
	if patch.Exact.IsSet() && patch.Exact.Value() == nil && hasBounds {
		patch.Exact = filter.Keep[float64]()
	}
	if raw, ok := p["preset"]; ok {
		if name, isString := asString(raw); isString && name != "" {
			patch.Preset = filter.To(name)
		} else if !hasBounds && !patch.Exact.IsSet() {
			patch.Preset = filter.Clear[string]()
		}
	}
	return patch
}
