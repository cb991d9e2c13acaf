package filter

import (
	"slices"
	"strings"
)

// AdvancedAction is a transition of the advanced block.
type AdvancedAction interface {
	advancedAction()
}

// SetField writes one single-value field. Values outside the field's
// vocabulary fall back to the field default.
type SetField struct {
	Field AdvancedField
	Value string
}

// SetRange moves one handle of a slider range. The dragged handle wins:
// the other handle is pushed along when the two would cross.
type SetRange struct {
	Field RangeField
	Bound Bound
	Value float64
}

type ToggleBasementFeature struct{ Feature string }

type ToggleHouseStyle struct{ Style string }

type TogglePropertyClass struct{ Class string }

// SetOpenHouse selects a timing; selecting the active one again resets to All.
type SetOpenHouse struct{ Timing OpenHouseTiming }

// ResetAdvancedTo restores a caller supplied baseline, used on modal cancel.
type ResetAdvancedTo struct{ Baseline AdvancedState }

func (SetField) advancedAction()              {}
func (SetRange) advancedAction()              {}
func (ToggleBasementFeature) advancedAction() {}
func (ToggleHouseStyle) advancedAction()      {}
func (TogglePropertyClass) advancedAction()   {}
func (SetOpenHouse) advancedAction()          {}
func (ResetAdvancedTo) advancedAction()       {}

// ReduceAdvanced applies an action to the advanced block and returns a new value.
func ReduceAdvanced(a AdvancedState, action AdvancedAction) AdvancedState {
	switch act := action.(type) {
	case SetField:
		return setAdvancedField(a, act.Field, act.Value)
	case SetRange:
		return setAdvancedRange(a, act)
	case ToggleBasementFeature:
		return toggleBasement(a, act.Feature)
	case ToggleHouseStyle:
		display, ok := HouseStyleDisplay(strings.TrimSpace(act.Style))
		if !ok {
			return a
		}
		n := a.Clone()
		n.HouseStyle = toggle(n.HouseStyle, display)
		return n
	case TogglePropertyClass:
		if !slices.Contains(PropertyClasses, act.Class) {
			return a
		}
		n := a.Clone()
		n.PropertyClasses = toggle(n.PropertyClasses, act.Class)
		return n
	case SetOpenHouse:
		n := a.Clone()
		timing := act.Timing
		if !timing.Valid() {
			timing = OpenHouseAll
		}
		if timing != OpenHouseAll && timing == a.OpenHouse {
			timing = OpenHouseAll
		}
		n.OpenHouse = timing
		return n
	case ResetAdvancedTo:
		return NormalizeAdvanced(act.Baseline)
	}
	return a
}

func setAdvancedField(a AdvancedState, field AdvancedField, value string) AdvancedState {
	n := a.Clone()
	value = strings.TrimSpace(value)
	switch field {
	case KeywordsField:
		n.Keywords = splitKeywords(value)
	case LotFrontageField:
		n.LotFrontage = oneOf(value, LotFrontages)
	case LotDepthField:
		n.LotDepth = oneOf(value, LotDepths)
	case PropertyAgeField:
		n.PropertyAge = oneOf(value, PropertyAges)
	case SwimmingPoolField:
		n.SwimmingPool = parseYesNo(value)
	case WaterfrontField:
		n.Waterfront = parseYesNo(value)
	case OpenHouseField:
		n.OpenHouse = OpenHouseTiming(value)
		if !n.OpenHouse.Valid() {
			n.OpenHouse = OpenHouseAll
		}
	default:
		return a
	}
	return n
}

func setAdvancedRange(a AdvancedState, act SetRange) AdvancedState {
	d, ok := rangeDomains[act.Field]
	if !ok {
		return a
	}
	current := a.Range(act.Field)
	next := current
	switch act.Bound {
	case MinBound:
		v := act.Value
		if badNumber(v) {
			v = d.Lo
		}
		next.Min = d.snap(v)
		if next.Min > next.Max {
			next.Max = next.Min
		}
	case MaxBound:
		v := act.Value
		if badNumber(v) {
			v = d.Hi
		}
		next.Max = d.snap(v)
		if next.Max < next.Min {
			next.Min = next.Max
		}
	default:
		return a
	}
	next.Min, next.Max = Normalize(next.Min, next.Max, d)
	n := a.Clone()
	n.Ranges[act.Field] = next
	return n
}

func toggleBasement(a AdvancedState, feature string) AdvancedState {
	if !slices.Contains(BasementFeatures, feature) {
		return a
	}
	n := a.Clone()
	switch {
	case slices.Contains(a.BasementFeatures, feature):
		n.BasementFeatures = toggle(a.BasementFeatures, feature)
	case feature == BasementNone:
		n.BasementFeatures = []string{BasementNone}
	default:
		kept := make([]string, 0, len(a.BasementFeatures)+1)
		for _, f := range a.BasementFeatures {
			if f != BasementNone {
				kept = append(kept, f)
			}
		}
		n.BasementFeatures = append(kept, feature)
	}
	return n
}
