package filter

import "strings"

// Action is a canonical state transition dispatched by a filter surface.
type Action interface {
	action()
}

type SetStatus struct{ Status Status }

// SetTimeRange changes the relative window. The custom date is cleared
// unless the new range is the custom one.
type SetTimeRange struct{ Range TimeRange }

// SetCustomDate enters the custom range with its companion date.
type SetCustomDate struct{ Date string }

type SetCities struct{ Cities []string }

type ToggleCity struct{ City string }

type SetPropertyTypes struct{ Types []string }

type TogglePropertyType struct{ Type string }

type SetPrice struct{ Patch RangePatch }

type SetBeds struct{ Patch RangePatch }

type SetBaths struct{ Patch RangePatch }

// Advanced delegates to the advanced block reducer.
type Advanced struct{ Action AdvancedAction }

// MergeAdvanced replaces the advanced block, used when a modal draft is applied.
type MergeAdvanced struct{ Advanced AdvancedState }

// ResetAdvanced restores every advanced field to its default in one step.
type ResetAdvanced struct{}

// ApplyPatch applies field writes computed by the quick filter mapper.
type ApplyPatch struct{ Patch Patch }

// ResetAll returns the default state.
type ResetAll struct{}

// AddQuickFilter, RemoveQuickFilter and ToggleQuickFilter are handled by the
// Session that owns the quick filter list; the reducer treats them as no-ops.
type AddQuickFilter struct{ Label string }

type RemoveQuickFilter struct{ Label string }

type ToggleQuickFilter struct{ Label string }

func (SetStatus) action()          {}
func (SetTimeRange) action()       {}
func (SetCustomDate) action()      {}
func (SetCities) action()          {}
func (ToggleCity) action()         {}
func (SetPropertyTypes) action()   {}
func (TogglePropertyType) action() {}
func (SetPrice) action()           {}
func (SetBeds) action()            {}
func (SetBaths) action()           {}
func (Advanced) action()           {}
func (MergeAdvanced) action()      {}
func (ResetAdvanced) action()      {}
func (ApplyPatch) action()         {}
func (ResetAll) action()           {}
func (AddQuickFilter) action()     {}
func (RemoveQuickFilter) action()  {}
func (ToggleQuickFilter) action()  {}

// ActionName returns a short stable name for an action, used for metrics
// and logging.
func ActionName(a Action) string {
	switch act := a.(type) {
	case SetStatus:
		return "set-status"
	case SetTimeRange:
		return "set-time-range"
	case SetCustomDate:
		return "set-custom-date"
	case SetCities:
		return "set-cities"
	case ToggleCity:
		return "toggle-city"
	case SetPropertyTypes:
		return "set-property-types"
	case TogglePropertyType:
		return "toggle-property-type"
	case SetPrice:
		return "set-price"
	case SetBeds:
		return "set-beds"
	case SetBaths:
		return "set-baths"
	case Advanced:
		return "advanced/" + advancedActionName(act.Action)
	case MergeAdvanced:
		return "merge-advanced"
	case ResetAdvanced:
		return "reset-advanced"
	case ApplyPatch:
		return "apply-patch"
	case ResetAll:
		return "reset-all"
	case AddQuickFilter:
		return "add-quick-filter"
	case RemoveQuickFilter:
		return "remove-quick-filter"
	case ToggleQuickFilter:
		return "toggle-quick-filter"
	}
	return "unknown"
}

func advancedActionName(a AdvancedAction) string {
	switch a.(type) {
	case SetField:
		return "set-field"
	case SetRange:
		return "set-range"
	case ToggleBasementFeature:
		return "toggle-basement-feature"
	case ToggleHouseStyle:
		return "toggle-house-style"
	case TogglePropertyClass:
		return "toggle-property-class"
	case SetOpenHouse:
		return "set-open-house"
	case ResetAdvancedTo:
		return "reset"
	}
	return "unknown"
}

// Reducer maps actions onto new canonical states. It holds the defaults
// that ResetAll and chip removal fall back to.
type Reducer struct {
	defaults State
}

func NewReducer(defaultStatus Status) *Reducer {
	return &Reducer{defaults: DefaultState(defaultStatus)}
}

// Defaults returns a copy of the default state.
func (r *Reducer) Defaults() State {
	return r.defaults.Clone()
}

// Reduce returns the state after applying action. It never mutates s and
// every numeric write is normalized, so the result is always valid.
// Unknown actions return s unchanged.
func (r *Reducer) Reduce(s State, action Action) State {
	switch act := action.(type) {
	case SetStatus:
		if !act.Status.Valid() {
			return s
		}
		n := s.Clone()
		n.Status = act.Status
		return n
	case SetTimeRange:
		if !act.Range.Valid() {
			return s
		}
		n := s.Clone()
		n.TimeRange = act.Range
		if act.Range != CustomDateRange {
			n.CustomDate = ""
		}
		return n
	case SetCustomDate:
		n := s.Clone()
		n.TimeRange = CustomDateRange
		n.CustomDate = strings.TrimSpace(act.Date)
		return n
	case SetCities:
		n := s.Clone()
		n.Cities = uniqueStrings(trimAll(act.Cities))
		return n
	case ToggleCity:
		n := s.Clone()
		n.Cities = toggle(s.Cities, strings.TrimSpace(act.City))
		return n
	case SetPropertyTypes:
		n := s.Clone()
		n.PropertyTypes = uniqueStrings(trimAll(act.Types))
		return n
	case TogglePropertyType:
		n := s.Clone()
		n.PropertyTypes = toggle(s.PropertyTypes, strings.TrimSpace(act.Type))
		return n
	case SetPrice:
		n := s.Clone()
		n.Price = act.Patch.merge(s.Price, PriceDomain, false).normalize(PriceDomain, PricePresets, false)
		return n
	case SetBeds:
		n := s.Clone()
		n.Beds = act.Patch.merge(s.Beds, BedsDomain, true).normalize(BedsDomain, BedPresets, true)
		return n
	case SetBaths:
		n := s.Clone()
		n.Baths = act.Patch.merge(s.Baths, BathsDomain, true).normalize(BathsDomain, BathPresets, true)
		return n
	case Advanced:
		if act.Action == nil {
			return s
		}
		n := s.Clone()
		n.Advanced = ReduceAdvanced(s.Advanced, act.Action)
		return n
	case MergeAdvanced:
		n := s.Clone()
		n.Advanced = NormalizeAdvanced(act.Advanced)
		return n
	case ResetAdvanced:
		n := s.Clone()
		n.Advanced = r.defaults.Advanced.Clone()
		return n
	case ApplyPatch:
		return act.Patch.apply(s)
	case ResetAll:
		return r.Defaults()
	}
	return s
}
