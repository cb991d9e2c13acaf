package filter

import "slices"

type Status string

const (
	ForSale  Status = "For Sale"
	ForLease Status = "For Lease"
	Sold     Status = "Sold"
	Leased   Status = "Leased"
	Removed  Status = "Removed"
)

var Statuses = []Status{ForSale, ForLease, Sold, Leased, Removed}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

type TimeRange string

const (
	AllTime         TimeRange = "All Time"
	Today           TimeRange = "Today"
	Last7Days       TimeRange = "Last 7 Days"
	Last14Days      TimeRange = "Last 14 Days"
	Last30Days      TimeRange = "Last 30 Days"
	Last90Days      TimeRange = "Last 90 Days"
	CustomDateRange TimeRange = "Custom Date Range"
)

var TimeRanges = []TimeRange{AllTime, Today, Last7Days, Last14Days, Last30Days, Last90Days, CustomDateRange}

func (t TimeRange) Valid() bool {
	return slices.Contains(TimeRanges, t)
}

// Days returns the relative window length, 0 for all time and custom ranges.
func (t TimeRange) Days() int {
	switch t {
	case Today:
		return 1
	case Last7Days:
		return 7
	case Last14Days:
		return 14
	case Last30Days:
		return 30
	case Last90Days:
		return 90
	}
	return 0
}

// RangePreset is a named shortcut for a (min, max) pair.
type RangePreset struct {
	Name string
	Min  *float64
	Max  *float64
}

var (
	PriceDomain = Domain{Lo: 0, Hi: 20_000_000, Step: 1_000}
	BedsDomain  = Domain{Lo: 0, Hi: 10, Step: 1}
	BathsDomain = Domain{Lo: 0, Hi: 10, Step: 1}
)

var PricePresets = []RangePreset{
	{Name: AnyPreset},
	{Name: "Under $500K", Max: Float(500_000)},
	{Name: "$500K - $1M", Min: Float(500_000), Max: Float(1_000_000)},
	{Name: "$1M - $2M", Min: Float(1_000_000), Max: Float(2_000_000)},
	{Name: "Over $2M", Min: Float(2_000_000)},
}

var BedPresets = []RangePreset{
	{Name: AnyPreset},
	{Name: "1+", Min: Float(1)},
	{Name: "2+", Min: Float(2)},
	{Name: "3+", Min: Float(3)},
	{Name: "4+", Min: Float(4)},
	{Name: "5+", Min: Float(5)},
}

var BathPresets = BedPresets

func findPreset(presets []RangePreset, name string) *RangePreset {
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i]
		}
	}
	return nil
}

// ResolveBounds turns any selection into the (min, max) it constrains.
// Exact values resolve to a single point.
func ResolveBounds(r RangeSelection, presets []RangePreset) (*float64, *float64) {
	switch r.Kind() {
	case SelectExact:
		v, _ := r.ExactValue()
		return Float(v), Float(v)
	case SelectCustom:
		return r.Bounds()
	}
	name, _ := r.PresetName()
	if p := findPreset(presets, name); p != nil {
		return copyFloat(p.Min), copyFloat(p.Max)
	}
	return nil, nil
}

// State is the canonical filter state shared by every filter surface.
// Values are treated as immutable; the reducer always returns a fresh copy.
type State struct {
	Status        Status
	TimeRange     TimeRange
	CustomDate    string
	Cities        []string
	PropertyTypes []string
	Price         RangeSelection
	Beds          RangeSelection
	Baths         RangeSelection
	Advanced      AdvancedState
}

// DefaultState returns the state a new search session starts with.
func DefaultState(status Status) State {
	if !status.Valid() {
		status = ForSale
	}
	return State{
		Status:        status,
		TimeRange:     AllTime,
		Cities:        []string{},
		PropertyTypes: []string{},
		Price:         Preset(AnyPreset),
		Beds:          Preset(AnyPreset),
		Baths:         Preset(AnyPreset),
		Advanced:      DefaultAdvanced(),
	}
}

// Clone returns a deep copy that shares no slices with s.
func (s State) Clone() State {
	c := s
	c.Cities = cloneStrings(s.Cities)
	c.PropertyTypes = cloneStrings(s.PropertyTypes)
	c.Advanced = s.Advanced.Clone()
	return c
}

// Equal compares two states, treating cities and property types as sets.
func (s State) Equal(o State) bool {
	return s.Status == o.Status &&
		s.TimeRange == o.TimeRange &&
		s.CustomDate == o.CustomDate &&
		sameSet(s.Cities, o.Cities) &&
		sameSet(s.PropertyTypes, o.PropertyTypes) &&
		s.Price.Equal(o.Price) &&
		s.Beds.Equal(o.Beds) &&
		s.Baths.Equal(o.Baths) &&
		EqualAdvanced(s.Advanced, o.Advanced)
}

// NormalizeState repairs a state that did not come from the reducer,
// e.g. one restored from storage or a query string.
func NormalizeState(s State, fallback Status) State {
	n := s.Clone()
	if !n.Status.Valid() {
		n.Status = fallback
		if !n.Status.Valid() {
			n.Status = ForSale
		}
	}
	if !n.TimeRange.Valid() {
		n.TimeRange = AllTime
	}
	if n.TimeRange != CustomDateRange {
		n.CustomDate = ""
	}
	n.Cities = uniqueStrings(n.Cities)
	n.PropertyTypes = uniqueStrings(n.PropertyTypes)
	n.Price = n.Price.normalize(PriceDomain, PricePresets, false)
	n.Beds = n.Beds.normalize(BedsDomain, BedPresets, true)
	n.Baths = n.Baths.normalize(BathsDomain, BathPresets, true)
	n.Advanced = NormalizeAdvanced(n.Advanced)
	return n
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

// uniqueStrings drops empty and repeated entries, keeping first occurrence order.
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func toggle(in []string, value string) []string {
	if value == "" {
		return cloneStrings(in)
	}
	if slices.Contains(in, value) {
		out := make([]string, 0, len(in))
		for _, v := range in {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	}
	out := cloneStrings(in)
	return append(out, value)
}
