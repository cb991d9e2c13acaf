package filter

import "fmt"

type ChipKind string

const (
	StatusChip       ChipKind = "status"
	TimeRangeChip    ChipKind = "timeRange"
	CityChip         ChipKind = "city"
	PropertyTypeChip ChipKind = "propertyType"
	PriceChip        ChipKind = "price"
	BedsChip         ChipKind = "beds"
	BathsChip        ChipKind = "baths"
	AdvancedChip     ChipKind = "advanced"
	QuickChip        ChipKind = "quick"
)

// Chip is one active filter as shown to the user. OnRemove is the action
// that clears it.
type Chip struct {
	Key      string   `json:"key"`
	Kind     ChipKind `json:"kind"`
	Label    string   `json:"label"`
	OnRemove Action   `json:"-"`
}

// Summarizer derives the active filter chips. It needs the session
// defaults to know when the status chip is worth showing.
type Summarizer struct {
	defaults State
}

func NewSummarizer(defaults State) *Summarizer {
	return &Summarizer{defaults: defaults.Clone()}
}

// Summarize lists the chips in fixed order: status, time range, cities,
// property types, price, beds, baths, one aggregate advanced chip and then
// the quick filters. Labels are de-duplicated, first one wins.
func (z *Summarizer) Summarize(s State, quick []string) []Chip {
	chips := make([]Chip, 0, 8+len(s.Cities)+len(s.PropertyTypes)+len(quick))
	seen := map[string]struct{}{}
	add := func(kind ChipKind, key, label string, onRemove Action) {
		if label == "" {
			return
		}
		if _, dup := seen[label]; dup {
			return
		}
		seen[label] = struct{}{}
		chips = append(chips, Chip{Key: string(kind) + ":" + key, Kind: kind, Label: label, OnRemove: onRemove})
	}

	if s.Status != z.defaults.Status {
		add(StatusChip, string(s.Status), string(s.Status), SetStatus{Status: z.defaults.Status})
	}
	if s.TimeRange != AllTime && s.TimeRange != "" {
		add(TimeRangeChip, string(s.TimeRange), timeRangeLabel(s.TimeRange, s.CustomDate), SetTimeRange{Range: AllTime})
	}
	for _, city := range s.Cities {
		add(CityChip, city, city, ToggleCity{City: city})
	}
	for _, t := range s.PropertyTypes {
		add(PropertyTypeChip, t, t, TogglePropertyType{Type: t})
	}
	clearRange := RangePatch{Preset: To(AnyPreset)}
	add(PriceChip, "price", priceLabel(s.Price), SetPrice{Patch: clearRange})
	add(BedsChip, "beds", roomLabel(s.Beds, "Beds"), SetBeds{Patch: clearRange})
	add(BathsChip, "baths", roomLabel(s.Baths, "Baths"), SetBaths{Patch: clearRange})
	if n := s.Advanced.ActiveCount(); n > 0 {
		add(AdvancedChip, "advanced", fmt.Sprintf("Advanced (%d)", n), ResetAdvanced{})
	}
	for _, label := range quick {
		add(QuickChip, label, label, RemoveQuickFilter{Label: label})
	}
	return chips
}

// FindChip returns the chip with the given key.
func FindChip(chips []Chip, key string) (Chip, bool) {
	for _, c := range chips {
		if c.Key == key {
			return c, true
		}
	}
	return Chip{}, false
}
