package filter

import "slices"

// QuickFilter is a one-click toggle and the writes it owns.
type QuickFilter struct {
	Label  string
	Writes Patch
}

// DefaultQuickFilters is the built-in quick filter table.
var DefaultQuickFilters = []QuickFilter{
	{Label: "Pool", Writes: Patch{{Field: SwimmingPoolPatch, Value: string(Yes)}}},
	{Label: "Waterfront", Writes: Patch{{Field: WaterfrontPatch, Value: string(Yes)}}},
	{Label: "Open House Today", Writes: Patch{{Field: OpenHousePatch, Value: string(OpenHouseToday)}}},
	{Label: "Finished Basement", Writes: Patch{{Field: BasementFeaturesPatch, Op: OpAdd, Value: "Finished"}}},
	{Label: "Walk-Out Basement", Writes: Patch{{Field: BasementFeaturesPatch, Op: OpAdd, Value: "Walk-Out"}}},
	{Label: "New Construction", Writes: Patch{{Field: PropertyAgePatch, Value: "New"}}},
	{Label: "Detached", Writes: Patch{{Field: PropertyTypesField, Op: OpAdd, Value: "Detached"}}},
	{Label: "Condo", Writes: Patch{
		{Field: PropertyTypesField, Op: OpAdd, Value: "Condo Apartment"},
		{Field: PropertyTypesField, Op: OpAdd, Value: "Condo Townhouse"},
	}},
	{Label: "Garage", Writes: Patch{{Field: GarageParkingMinPatch, Number: 1}}},
	{Label: "Bungalow", Writes: Patch{{Field: HouseStylePatch, Op: OpAdd, Value: "Bungalow"}}},
}

// QuickMapper translates quick filter labels to and from canonical state writes.
type QuickMapper struct {
	filters []QuickFilter
	byLabel map[string]QuickFilter
}

func NewQuickMapper(filters []QuickFilter) *QuickMapper {
	m := &QuickMapper{byLabel: make(map[string]QuickFilter, len(filters))}
	for _, f := range filters {
		if _, dup := m.byLabel[f.Label]; dup || f.Label == "" {
			continue
		}
		m.filters = append(m.filters, f)
		m.byLabel[f.Label] = f
	}
	return m
}

// Labels returns the known labels in table order.
func (m *QuickMapper) Labels() []string {
	labels := make([]string, len(m.filters))
	for i, f := range m.filters {
		labels[i] = f.Label
	}
	return labels
}

func (m *QuickMapper) Known(label string) bool {
	_, ok := m.byLabel[label]
	return ok
}

// Apply returns the patch that turns the quick filter on.
func (m *QuickMapper) Apply(label string) (Patch, bool) {
	f, ok := m.byLabel[label]
	if !ok {
		return nil, false
	}
	return slices.Clone(f.Writes), true
}

// Reflects reports whether every write of the quick filter holds in s.
func (m *QuickMapper) Reflects(s State, label string) bool {
	f, ok := m.byLabel[label]
	if !ok {
		return false
	}
	for _, w := range f.Writes {
		if !holds(s, w) {
			return false
		}
	}
	return true
}

// Remove returns the minimal patch that turns the quick filter off. Only
// owned fields that still carry the quick filter's value are touched.
func (m *QuickMapper) Remove(s State, label string) Patch {
	return m.Restore(DefaultState(s.Status), s, label)
}

// Restore is Remove but puts owned fields back to their values in before
// instead of the defaults.
func (m *QuickMapper) Restore(before, s State, label string) Patch {
	f, ok := m.byLabel[label]
	if !ok {
		return nil
	}
	var out Patch
	for _, w := range f.Writes {
		if !holds(s, w) {
			continue
		}
		switch w.Op {
		case OpAdd:
			if holds(before, w) {
				continue
			}
			out = append(out, FieldWrite{Field: w.Field, Op: OpRemove, Value: w.Value})
			if w.Field == BasementFeaturesPatch && slices.Contains(before.Advanced.BasementFeatures, BasementNone) &&
				slices.Equal(s.Advanced.BasementFeatures, []string{w.Value}) {
				out = append(out, FieldWrite{Field: w.Field, Op: OpAdd, Value: BasementNone})
			}
		case OpSet:
			if w.Field == GarageParkingMinPatch {
				out = append(out, FieldWrite{Field: w.Field, Op: OpSet, Number: numberValue(before, w.Field)})
				if hi := before.Advanced.Range(GarageParking).Max; hi != s.Advanced.Range(GarageParking).Max {
					out = append(out, FieldWrite{Field: GarageParkingMaxPatch, Op: OpSet, Number: hi})
				}
				continue
			}
			fallthrough
		default:
			out = append(out, FieldWrite{
				Field:  w.Field,
				Op:     OpSet,
				Value:  scalarValue(before, w.Field),
				Number: numberValue(before, w.Field),
			})
		}
	}
	return out
}

func holds(s State, w FieldWrite) bool {
	switch w.Field {
	case PropertyTypesField:
		return slices.Contains(s.PropertyTypes, w.Value)
	case BasementFeaturesPatch:
		return slices.Contains(s.Advanced.BasementFeatures, w.Value)
	case HouseStylePatch:
		display, _ := HouseStyleDisplay(w.Value)
		return slices.Contains(s.Advanced.HouseStyle, display)
	case GarageParkingMinPatch:
		return numberValue(s, w.Field) == w.Number
	}
	return scalarValue(s, w.Field) == w.Value
}

func scalarValue(s State, field Field) string {
	switch field {
	case SwimmingPoolPatch:
		return string(s.Advanced.SwimmingPool)
	case WaterfrontPatch:
		return string(s.Advanced.Waterfront)
	case OpenHousePatch:
		return string(s.Advanced.OpenHouse)
	case PropertyAgePatch:
		return s.Advanced.PropertyAge
	}
	return ""
}

func numberValue(s State, field Field) float64 {
	if field == GarageParkingMinPatch {
		return s.Advanced.Range(GarageParking).Min
	}
	return 0
}
