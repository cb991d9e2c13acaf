package filter

import "slices"

// Field addresses a canonical state field a patch can write.
type Field string

const (
	PropertyTypesField    Field = "propertyTypes"
	SwimmingPoolPatch     Field = "advanced.swimmingPool"
	WaterfrontPatch       Field = "advanced.waterfront"
	OpenHousePatch        Field = "advanced.openHouse"
	PropertyAgePatch      Field = "advanced.propertyAge"
	BasementFeaturesPatch Field = "advanced.basementFeatures"
	HouseStylePatch       Field = "advanced.houseStyle"
	GarageParkingMinPatch Field = "advanced.garageParking.min"
	GarageParkingMaxPatch Field = "advanced.garageParking.max"
)

type WriteOp uint8

const (
	// OpSet replaces a scalar field value.
	OpSet WriteOp = iota
	// OpAdd adds a member to a set field.
	OpAdd
	// OpRemove removes a member from a set field.
	OpRemove
)

// FieldWrite is one field-level write. Scalars use Value; numeric fields use Number.
type FieldWrite struct {
	Field  Field
	Op     WriteOp
	Value  string
	Number float64
}

// Patch is an ordered list of field writes.
type Patch []FieldWrite

func (p Patch) apply(s State) State {
	if len(p) == 0 {
		return s
	}
	n := s.Clone()
	for _, w := range p {
		n = w.apply(n)
	}
	return n
}

func (w FieldWrite) apply(s State) State {
	switch w.Field {
	case PropertyTypesField:
		s.PropertyTypes = applySetWrite(s.PropertyTypes, w)
	case SwimmingPoolPatch:
		s.Advanced = setAdvancedField(s.Advanced, SwimmingPoolField, w.Value)
	case WaterfrontPatch:
		s.Advanced = setAdvancedField(s.Advanced, WaterfrontField, w.Value)
	case OpenHousePatch:
		s.Advanced = setAdvancedField(s.Advanced, OpenHouseField, w.Value)
	case PropertyAgePatch:
		s.Advanced = setAdvancedField(s.Advanced, PropertyAgeField, w.Value)
	case BasementFeaturesPatch:
		if w.Op == OpAdd && slices.Contains(s.Advanced.BasementFeatures, w.Value) {
			return s
		}
		if w.Op == OpRemove && !slices.Contains(s.Advanced.BasementFeatures, w.Value) {
			return s
		}
		s.Advanced = toggleBasement(s.Advanced, w.Value)
	case HouseStylePatch:
		display, ok := HouseStyleDisplay(w.Value)
		if !ok {
			return s
		}
		s.Advanced = s.Advanced.Clone()
		s.Advanced.HouseStyle = applySetWrite(s.Advanced.HouseStyle, FieldWrite{Op: w.Op, Value: display})
	case GarageParkingMinPatch:
		s.Advanced = setAdvancedRange(s.Advanced, SetRange{Field: GarageParking, Bound: MinBound, Value: w.Number})
	case GarageParkingMaxPatch:
		s.Advanced = setAdvancedRange(s.Advanced, SetRange{Field: GarageParking, Bound: MaxBound, Value: w.Number})
	}
	return s
}

func applySetWrite(in []string, w FieldWrite) []string {
	switch w.Op {
	case OpAdd:
		if w.Value == "" || slices.Contains(in, w.Value) {
			return cloneStrings(in)
		}
		return append(cloneStrings(in), w.Value)
	case OpRemove:
		if !slices.Contains(in, w.Value) {
			return cloneStrings(in)
		}
		return toggle(in, w.Value)
	}
	return cloneStrings(in)
}
