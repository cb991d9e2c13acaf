package filter

import (
	"slices"
	"strings"
)

// RangeField names one of the advanced slider ranges.
type RangeField string

const (
	SquareFootage  RangeField = "squareFootage"
	MaintenanceFee RangeField = "maintenanceFee"
	PropertyTax    RangeField = "propertyTax"
	DaysOnMarket   RangeField = "daysOnMarket"
	GarageParking  RangeField = "garageParking"
	TotalParking   RangeField = "totalParking"
)

// RangeFields lists the slider ranges in display order.
var RangeFields = []RangeField{SquareFootage, MaintenanceFee, PropertyTax, DaysOnMarket, GarageParking, TotalParking}

var rangeDomains = map[RangeField]Domain{
	SquareFootage:  {Lo: 0, Hi: 10_000, Step: 50},
	MaintenanceFee: {Lo: 0, Hi: 5_000, Step: 50},
	PropertyTax:    {Lo: 0, Hi: 50_000, Step: 500},
	DaysOnMarket:   {Lo: 0, Hi: 365, Step: 1},
	GarageParking:  {Lo: 0, Hi: 10, Step: 1},
	TotalParking:   {Lo: 0, Hi: 20, Step: 1},
}

// DomainOf returns the fixed domain of an advanced range.
func DomainOf(field RangeField) (Domain, bool) {
	d, ok := rangeDomains[field]
	return d, ok
}

// NumberRange is a slider value. The default spans the whole domain.
type NumberRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func fullRange(d Domain) NumberRange {
	return NumberRange{Min: d.Lo, Max: d.Hi}
}

func (r NumberRange) isDefault(d Domain) bool {
	return r.Min <= d.Lo && r.Max >= d.Hi
}

type Bound uint8

const (
	MinBound Bound = iota
	MaxBound
)

// AdvancedField names a single-value advanced field writable with SetField.
type AdvancedField string

const (
	KeywordsField     AdvancedField = "keywords"
	LotFrontageField  AdvancedField = "lotFrontage"
	LotDepthField     AdvancedField = "lotDepth"
	PropertyAgeField  AdvancedField = "propertyAge"
	SwimmingPoolField AdvancedField = "swimmingPool"
	WaterfrontField   AdvancedField = "waterfront"
	OpenHouseField    AdvancedField = "openHouse"
)

// AdvancedState is the nested bag edited by the advanced filter modals.
type AdvancedState struct {
	Keywords         []string
	PropertyClasses  []string
	Ranges           map[RangeField]NumberRange
	HouseStyle       []string
	LotFrontage      string
	LotDepth         string
	BasementFeatures []string
	PropertyAge      string
	SwimmingPool     YesNo
	Waterfront       YesNo
	OpenHouse        OpenHouseTiming
}

func DefaultAdvanced() AdvancedState {
	ranges := make(map[RangeField]NumberRange, len(rangeDomains))
	for field, d := range rangeDomains {
		ranges[field] = fullRange(d)
	}
	return AdvancedState{
		Keywords:         []string{},
		PropertyClasses:  []string{},
		Ranges:           ranges,
		HouseStyle:       []string{},
		BasementFeatures: []string{},
		OpenHouse:        OpenHouseAll,
	}
}

// Range returns the current value of a slider, the full domain when unset.
func (a AdvancedState) Range(field RangeField) NumberRange {
	if r, ok := a.Ranges[field]; ok {
		return r
	}
	return fullRange(rangeDomains[field])
}

func (a AdvancedState) Clone() AdvancedState {
	c := a
	c.Keywords = cloneStrings(a.Keywords)
	c.PropertyClasses = cloneStrings(a.PropertyClasses)
	c.HouseStyle = cloneStrings(a.HouseStyle)
	c.BasementFeatures = cloneStrings(a.BasementFeatures)
	c.Ranges = make(map[RangeField]NumberRange, len(rangeDomains))
	for field := range rangeDomains {
		c.Ranges[field] = a.Range(field)
	}
	return c
}

// ActiveCount counts the advanced sub-facets that differ from their default.
// A multi-value facet counts once however many members are selected.
func (a AdvancedState) ActiveCount() int {
	count := 0
	for _, active := range []bool{
		len(a.Keywords) > 0,
		len(a.PropertyClasses) > 0,
		len(a.HouseStyle) > 0,
		a.LotFrontage != "",
		a.LotDepth != "",
		len(a.BasementFeatures) > 0,
		a.PropertyAge != "",
		a.SwimmingPool != AnyYesNo,
		a.Waterfront != AnyYesNo,
		a.OpenHouse != OpenHouseAll && a.OpenHouse != "",
	} {
		if active {
			count++
		}
	}
	for _, field := range RangeFields {
		if !a.Range(field).isDefault(rangeDomains[field]) {
			count++
		}
	}
	return count
}

// EqualAdvanced compares scalars directly, keywords in order and the
// multi-select fields as sets.
func EqualAdvanced(a, b AdvancedState) bool {
	if a.LotFrontage != b.LotFrontage ||
		a.LotDepth != b.LotDepth ||
		a.PropertyAge != b.PropertyAge ||
		a.SwimmingPool != b.SwimmingPool ||
		a.Waterfront != b.Waterfront ||
		a.OpenHouse != b.OpenHouse {
		return false
	}
	if !slices.Equal(a.Keywords, b.Keywords) {
		return false
	}
	if !sameSet(a.PropertyClasses, b.PropertyClasses) ||
		!sameSet(a.HouseStyle, b.HouseStyle) ||
		!sameSet(a.BasementFeatures, b.BasementFeatures) {
		return false
	}
	for _, field := range RangeFields {
		if a.Range(field) != b.Range(field) {
			return false
		}
	}
	return true
}

// NormalizeAdvanced repairs a partial or legacy advanced block.
func NormalizeAdvanced(a AdvancedState) AdvancedState {
	n := a.Clone()
	n.Keywords = uniqueStrings(trimAll(n.Keywords))
	n.PropertyClasses = onlyMembers(uniqueStrings(n.PropertyClasses), PropertyClasses)

	for _, field := range RangeFields {
		r := n.Range(field)
		lo, hi := Normalize(r.Min, r.Max, rangeDomains[field])
		n.Ranges[field] = NumberRange{Min: lo, Max: hi}
	}

	styles := make([]string, 0, len(n.HouseStyle))
	for _, s := range n.HouseStyle {
		if display, ok := HouseStyleDisplay(strings.TrimSpace(s)); ok {
			styles = append(styles, display)
		}
	}
	n.HouseStyle = uniqueStrings(styles)

	n.BasementFeatures = onlyMembers(uniqueStrings(n.BasementFeatures), BasementFeatures)
	if slices.Contains(n.BasementFeatures, BasementNone) && len(n.BasementFeatures) > 1 {
		n.BasementFeatures = []string{BasementNone}
	}

	n.LotFrontage = oneOf(n.LotFrontage, LotFrontages)
	n.LotDepth = oneOf(n.LotDepth, LotDepths)
	n.PropertyAge = oneOf(n.PropertyAge, PropertyAges)
	n.SwimmingPool = parseYesNo(string(n.SwimmingPool))
	n.Waterfront = parseYesNo(string(n.Waterfront))
	if !n.OpenHouse.Valid() {
		n.OpenHouse = OpenHouseAll
	}
	return n
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func onlyMembers(in []string, allowed []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if slices.Contains(allowed, v) {
			out = append(out, v)
		}
	}
	return out
}

// splitKeywords turns free text into keyword tokens.
func splitKeywords(text string) []string {
	return uniqueStrings(trimAll(strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})))
}
