package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownAction struct{}

func (unknownAction) action() {}

func TestDefaultState(t *testing.T) {
	s := NewReducer(ForSale).Defaults()
	assert.Equal(t, ForSale, s.Status)
	assert.Equal(t, AllTime, s.TimeRange)
	assert.Empty(t, s.Cities)
	name, ok := s.Price.PresetName()
	assert.True(t, ok)
	assert.Equal(t, "Any", name)
	lo, hi := s.Price.Bounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}

func TestDefaultStateFallsBackOnInvalidStatus(t *testing.T) {
	assert.Equal(t, ForSale, DefaultState("Whatever").Status)
	assert.Equal(t, Sold, DefaultState(Sold).Status)
}

func busyState(r *Reducer) State {
	s := r.Defaults()
	for _, a := range []Action{
		SetStatus{Status: Sold},
		SetCustomDate{Date: "2024-01-01"},
		SetCities{Cities: []string{"Toronto", "Ottawa"}},
		TogglePropertyType{Type: "Detached"},
		SetPrice{Patch: RangePatch{Min: To(400_000.0)}},
		SetBeds{Patch: RangePatch{Exact: To(3.0)}},
		SetBaths{Patch: RangePatch{Preset: To("2+")}},
		Advanced{Action: SetField{Field: SwimmingPoolField, Value: "Yes"}},
		Advanced{Action: SetRange{Field: SquareFootage, Bound: MinBound, Value: 1200}},
		Advanced{Action: ToggleBasementFeature{Feature: "Finished"}},
	} {
		s = r.Reduce(s, a)
	}
	return s
}

func TestResetAllReturnsDefaults(t *testing.T) {
	r := NewReducer(ForLease)
	s := busyState(r)
	require.False(t, s.Equal(r.Defaults()))

	reset := r.Reduce(s, ResetAll{})
	assert.True(t, reset.Equal(r.Defaults()))
	assert.Equal(t, ForLease, reset.Status)
	assert.True(t, r.Reduce(r.Defaults(), ResetAll{}).Equal(r.Defaults()))
}

func TestUnknownActionIsNoop(t *testing.T) {
	r := NewReducer(ForSale)
	s := busyState(r)
	assert.True(t, r.Reduce(s, unknownAction{}).Equal(s))
	assert.True(t, r.Reduce(s, nil).Equal(s))
	assert.True(t, r.Reduce(s, Advanced{}).Equal(s))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetCities{Cities: []string{"Toronto"}})
	before := s.Clone()

	next := r.Reduce(s, ToggleCity{City: "Ottawa"})
	next.Cities[0] = "Mutated"

	assert.Equal(t, before.Cities, s.Cities)
	assert.Equal(t, []string{"Toronto"}, s.Cities)
}

func TestSetPriceCustomClearsPreset(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetPrice{Patch: RangePatch{Min: To(500_000.0), Max: To(800_000.0)}})

	_, isPreset := s.Price.PresetName()
	assert.False(t, isPreset)
	lo, hi := s.Price.Bounds()
	assert.Equal(t, 500_000.0, *lo)
	assert.Equal(t, 800_000.0, *hi)

	chips := NewSummarizer(r.Defaults()).Summarize(s, nil)
	require.Len(t, chips, 1)
	assert.Equal(t, "$500K - $800K", chips[0].Label)
}

func TestSetPricePatchMergesOverCustom(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetPrice{Patch: RangePatch{Min: To(500_000.0)}})
	s = r.Reduce(s, SetPrice{Patch: RangePatch{Max: To(700_000.0)}})
	lo, hi := s.Price.Bounds()
	assert.Equal(t, 500_000.0, *lo)
	assert.Equal(t, 700_000.0, *hi)

	s = r.Reduce(s, SetPrice{Patch: RangePatch{Min: Clear[float64]()}})
	lo, hi = s.Price.Bounds()
	assert.Nil(t, lo)
	assert.Equal(t, 700_000.0, *hi)

	s = r.Reduce(s, SetPrice{Patch: RangePatch{Max: Clear[float64]()}})
	assert.True(t, s.Price.IsAny())
}

func TestSetPriceNormalizesBounds(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetPrice{Patch: RangePatch{Min: To(900_400.0), Max: To(-5.0)}})
	lo, hi := s.Price.Bounds()
	assert.Equal(t, 0.0, *lo)
	assert.Equal(t, 0.0, *hi)
}

func TestSetPricePresetClearsCustom(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetPrice{Patch: RangePatch{Min: To(500_000.0)}})
	s = r.Reduce(s, SetPrice{Patch: RangePatch{Preset: To("$1M - $2M")}})
	name, ok := s.Price.PresetName()
	assert.True(t, ok)
	assert.Equal(t, "$1M - $2M", name)
	lo, hi := s.Price.Bounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}

func TestSetPriceIgnoresExactAndUnknownPreset(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetPrice{Patch: RangePatch{Exact: To(100.0)}})
	assert.True(t, s.Price.IsAny())

	s = r.Reduce(s, SetPrice{Patch: RangePatch{Preset: To("Cheap-ish")}})
	assert.True(t, s.Price.IsAny())
}

func TestBedsExactAndRangeAreExclusive(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetBeds{Patch: RangePatch{Min: To(2.0), Max: To(4.0)}})
	assert.Equal(t, SelectCustom, s.Beds.Kind())

	s = r.Reduce(s, SetBeds{Patch: RangePatch{Exact: To(3.0)}})
	assert.Equal(t, SelectExact, s.Beds.Kind())
	lo, hi := s.Beds.Bounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)

	s = r.Reduce(s, SetBeds{Patch: RangePatch{Min: To(1.0)}})
	assert.Equal(t, SelectCustom, s.Beds.Kind())
	_, isExact := s.Beds.ExactValue()
	assert.False(t, isExact)
	lo, hi = s.Beds.Bounds()
	assert.Equal(t, 1.0, *lo)
	assert.Nil(t, hi)

	s = r.Reduce(s, SetBaths{Patch: RangePatch{Exact: To(42.0)}})
	v, _ := s.Baths.ExactValue()
	assert.Equal(t, 10.0, v)
}

func TestTimeRangeClearsCustomDate(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetCustomDate{Date: "2024-03-01"})
	assert.Equal(t, CustomDateRange, s.TimeRange)
	assert.Equal(t, "2024-03-01", s.CustomDate)

	s = r.Reduce(s, SetTimeRange{Range: Last7Days})
	assert.Equal(t, Last7Days, s.TimeRange)
	assert.Empty(t, s.CustomDate)
}

func TestTimeRangeCustomWithoutDateIsInert(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetTimeRange{Range: CustomDateRange})
	assert.Equal(t, CustomDateRange, s.TimeRange)
	assert.Empty(t, s.CustomDate)

	chips := NewSummarizer(r.Defaults()).Summarize(s, nil)
	require.Len(t, chips, 1)
	assert.Equal(t, "Custom Date", chips[0].Label)

	s = r.Reduce(s, SetTimeRange{Range: "Last Century"})
	assert.Equal(t, CustomDateRange, s.TimeRange)
}

func TestCitiesAndTypes(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetCities{Cities: []string{" Toronto", "Ottawa", "Toronto", ""}})
	assert.Equal(t, []string{"Toronto", "Ottawa"}, s.Cities)

	s = r.Reduce(s, ToggleCity{City: "Toronto"})
	assert.Equal(t, []string{"Ottawa"}, s.Cities)

	s = r.Reduce(s, TogglePropertyType{Type: "Detached"})
	s = r.Reduce(s, TogglePropertyType{Type: "Semi-Detached"})
	s = r.Reduce(s, TogglePropertyType{Type: "Detached"})
	assert.Equal(t, []string{"Semi-Detached"}, s.PropertyTypes)

	s = r.Reduce(s, SetPropertyTypes{})
	assert.Empty(t, s.PropertyTypes)
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	r := NewReducer(ForSale)
	s := r.Reduce(r.Defaults(), SetStatus{Status: "Pending"})
	assert.Equal(t, ForSale, s.Status)
	s = r.Reduce(s, SetStatus{Status: Leased})
	assert.Equal(t, Leased, s.Status)
}

func TestResetAdvancedAndMerge(t *testing.T) {
	r := NewReducer(ForSale)
	s := busyState(r)
	require.NotZero(t, s.Advanced.ActiveCount())

	cleared := r.Reduce(s, ResetAdvanced{})
	assert.Zero(t, cleared.Advanced.ActiveCount())
	assert.Equal(t, s.Cities, cleared.Cities)

	draft := DefaultAdvanced()
	draft.HouseStyle = []string{"2-Storey", "Igloo"}
	merged := r.Reduce(cleared, MergeAdvanced{Advanced: draft})
	assert.Equal(t, []string{"2 Storey"}, merged.Advanced.HouseStyle)
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "set-price", ActionName(SetPrice{}))
	assert.Equal(t, "advanced/set-range", ActionName(Advanced{Action: SetRange{}}))
	assert.Equal(t, "unknown", ActionName(unknownAction{}))
}
