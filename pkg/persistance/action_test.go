package persistance

import (
	"math"
	"testing"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionTypes(t *testing.T) {
	cases := []struct {
		rec  ActionRecord
		want filter.Action
	}{
		{ActionRecord{Type: "set-status", Payload: map[string]any{"status": "Sold"}}, filter.SetStatus{Status: filter.Sold}},
		{ActionRecord{Type: "set-time-range", Payload: map[string]any{"range": "Today"}}, filter.SetTimeRange{Range: filter.Today}},
		{ActionRecord{Type: "set-custom-date", Payload: map[string]any{"date": "2024-02-02"}}, filter.SetCustomDate{Date: "2024-02-02"}},
		{ActionRecord{Type: "set-cities", Payload: map[string]any{"cities": []any{"Toronto", "Toronto"}}}, filter.SetCities{Cities: []string{"Toronto"}}},
		{ActionRecord{Type: "toggle-city", Payload: map[string]any{"city": "Ottawa"}}, filter.ToggleCity{City: "Ottawa"}},
		{ActionRecord{Type: "toggle-property-type", Payload: map[string]any{"type": "Detached"}}, filter.TogglePropertyType{Type: "Detached"}},
		{ActionRecord{Type: "reset-all"}, filter.ResetAll{}},
		{ActionRecord{Type: "reset-advanced"}, filter.ResetAdvanced{}},
		{ActionRecord{Type: "toggle-quick-filter", Payload: map[string]any{"label": "Pool"}}, filter.ToggleQuickFilter{Label: "Pool"}},
		{ActionRecord{Type: "advanced/set-field", Payload: map[string]any{"field": "waterfront", "value": "Yes"}},
			filter.Advanced{Action: filter.SetField{Field: filter.WaterfrontField, Value: "Yes"}}},
		{ActionRecord{Type: "advanced/set-range", Payload: map[string]any{"field": "daysOnMarket", "bound": "max", "value": 30.0}},
			filter.Advanced{Action: filter.SetRange{Field: filter.DaysOnMarket, Bound: filter.MaxBound, Value: 30}}},
		{ActionRecord{Type: "advanced/toggle-basement-feature", Payload: map[string]any{"feature": "None"}},
			filter.Advanced{Action: filter.ToggleBasementFeature{Feature: filter.BasementNone}}},
		{ActionRecord{Type: "advanced/set-open-house", Payload: map[string]any{"timing": "Today"}},
			filter.Advanced{Action: filter.SetOpenHouse{Timing: filter.OpenHouseToday}}},
	}
	for _, c := range cases {
		t.Run(c.rec.Type, func(t *testing.T) {
			assert.Equal(t, c.want, ParseAction(c.rec))
		})
	}
}

func TestParseActionUnknownIsNil(t *testing.T) {
	assert.Nil(t, ParseAction(ActionRecord{Type: "launch-rocket"}))
	assert.Nil(t, ParseAction(ActionRecord{Type: "advanced/launch-rocket"}))
	assert.Nil(t, ParseAction(ActionRecord{Type: "apply-patch"}))
}

func TestParseActionMalformedRangeValue(t *testing.T) {
	act := ParseAction(ActionRecord{Type: "advanced/set-range", Payload: map[string]any{"field": "garageParking", "value": "lots"}})
	adv, ok := act.(filter.Advanced)
	require.True(t, ok)
	sr := adv.Action.(filter.SetRange)
	assert.Equal(t, filter.MinBound, sr.Bound)
	assert.True(t, math.IsNaN(sr.Value))

	r := filter.NewReducer(filter.ForSale)
	s := r.Reduce(r.Defaults(), act)
	assert.Equal(t, filter.NumberRange{Min: 0, Max: 10}, s.Advanced.Range(filter.GarageParking))
}

func TestParsePriceActionFromJSON(t *testing.T) {
	r := filter.NewReducer(filter.ForSale)

	var rec ActionRecord
	require.NoError(t, jsoncompat.Unmarshal([]byte(`{"type":"set-price","payload":{"min":500000,"max":800000,"preset":null}}`), &rec))
	s := r.Reduce(r.Defaults(), ParseAction(rec))
	lo, hi := s.Price.Bounds()
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 500_000.0, *lo)
	assert.Equal(t, 800_000.0, *hi)

	s = r.Reduce(s, ParseAction(ActionRecord{Type: "set-price", Payload: map[string]any{"max": nil}}))
	lo, hi = s.Price.Bounds()
	assert.Equal(t, 500_000.0, *lo)
	assert.Nil(t, hi)

	s = r.Reduce(s, ParseAction(ActionRecord{Type: "set-price", Payload: map[string]any{"preset": nil}}))
	assert.True(t, s.Price.IsAny())
}

func TestParseBedsExactClearsBounds(t *testing.T) {
	r := filter.NewReducer(filter.ForSale)
	s := r.Reduce(r.Defaults(), ParseAction(ActionRecord{Type: "set-beds", Payload: map[string]any{"min": 2.0, "exact": nil}}))
	assert.Equal(t, filter.SelectCustom, s.Beds.Kind())

	s = r.Reduce(s, ParseAction(ActionRecord{Type: "set-beds", Payload: map[string]any{"exact": "3"}}))
	v, ok := s.Beds.ExactValue()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestParseMergeAdvanced(t *testing.T) {
	act := ParseAction(ActionRecord{Type: "merge-advanced", Payload: map[string]any{
		"advanced": map[string]any{
			"houseStyle":   []any{"Bungalow"},
			"swimmingPool": "Yes",
			"ranges":       map[string]any{"totalParking": map[string]any{"min": 2.0}},
		},
	}})
	r := filter.NewReducer(filter.ForSale)
	s := r.Reduce(r.Defaults(), act)
	assert.Equal(t, []string{"Bungalow"}, s.Advanced.HouseStyle)
	assert.Equal(t, filter.Yes, s.Advanced.SwimmingPool)
	assert.Equal(t, filter.NumberRange{Min: 2, Max: 20}, s.Advanced.Range(filter.TotalParking))
	assert.Equal(t, 3, s.Advanced.ActiveCount())
}
