package persistance

// Document is the persisted layout of a filter state. It only holds strings,
// numbers, nulls and arrays so any JSON store can carry it.
type Document struct {
	Status              string           `json:"status"`
	TimeRange           string           `json:"timeRange"`
	TimeRangeCustomDate *string          `json:"timeRangeCustomDate"`
	Cities              []string         `json:"cities"`
	PropertyTypes       []string         `json:"propertyTypes"`
	Price               PriceDocument    `json:"price"`
	Beds                RoomDocument     `json:"beds"`
	Baths               RoomDocument     `json:"baths"`
	Advanced            AdvancedDocument `json:"advanced"`
}

type PriceDocument struct {
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Preset *string  `json:"preset"`
}

type RoomDocument struct {
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Preset *string  `json:"preset"`
	Exact  *float64 `json:"exact"`
}

type BoundsDocument struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type AdvancedDocument struct {
	Keywords         []string                  `json:"keywords"`
	PropertyClasses  []string                  `json:"propertyClasses"`
	Ranges           map[string]BoundsDocument `json:"ranges"`
	HouseStyle       []string                  `json:"houseStyle"`
	LotFrontage      *string                   `json:"lotFrontage"`
	LotDepth         *string                   `json:"lotDepth"`
	BasementFeatures []string                  `json:"basementFeatures"`
	PropertyAge      *string                   `json:"propertyAge"`
	SwimmingPool     *string                   `json:"swimmingPool"`
	Waterfront       *string                   `json:"waterfront"`
	OpenHouseTiming  string                    `json:"openHouseTiming"`
}

// ActionRecord is the wire form of a dispatched action.
type ActionRecord struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}
