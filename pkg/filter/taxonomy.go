package filter

import "slices"

// houseStyleTaxonomy is the single source for house style names. Display is
// what filter surfaces show, Raw is what the listing backend stores; Legacy
// holds older raw spellings still found in saved searches.
var houseStyleTaxonomy = []struct {
	Display string
	Raw     string
	Legacy  []string
}{
	{Display: "Bungalow", Raw: "Bungalow"},
	{Display: "Raised Bungalow", Raw: "Bungalow-Raised", Legacy: []string{"Bungalow Raised", "Raised Bungalow"}},
	{Display: "Bungaloft", Raw: "Bungaloft"},
	{Display: "1.5 Storey", Raw: "1 1/2 Storey", Legacy: []string{"1.5 Storey", "One And Half Storey"}},
	{Display: "2 Storey", Raw: "2-Storey", Legacy: []string{"2 Storey", "Two Storey"}},
	{Display: "2.5 Storey", Raw: "2 1/2 Storey", Legacy: []string{"2.5 Storey"}},
	{Display: "3 Storey", Raw: "3-Storey", Legacy: []string{"3 Storey", "Three Storey"}},
	{Display: "Backsplit", Raw: "Backsplit 4", Legacy: []string{"Backsplit 3", "Backsplit 5", "Backsplit"}},
	{Display: "Sidesplit", Raw: "Sidesplit 4", Legacy: []string{"Sidesplit 3", "Sidesplit 5", "Sidesplit"}},
	{Display: "Split Level", Raw: "Multi-Level", Legacy: []string{"Split Level", "Multi Level"}},
	{Display: "Contemporary", Raw: "Contemporary"},
	{Display: "Other", Raw: "Other"},
}

var (
	houseStyleDisplayToRaw = map[string]string{}
	houseStyleRawToDisplay = map[string]string{}
	HouseStyles            []string
)

func init() {
	for _, entry := range houseStyleTaxonomy {
		HouseStyles = append(HouseStyles, entry.Display)
		houseStyleDisplayToRaw[entry.Display] = entry.Raw
		houseStyleRawToDisplay[entry.Raw] = entry.Display
		for _, legacy := range entry.Legacy {
			houseStyleRawToDisplay[legacy] = entry.Display
		}
	}
}

// HouseStyleRaw maps a display name to the backend value.
func HouseStyleRaw(display string) (string, bool) {
	raw, ok := houseStyleDisplayToRaw[display]
	return raw, ok
}

// HouseStyleDisplay maps a display name or any known raw spelling to the
// display name.
func HouseStyleDisplay(value string) (string, bool) {
	if _, ok := houseStyleDisplayToRaw[value]; ok {
		return value, true
	}
	display, ok := houseStyleRawToDisplay[value]
	return display, ok
}

const BasementNone = "None"

var BasementFeatures = []string{
	BasementNone,
	"Finished",
	"Partially Finished",
	"Unfinished",
	"Walk-Out",
	"Walk-Up",
	"Separate Entrance",
	"Apartment",
	"Crawl Space",
}

var PropertyClasses = []string{"Residential", "Condo", "Commercial"}

var LotFrontages = []string{"Under 30 ft", "30-50 ft", "50-80 ft", "80-100 ft", "100+ ft"}

var LotDepths = []string{"Under 100 ft", "100-150 ft", "150-200 ft", "200+ ft"}

var PropertyAges = []string{"New", "0-5 Years", "6-15 Years", "16-30 Years", "31-50 Years", "51-99 Years", "100+ Years"}

type YesNo string

const (
	AnyYesNo YesNo = ""
	Yes      YesNo = "Yes"
	No       YesNo = "No"
)

func parseYesNo(v string) YesNo {
	switch YesNo(v) {
	case Yes, No:
		return YesNo(v)
	}
	return AnyYesNo
}

type OpenHouseTiming string

const (
	OpenHouseAll      OpenHouseTiming = "All"
	OpenHouseToday    OpenHouseTiming = "Today"
	OpenHouseTomorrow OpenHouseTiming = "Tomorrow"
	OpenHouseWeekend  OpenHouseTiming = "Weekend"
)

var OpenHouseTimings = []OpenHouseTiming{OpenHouseAll, OpenHouseToday, OpenHouseTomorrow, OpenHouseWeekend}

func (o OpenHouseTiming) Valid() bool {
	return slices.Contains(OpenHouseTimings, o)
}

// oneOf returns v when it is a member of allowed, otherwise "".
func oneOf(v string, allowed []string) string {
	if slices.Contains(allowed, v) {
		return v
	}
	return ""
}
