package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice renders a price the way the filter chips show it: $950, $500K, $1.25M.
func FormatPrice(v float64) string {
	switch {
	case v >= 1_000_000:
		return "$" + trimDecimals(v/1_000_000, 2) + "M"
	case v >= 1_000:
		return "$" + trimDecimals(v/1_000, 1) + "K"
	}
	return "$" + trimDecimals(v, 0)
}

func trimDecimals(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

func formatCount(v float64) string {
	return trimDecimals(v, 1)
}

// priceLabel returns "" when the selection is not active.
func priceLabel(r RangeSelection) string {
	switch r.Kind() {
	case SelectCustom:
		lo, hi := r.Bounds()
		return boundsLabel(lo, hi, FormatPrice, "")
	case SelectExact:
		v, _ := r.ExactValue()
		return FormatPrice(v)
	}
	if r.IsAny() {
		return ""
	}
	name, _ := r.PresetName()
	return name
}

// roomLabel renders beds or baths selections, e.g. "3+ Beds", "2 Baths", "2-4 Beds".
func roomLabel(r RangeSelection, noun string) string {
	switch r.Kind() {
	case SelectExact:
		v, _ := r.ExactValue()
		return fmt.Sprintf("%s %s", formatCount(v), noun)
	case SelectCustom:
		lo, hi := r.Bounds()
		return boundsLabel(lo, hi, formatCount, " "+noun)
	}
	if r.IsAny() {
		return ""
	}
	name, _ := r.PresetName()
	return name + " " + noun
}

func boundsLabel(lo, hi *float64, format func(float64) string, suffix string) string {
	switch {
	case lo != nil && hi != nil:
		if *lo == *hi {
			return format(*lo) + suffix
		}
		if suffix != "" {
			return format(*lo) + "-" + format(*hi) + suffix
		}
		return format(*lo) + " - " + format(*hi)
	case lo != nil:
		return format(*lo) + "+" + suffix
	case hi != nil:
		return "Up to " + format(*hi) + suffix
	}
	return ""
}

func timeRangeLabel(t TimeRange, date string) string {
	if t == CustomDateRange {
		if date == "" {
			return "Custom Date"
		}
		return "Since " + date
	}
	return string(t)
}
