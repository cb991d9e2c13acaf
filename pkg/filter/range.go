package filter

import "math"

// Domain is the configured bounds of a numeric facet.
type Domain struct {
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
	Step float64 `json:"step"`
}

// snap clamps value into the domain and rounds it to the nearest step
// counted from Lo, never past Hi.
func (d Domain) snap(value float64) float64 {
	value = clamp(value, d.Lo, d.Hi)
	if d.Step <= 0 {
		return value
	}
	steps := math.Round((value - d.Lo) / d.Step)
	snapped := d.Lo + steps*d.Step
	if snapped > d.Hi {
		snapped = d.Lo + (steps-1)*d.Step
	}
	if snapped < d.Lo {
		snapped = d.Lo
	}
	return snapped
}

// Contains reports whether value already sits on the domain grid.
func (d Domain) Contains(value float64) bool {
	return !badNumber(value) && d.snap(value) == value
}

func clamp[T int | float64](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Normalize clamps and rounds a (min, max) pair against the domain.
// An inverted pair shrinks to the max bound rather than being swapped.
func Normalize(minValue, maxValue float64, d Domain) (float64, float64) {
	if badNumber(minValue) {
		minValue = d.Lo
	}
	if badNumber(maxValue) {
		maxValue = d.Hi
	}
	lo := d.snap(minValue)
	hi := d.snap(maxValue)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// NormalizeOptional is Normalize for open bounds. A nil bound stays open.
func NormalizeOptional(minValue, maxValue *float64, d Domain) (*float64, *float64) {
	var lo, hi *float64
	if minValue != nil {
		v := *minValue
		if badNumber(v) {
			v = d.Lo
		}
		v = d.snap(v)
		lo = &v
	}
	if maxValue != nil {
		v := *maxValue
		if badNumber(v) {
			v = d.Hi
		}
		v = d.snap(v)
		hi = &v
	}
	if lo != nil && hi != nil && *lo > *hi {
		v := *hi
		lo = &v
	}
	return lo, hi
}
