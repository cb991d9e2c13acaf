package filter

// SelectionKind tags which mechanism drives a RangeSelection.
type SelectionKind uint8

const (
	SelectPreset SelectionKind = iota
	SelectExact
	SelectCustom
)

func (k SelectionKind) String() string {
	switch k {
	case SelectExact:
		return "exact"
	case SelectCustom:
		return "custom"
	default:
		return "preset"
	}
}

// AnyPreset is the preset meaning "no constraint".
const AnyPreset = "Any"

// RangeSelection is one of Preset(name), Exact(value) or Custom(min, max).
// Only one mechanism is ever active; the zero value is Preset("Any").
type RangeSelection struct {
	kind   SelectionKind
	preset string
	exact  float64
	min    *float64
	max    *float64
}

func Preset(name string) RangeSelection {
	if name == "" {
		name = AnyPreset
	}
	return RangeSelection{kind: SelectPreset, preset: name}
}

func Exact(value float64) RangeSelection {
	return RangeSelection{kind: SelectExact, exact: value}
}

// Custom builds a custom range. Both bounds open is the same as Preset("Any").
func Custom(minValue, maxValue *float64) RangeSelection {
	if minValue == nil && maxValue == nil {
		return Preset(AnyPreset)
	}
	return RangeSelection{kind: SelectCustom, min: copyFloat(minValue), max: copyFloat(maxValue)}
}

func (r RangeSelection) Kind() SelectionKind { return r.kind }

// PresetName returns the preset name, "Any" for the zero value.
func (r RangeSelection) PresetName() (string, bool) {
	if r.kind != SelectPreset {
		return "", false
	}
	if r.preset == "" {
		return AnyPreset, true
	}
	return r.preset, true
}

func (r RangeSelection) ExactValue() (float64, bool) {
	if r.kind != SelectExact {
		return 0, false
	}
	return r.exact, true
}

// Bounds returns the custom bounds. Both are nil unless the selection is custom.
func (r RangeSelection) Bounds() (*float64, *float64) {
	if r.kind != SelectCustom {
		return nil, nil
	}
	return copyFloat(r.min), copyFloat(r.max)
}

// IsAny reports whether the selection puts no constraint on the facet.
func (r RangeSelection) IsAny() bool {
	name, ok := r.PresetName()
	return ok && name == AnyPreset
}

func (r RangeSelection) Equal(o RangeSelection) bool {
	if r.kind != o.kind {
		return false
	}
	switch r.kind {
	case SelectExact:
		return r.exact == o.exact
	case SelectCustom:
		return floatPtrEqual(r.min, o.min) && floatPtrEqual(r.max, o.max)
	default:
		a, _ := r.PresetName()
		b, _ := o.PresetName()
		return a == b
	}
}

// Update is a partial write of a nullable value: untouched, set, or cleared.
type Update[T any] struct {
	set   bool
	value *T
}

func Keep[T any]() Update[T] { return Update[T]{} }

func To[T any](v T) Update[T] { return Update[T]{set: true, value: &v} }

func Clear[T any]() Update[T] { return Update[T]{set: true} }

func (u Update[T]) IsSet() bool { return u.set }

// Value returns the new value, nil when the update clears it.
func (u Update[T]) Value() *T { return u.value }

// RangePatch is a partial update merged over a RangeSelection.
type RangePatch struct {
	Min    Update[float64]
	Max    Update[float64]
	Preset Update[string]
	Exact  Update[float64]
}

func (p RangePatch) empty() bool {
	return !p.Min.set && !p.Max.set && !p.Preset.set && !p.Exact.set
}

// merge applies the patch. A preset write wins over exact, exact over bounds.
func (p RangePatch) merge(current RangeSelection, d Domain, allowExact bool) RangeSelection {
	switch {
	case p.empty():
		return current
	case p.Preset.set:
		if p.Preset.value == nil {
			return Preset(AnyPreset)
		}
		return Preset(*p.Preset.value)
	case p.Exact.set && allowExact:
		if p.Exact.value == nil {
			return Preset(AnyPreset)
		}
		v := *p.Exact.value
		if badNumber(v) {
			v = d.Lo
		}
		return Exact(d.snap(v))
	}
	if !p.Min.set && !p.Max.set {
		return current
	}
	lo, hi := current.Bounds()
	if p.Min.set {
		lo = copyFloat(p.Min.value)
	}
	if p.Max.set {
		hi = copyFloat(p.Max.value)
	}
	lo, hi = NormalizeOptional(lo, hi, d)
	return Custom(lo, hi)
}

// normalize re-derives a selection read from outside the reducer.
func (r RangeSelection) normalize(d Domain, presets []RangePreset, allowExact bool) RangeSelection {
	switch r.kind {
	case SelectExact:
		if !allowExact {
			return Preset(AnyPreset)
		}
		v := r.exact
		if badNumber(v) {
			v = d.Lo
		}
		return Exact(d.snap(v))
	case SelectCustom:
		lo, hi := NormalizeOptional(r.min, r.max, d)
		return Custom(lo, hi)
	default:
		name, _ := r.PresetName()
		if findPreset(presets, name) == nil {
			return Preset(AnyPreset)
		}
		return Preset(name)
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Float is a convenience for building optional bounds.
func Float(v float64) *float64 { return &v }
