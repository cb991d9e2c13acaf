package filter

// Draft is a modal-local copy of the advanced block. Edits stay private to
// the draft until it is applied to a Session.
type Draft struct {
	baseline AdvancedState
	current  AdvancedState
}

func NewDraft(from AdvancedState) *Draft {
	base := NormalizeAdvanced(from)
	return &Draft{baseline: base, current: base.Clone()}
}

func (d *Draft) Dispatch(action AdvancedAction) {
	d.current = ReduceAdvanced(d.current, action)
}

// Dirty reports whether the draft differs from the state it was opened with.
func (d *Draft) Dirty() bool {
	return !EqualAdvanced(d.baseline, d.current)
}

// Reset discards edits made since the draft was opened.
func (d *Draft) Reset() {
	d.current = ReduceAdvanced(d.current, ResetAdvancedTo{Baseline: d.baseline})
}

func (d *Draft) Value() AdvancedState {
	return d.current.Clone()
}

func (d *Draft) Baseline() AdvancedState {
	return d.baseline.Clone()
}
