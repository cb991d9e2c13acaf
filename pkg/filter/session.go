package filter

import (
	"slices"
	"sync"
)

// Session owns the canonical state of one search session together with the
// active quick filter labels. Dispatch is the only way to change either.
type Session struct {
	mu         sync.Mutex
	reducer    *Reducer
	mapper     *QuickMapper
	summarizer *Summarizer
	state      State
	quick      []quickEntry
}

type quickEntry struct {
	label  string
	before State
}

// NewSession starts a session at the reducer defaults. A nil mapper uses
// the built-in quick filter table.
func NewSession(reducer *Reducer, mapper *QuickMapper) *Session {
	if mapper == nil {
		mapper = NewQuickMapper(DefaultQuickFilters)
	}
	return &Session{
		reducer:    reducer,
		mapper:     mapper,
		summarizer: NewSummarizer(reducer.Defaults()),
		state:      reducer.Defaults(),
	}
}

// Restore replaces the state, e.g. with one handed over from another page.
// The state is normalized and quick filters are cleared.
func (s *Session) Restore(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NormalizeState(state, s.reducer.defaults.Status)
	s.quick = nil
	return s.state.Clone()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Session) QuickFilters() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labels()
}

func (s *Session) Chips() []Chip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summarizer.Summarize(s.state, s.labels())
}

// Snapshot returns the state with its chips and quick filter labels, all
// read under one lock.
func (s *Session) Snapshot() (State, []Chip, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	labels := s.labels()
	return s.state.Clone(), s.summarizer.Summarize(s.state, labels), labels
}

func (s *Session) Mapper() *QuickMapper {
	return s.mapper
}

// Dispatch applies an action and returns the new state.
func (s *Session) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch act := action.(type) {
	case AddQuickFilter:
		s.addQuick(act.Label)
	case RemoveQuickFilter:
		s.removeQuick(act.Label)
	case ToggleQuickFilter:
		if s.activeQuick(act.Label) {
			s.removeQuick(act.Label)
		} else {
			s.addQuick(act.Label)
		}
	case ResetAll:
		s.state = s.reducer.Reduce(s.state, act)
		s.quick = nil
	default:
		s.state = s.reducer.Reduce(s.state, action)
	}
	s.prune()
	return s.state.Clone()
}

// Clear resets every filter and drops all quick filters.
func (s *Session) Clear() State {
	return s.Dispatch(ResetAll{})
}

// OpenDraft starts a modal edit of the advanced block.
func (s *Session) OpenDraft() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewDraft(s.state.Advanced)
}

// Apply merges a draft into the canonical state.
func (s *Session) Apply(d *Draft) State {
	return s.Dispatch(MergeAdvanced{Advanced: d.Value()})
}

func (s *Session) labels() []string {
	out := make([]string, len(s.quick))
	for i, q := range s.quick {
		out[i] = q.label
	}
	return out
}

func (s *Session) activeQuick(label string) bool {
	return slices.ContainsFunc(s.quick, func(q quickEntry) bool { return q.label == label })
}

func (s *Session) addQuick(label string) {
	if s.activeQuick(label) {
		return
	}
	patch, ok := s.mapper.Apply(label)
	if !ok {
		return
	}
	before := s.state.Clone()
	s.state = s.reducer.Reduce(s.state, ApplyPatch{Patch: patch})
	s.quick = append(s.quick, quickEntry{label: label, before: before})
}

func (s *Session) removeQuick(label string) {
	idx := slices.IndexFunc(s.quick, func(q quickEntry) bool { return q.label == label })
	if idx < 0 {
		return
	}
	entry := s.quick[idx]
	patch := s.mapper.Restore(entry.before, s.state, label)
	s.state = s.reducer.Reduce(s.state, ApplyPatch{Patch: patch})
	s.quick = slices.Delete(slices.Clone(s.quick), idx, idx+1)
}

// prune drops quick filters whose writes no longer hold, e.g. after the
// user changed the same field through the advanced modal.
func (s *Session) prune() {
	kept := s.quick[:0:0]
	for _, q := range s.quick {
		if s.mapper.Reflects(s.state, q.label) {
			kept = append(kept, q)
		}
	}
	s.quick = kept
}
