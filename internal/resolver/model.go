package resolver

import "sort"

// Model is the binding record of one type declaration: which target slots it
// already resolves, and which of its own type parameters still feed a slot.
type Model struct {
	name   string
	params []string
	record Record
	// pending maps an own parameter position to the target slots that
	// parameter will resolve once a descendant supplies a concrete type.
	pending map[int][]string
	state   state
}

type state uint8

const (
	statePending state = iota
	stateResolved
	stateMissed
)

func newModel(name string, params []string) *Model {
	return &Model{
		name:    name,
		params:  append([]string(nil), params...),
		pending: map[int][]string{},
	}
}

// QualifiedName returns the identity of the owning declaration.
func (m *Model) QualifiedName() string { return m.name }

// Record returns the generic record, or nil if nothing was bound.
func (m *Model) Record() Record { return m.record }

// Complete mirrors Record().Complete().
func (m *Model) Complete() bool {
	return m.record != nil && m.record.Complete()
}

// Params returns the declaration's own type parameters in order.
func (m *Model) Params() []string {
	return append([]string(nil), m.params...)
}

// Position returns the ordinal of an own type parameter.
func (m *Model) Position(name string) (int, bool) {
	for i, p := range m.params {
		if p == name {
			return i, true
		}
	}
	return -1, false
}

// Positions returns parameter name -> declaration ordinal.
func (m *Model) Positions() map[string]int {
	out := make(map[string]int, len(m.params))
	for i, p := range m.params {
		if _, ok := out[p]; !ok {
			out[p] = i
		}
	}
	return out
}

// Pending returns the target slots still waiting on the named own parameter.
func (m *Model) Pending(param string) []string {
	i, ok := m.Position(param)
	if !ok {
		return nil
	}
	return append([]string(nil), m.pending[i]...)
}

func (m *Model) addPending(pos int, slots ...string) {
	for _, s := range slots {
		if !containsString(m.pending[pos], s) {
			m.pending[pos] = append(m.pending[pos], s)
		}
	}
}

// pendingPositions returns positions with pending slots in ascending order.
func (m *Model) pendingPositions() []int {
	out := make([]int, 0, len(m.pending))
	for pos, slots := range m.pending {
		if len(slots) > 0 {
			out = append(out, pos)
		}
	}
	sort.Ints(out)
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
