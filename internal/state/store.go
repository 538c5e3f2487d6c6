package state

// Store is the ordered collection of strokes. Insertion order is render order.
// It is not safe for concurrent use; the engine touches it from one goroutine.
type Store struct {
	strokes []*Stroke
}

func NewStore() *Store {
	return &Store{strokes: make([]*Stroke, 0)}
}

// Append adds s on top of all existing strokes.
func (st *Store) Append(s *Stroke) {
	st.strokes = append(st.strokes, s)
}

// PopLast removes and returns the most recent stroke. It returns false on an
// empty store and leaves it untouched.
func (st *Store) PopLast() (*Stroke, bool) {
	n := len(st.strokes)
	if n == 0 {
		return nil, false
	}
	s := st.strokes[n-1]
	st.strokes[n-1] = nil
	st.strokes = st.strokes[:n-1]
	return s, true
}

// Last returns the most recent stroke without removing it.
func (st *Store) Last() (*Stroke, bool) {
	if len(st.strokes) == 0 {
		return nil, false
	}
	return st.strokes[len(st.strokes)-1], true
}

// Clear drops every stroke.
func (st *Store) Clear() {
	st.strokes = make([]*Stroke, 0)
}

// Len returns the number of strokes.
func (st *Store) Len() int { return len(st.strokes) }

// Each calls fn for every stroke in insertion order. fn must not mutate the store.
func (st *Store) Each(fn func(*Stroke)) {
	for _, s := range st.strokes {
		fn(s)
	}
}
