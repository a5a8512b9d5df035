package value

// Sequence is an ordered list of Values. Sequences are immutable: mutating
// operations return a new Sequence sharing untouched elements with the
// original.
type Sequence struct {
	items []*Value
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// SequenceFrom builds a sequence from a native Go slice, converting each
// element with New.
func SequenceFrom(s []any) *Sequence {
	items := make([]*Value, len(s))
	for i, val := range s {
		items[i] = New(val)
	}
	return &Sequence{items: items}
}

// SequenceOf builds a sequence from the given Values.
func SequenceOf(vals ...*Value) *Sequence {
	items := make([]*Value, len(vals))
	copy(items, vals)
	return &Sequence{items: items}
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.items)
}

// At returns the element at index i, or Absent if i is out of range.
func (s *Sequence) At(i int) *Value {
	if i < 0 || i >= len(s.items) {
		return Absent
	}
	return s.items[i]
}

// Assoc returns a new sequence with index i set to val. An index at or past
// the end extends the sequence, filling any gap with Absent. A negative
// index returns the receiver unchanged; callers that need to reject
// negative indices must check before calling.
func (s *Sequence) Assoc(i int, val *Value) *Sequence {
	if i < 0 {
		return s
	}
	n := len(s.items)
	if i >= n {
		n = i + 1
	}
	items := make([]*Value, n)
	copy(items, s.items)
	for j := len(s.items); j < n; j++ {
		items[j] = Absent
	}
	items[i] = val
	return &Sequence{items: items}
}

// Append returns a new sequence with val added at the end.
func (s *Sequence) Append(val *Value) *Sequence {
	items := make([]*Value, len(s.items)+1)
	copy(items, s.items)
	items[len(s.items)] = val
	return &Sequence{items: items}
}

// Concat returns a new sequence holding the receiver's elements followed by
// other's elements. No deduplication is performed.
func (s *Sequence) Concat(other *Sequence) *Sequence {
	items := make([]*Value, 0, len(s.items)+other.Len())
	items = append(items, s.items...)
	items = append(items, other.items...)
	return &Sequence{items: items}
}

// Slice returns the sub-sequence [from, to). Bounds are clamped to the
// sequence: a from past the end yields an empty sequence, a to past the end
// is treated as the end.
func (s *Sequence) Slice(from, to int) *Sequence {
	if from < 0 {
		from = 0
	}
	if to > len(s.items) {
		to = len(s.items)
	}
	if from >= to {
		return &Sequence{}
	}
	items := make([]*Value, to-from)
	copy(items, s.items[from:to])
	return &Sequence{items: items}
}

// Splice returns a new sequence with the window [start, start+length)
// replaced by the elements of window. The window may differ in length from
// the span it replaces, so Splice expresses insertion and deletion as well
// as in-place replacement.
func (s *Sequence) Splice(start, length int, window *Sequence) *Sequence {
	return s.Slice(0, start).Concat(window).Concat(s.Slice(start+length, len(s.items)))
}

// Range iterates over the elements in order, calling fn for each. Iteration
// stops early if fn returns false.
func (s *Sequence) Range(fn func(i int, v *Value) bool) {
	for i, v := range s.items {
		if !fn(i, v) {
			return
		}
	}
}
