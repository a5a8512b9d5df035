// Package value provides the immutable document tree that the amend engine
// transforms.
//
// A Value is one of three kinds: a Record (unordered string-keyed mapping),
// a Sequence (ordered list), or a scalar (string, bool, number, nil, or the
// explicit Absent marker). Values are never mutated in place; every operation
// that changes a container returns a newly allocated shallow copy, while the
// untouched children of the copy are shared by reference with the original.
// This makes copies cheap and makes it safe to share Values between
// goroutines without locking.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	// KindScalar covers strings, booleans, numbers, nil, and Absent.
	KindScalar Kind = iota
	// KindRecord is an unordered string-keyed mapping.
	KindRecord
	// KindSequence is an ordered list.
	KindSequence
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// absent is the internal representation of the absence marker.
type absent struct{}

// Absent is the explicit absence marker. It is the baseline value for keys
// addressed before they exist and for sequence slots created by extending a
// sequence past its end. Absent converts to nil when a tree is converted
// back to native Go values.
var Absent = &Value{data: absent{}}

// Value is a single node in a document tree. It holds a *Record, a
// *Sequence, or a scalar (string, bool, int64, float64, absent, or nil).
// The zero Value is the nil scalar.
type Value struct {
	data any
}

// New converts a native Go value into a Value. Maps with string keys become
// Records, slices become Sequences, and numeric types are normalized so that
// equal numbers compare equal regardless of the Go type they arrived as
// (integer kinds are widened to int64, float32 to float64).
//
// New panics if the value cannot be represented in a document tree
// (channels, funcs, structs, and maps with non-string keys).
func New(data any) *Value {
	if data == nil {
		return &Value{data: nil}
	}
	switch d := data.(type) {
	case *Value:
		return d
	case *Record:
		return &Value{data: d}
	case *Sequence:
		return &Value{data: d}
	case absent:
		return Absent
	case string, bool:
		return &Value{data: d}
	case int:
		return &Value{data: int64(d)}
	case int8:
		return &Value{data: int64(d)}
	case int16:
		return &Value{data: int64(d)}
	case int32:
		return &Value{data: int64(d)}
	case int64:
		return &Value{data: d}
	case uint:
		return &Value{data: int64(d)}
	case uint8:
		return &Value{data: int64(d)}
	case uint16:
		return &Value{data: int64(d)}
	case uint32:
		return &Value{data: int64(d)}
	case uint64:
		return &Value{data: int64(d)}
	case float32:
		return &Value{data: float64(d)}
	case float64:
		return &Value{data: d}
	case map[string]any:
		return &Value{data: RecordFrom(d)}
	case []any:
		return &Value{data: SequenceFrom(d)}
	default:
		panic(fmt.Errorf("value: cannot represent %T in a document tree", data))
	}
}

// Kind reports whether the value is a record, sequence, or scalar.
// A nil *Value is the nil scalar.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindScalar
	}
	switch v.data.(type) {
	case *Record:
		return KindRecord
	case *Sequence:
		return KindSequence
	default:
		return KindScalar
	}
}

// AsRecord returns the underlying Record, or false if the value is not
// record-shaped.
func (v *Value) AsRecord() (*Record, bool) {
	if v == nil {
		return nil, false
	}
	r, ok := v.data.(*Record)
	return r, ok
}

// AsSequence returns the underlying Sequence, or false if the value is not
// sequence-shaped.
func (v *Value) AsSequence() (*Sequence, bool) {
	if v == nil {
		return nil, false
	}
	s, ok := v.data.(*Sequence)
	return s, ok
}

// IsAbsent reports whether the value is the absence marker.
func (v *Value) IsAbsent() bool {
	if v == nil {
		return false
	}
	_, ok := v.data.(absent)
	return ok
}

// Interface converts the tree back to native Go values: Records become
// map[string]any, Sequences become []any, scalars are returned as-is, and
// Absent becomes nil. The result shares nothing with the receiver and is
// safe to hand to encoders.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch d := v.data.(type) {
	case *Record:
		out := make(map[string]any, d.Len())
		d.Range(func(key string, child *Value) bool {
			out[key] = child.Interface()
			return true
		})
		return out
	case *Sequence:
		out := make([]any, d.Len())
		d.Range(func(i int, child *Value) bool {
			out[i] = child.Interface()
			return true
		})
		return out
	case absent:
		return nil
	default:
		return d
	}
}

// Equal reports deep equality of two values. Numbers compare equal only
// within the same numeric family (int64 vs int64, float64 vs float64),
// matching how New normalizes them.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return a.Kind() == KindScalar && b.Kind() == KindScalar &&
			a.Interface() == nil && b.Interface() == nil
	}
	switch ad := a.data.(type) {
	case *Record:
		bd, ok := b.data.(*Record)
		if !ok || ad.Len() != bd.Len() {
			return false
		}
		equal := true
		ad.Range(func(key string, av *Value) bool {
			bv, found := bd.Find(key)
			if !found || !Equal(av, bv) {
				equal = false
			}
			return equal
		})
		return equal
	case *Sequence:
		bd, ok := b.data.(*Sequence)
		if !ok || ad.Len() != bd.Len() {
			return false
		}
		equal := true
		ad.Range(func(i int, av *Value) bool {
			if !Equal(av, bd.At(i)) {
				equal = false
			}
			return equal
		})
		return equal
	default:
		return a.data == b.data
	}
}

// String returns a compact debug representation of the tree.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch d := v.data.(type) {
	case *Record:
		parts := make([]string, 0, d.Len())
		for _, key := range d.Keys() {
			child, _ := d.Find(key)
			parts = append(parts, fmt.Sprintf("%q:%s", key, child.String()))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case *Sequence:
		parts := make([]string, 0, d.Len())
		d.Range(func(_ int, child *Value) bool {
			parts = append(parts, child.String())
			return true
		})
		return "[" + strings.Join(parts, ",") + "]"
	case absent:
		return "absent"
	case string:
		return strconv.Quote(d)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", d)
	}
}
