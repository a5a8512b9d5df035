// Package action implements composable structural updates over immutable
// document trees.
//
// An Update describes how to produce a changed copy of a value.Value without
// mutating the original. It is either a literal (replace the current value
// verbatim) or a transform (a pure function from the current value to a new
// one). Combinators such as Merge, SetIn, Select, and Range build larger
// Updates out of smaller ones by ordinary composition; Apply evaluates an
// Update against a value.
//
// Updates carry no mutable state, so a composed Update may be built once and
// reused across many evaluations, including concurrently.
package action

import (
	"fmt"

	"github.com/amend-dev/amend/keypath"
	"github.com/amend-dev/amend/value"
)

// TransformFunc is a pure transform from the current value to a new one.
type TransformFunc func(ctx *value.Value) (*value.Value, error)

// Update is either a literal replacement value or a transform. The zero
// Update is the literal nil value.
type Update struct {
	transform TransformFunc
	literal   *value.Value
}

// Lit creates a literal Update that replaces the current value with v.
// Any value accepted by value.New may be used, including records and
// sequences.
func Lit(v any) Update {
	return Update{literal: value.New(v)}
}

// Transform creates an Update from a transform function.
func Transform(fn TransformFunc) Update {
	return Update{transform: fn}
}

// Func creates a transform Update from a function that cannot fail.
func Func(fn func(ctx *value.Value) *value.Value) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		return fn(ctx), nil
	})
}

// Apply evaluates an Update against the current value: a transform is
// called with the value, a literal is returned unchanged. Every combinator
// in this package routes its update parameters through Apply, so a literal
// is accepted anywhere a transform is.
func Apply(ctx *value.Value, u Update) (*value.Value, error) {
	if u.transform != nil {
		return u.transform(ctx)
	}
	return u.literal, nil
}

// Replace returns an Update that discards the current value entirely and
// replaces it with the result of evaluating u. Replace is the only leaf
// combinator that may change a value's kind, for example turning a sequence
// into a scalar.
func Replace(u Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		return Apply(ctx, u)
	})
}

// Merge returns an Update that overlays the evaluated u onto the current
// record: colliding keys take u's value, keys present only in the current
// record are preserved by reference. Both the current value and the
// evaluated update must be records.
func Merge(u Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		rec, ok := ctx.AsRecord()
		if !ok {
			return nil, &ShapeError{Op: "merge", Want: "record", Got: ctx.Kind()}
		}
		upd, err := Apply(ctx, u)
		if err != nil {
			return nil, err
		}
		urec, ok := upd.AsRecord()
		if !ok {
			return nil, &ShapeError{Op: "merge update", Want: "record", Got: upd.Kind()}
		}
		return value.New(rec.Merge(urec)), nil
	})
}

// Concat returns an Update that appends the elements of the evaluated u to
// the current sequence. Order is preserved and no deduplication is
// performed. Both the current value and the evaluated update must be
// sequences.
func Concat(u Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		seq, ok := ctx.AsSequence()
		if !ok {
			return nil, &ShapeError{Op: "concat", Want: "sequence", Got: ctx.Kind()}
		}
		upd, err := Apply(ctx, u)
		if err != nil {
			return nil, err
		}
		useq, ok := upd.AsSequence()
		if !ok {
			return nil, &ShapeError{Op: "concat update", Want: "sequence", Got: upd.Kind()}
		}
		return value.New(seq.Concat(useq)), nil
	})
}

// SetIn returns an Update that changes exactly one child of the current
// container, leaving its kind and all other children untouched. This is the
// single point where one level of copy-on-write happens; deeper updates are
// built by nesting SetIn through SelectKeys.
//
// On a record, a key that is not present is created with an Absent baseline
// handed to u. On a sequence, the key must be numeric; an index at or past
// the end extends the sequence, filling the gap with Absent, and a negative
// index is an error. A scalar current value is a shape error: SetIn does not
// create intermediate containers.
func SetIn(key keypath.Key, u Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		switch ctx.Kind() {
		case value.KindRecord:
			rec, _ := ctx.AsRecord()
			child, err := Apply(rec.At(key.Name()), u)
			if err != nil {
				return nil, err
			}
			return value.New(rec.Assoc(key.Name(), child)), nil
		case value.KindSequence:
			seq, _ := ctx.AsSequence()
			idx, ok := key.Index()
			if !ok || idx < 0 {
				return nil, &IndexError{Op: "setIn", Key: key.Name()}
			}
			child, err := Apply(seq.At(idx), u)
			if err != nil {
				return nil, err
			}
			return value.New(seq.Assoc(idx, child)), nil
		default:
			return nil, &ShapeError{Op: "setIn", Want: "record or sequence", Got: ctx.Kind()}
		}
	})
}

// SelectKeys re-scopes u to the nested location addressed by keys, building
// one SetIn per segment so that the copy cost is one shallow container copy
// per path level, never the whole tree. An empty key list applies u at the
// current value directly.
func SelectKeys(keys []keypath.Key, u Update) Update {
	if len(keys) == 0 {
		return Replace(u)
	}
	return SetIn(keys[0], SelectKeys(keys[1:], u))
}

// Select is the string-path form of SelectKeys, parsing path with the
// keypath package. A malformed path is reported when the Update is applied,
// as a PathError; it never silently selects the document root.
func Select(path string, u Update) Update {
	keys, err := keypath.Parse(path)
	if err != nil {
		perr := &PathError{Path: path, Cause: err}
		return Transform(func(*value.Value) (*value.Value, error) {
			return nil, perr
		})
	}
	return SelectKeys(keys, u)
}

// PathUpdate pairs a key path with the update to apply there.
type PathUpdate struct {
	Path   string
	Update Update
}

// SelectAll applies independent deep updates at multiple paths, in the
// order given. Each update is applied to the result of the previous one, so
// later entries observe earlier entries' edits when their paths overlap.
// The caller supplies an ordered slice rather than a map to keep the order
// reproducible.
func SelectAll(pairs []PathUpdate) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		var err error
		for _, p := range pairs {
			ctx, err = Apply(ctx, Select(p.Path, p.Update))
			if err != nil {
				return nil, err
			}
		}
		return ctx, nil
	})
}

// Collect sequences updates: each one's output becomes the next one's
// input, starting from the current value. It is function composition as
// data, so lists of updates can be built programmatically.
func Collect(updates ...Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		var err error
		for _, u := range updates {
			ctx, err = Apply(ctx, u)
			if err != nil {
				return nil, err
			}
		}
		return ctx, nil
	})
}

// Map applies a per-element update across the current sequence, producing a
// new sequence of the same length. fn receives each element and its index
// and returns the update for that element. Map cannot change the sequence
// length; use Range or Concat for that.
func Map(fn func(v *value.Value, i int) Update) Update {
	return Replace(Transform(func(ctx *value.Value) (*value.Value, error) {
		seq, ok := ctx.AsSequence()
		if !ok {
			return nil, &ShapeError{Op: "map", Want: "sequence", Got: ctx.Kind()}
		}
		items := make([]*value.Value, seq.Len())
		var rangeErr error
		seq.Range(func(i int, el *value.Value) bool {
			var nv *value.Value
			nv, rangeErr = Apply(el, fn(el, i))
			if rangeErr != nil {
				return false
			}
			items[i] = nv
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return value.New(value.SequenceOf(items...)), nil
	}))
}

// Range applies u to the contiguous window [start, start+length) of the
// current sequence, leaving elements outside the window untouched. The
// evaluated window must be a sequence but may differ in length, so Range
// expresses insertion (longer) and deletion (shorter, including empty)
// without a separate splice primitive. A start past the end yields an empty
// window appended after the whole sequence; a length past the end takes all
// remaining elements.
func Range(start, length int, u Update) Update {
	return Transform(func(ctx *value.Value) (*value.Value, error) {
		seq, ok := ctx.AsSequence()
		if !ok {
			return nil, &ShapeError{Op: "range", Want: "sequence", Got: ctx.Kind()}
		}
		if start < 0 || length < 0 {
			return nil, fmt.Errorf("action: range: negative window %d:%d", start, length)
		}
		window, err := Apply(value.New(seq.Slice(start, start+length)), u)
		if err != nil {
			return nil, err
		}
		wseq, ok := window.AsSequence()
		if !ok {
			return nil, &ShapeError{Op: "range update", Want: "sequence", Got: window.Kind()}
		}
		return value.New(seq.Splice(start, length, wseq)), nil
	})
}
