package value

import "sort"

// Record is an unordered mapping from string keys to Values. Records are
// immutable: mutating operations return a new Record that shares the
// untouched child Values with the original.
type Record struct {
	fields map[string]*Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: map[string]*Value{}}
}

// RecordFrom builds a record from a native Go map, converting each entry
// with New.
func RecordFrom(m map[string]any) *Record {
	fields := make(map[string]*Value, len(m))
	for key, val := range m {
		fields[key] = New(val)
	}
	return &Record{fields: fields}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Find returns the value for the key and whether the key exists.
func (r *Record) Find(key string) (*Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// At returns the value for the key, or Absent if the key does not exist.
func (r *Record) At(key string) *Value {
	if v, ok := r.fields[key]; ok {
		return v
	}
	return Absent
}

// Assoc returns a new record with key bound to val. The receiver is
// unchanged; all other fields are shared by reference.
func (r *Record) Assoc(key string, val *Value) *Record {
	fields := make(map[string]*Value, len(r.fields)+1)
	for k, v := range r.fields {
		fields[k] = v
	}
	fields[key] = val
	return &Record{fields: fields}
}

// Without returns a new record with key removed. If the key is not present
// the receiver is returned unchanged.
func (r *Record) Without(key string) *Record {
	if _, ok := r.fields[key]; !ok {
		return r
	}
	fields := make(map[string]*Value, len(r.fields)-1)
	for k, v := range r.fields {
		if k != key {
			fields[k] = v
		}
	}
	return &Record{fields: fields}
}

// Merge returns a new record holding the receiver's fields overlaid by the
// fields of other. Where keys collide, other's value wins; fields present
// only in the receiver are carried over by reference.
func (r *Record) Merge(other *Record) *Record {
	fields := make(map[string]*Value, len(r.fields)+other.Len())
	for k, v := range r.fields {
		fields[k] = v
	}
	for k, v := range other.fields {
		fields[k] = v
	}
	return &Record{fields: fields}
}

// Range iterates over the record's fields in unspecified order, calling fn
// for each. Iteration stops early if fn returns false.
func (r *Record) Range(fn func(key string, v *Value) bool) {
	for k, v := range r.fields {
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns the record's keys in sorted order, for deterministic output.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
