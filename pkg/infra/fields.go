package infra

import (
	"fmt"
	"time"
)

// FieldReader reads typed fields out of one JSON object. The first failure is
// kept and every later read returns a zero value, so constructors can read all
// fields and check Err once.
type FieldReader struct {
	registry *Registry
	path     string
	value    Value
	err      error
}

// NewFieldReader binds a reader to an object node.
func NewFieldReader(registry *Registry, path string, v Value) *FieldReader {
	if registry == nil {
		registry = defaultRegistry
	}

	return &FieldReader{registry: registry, path: path, value: v}
}

// Err returns the first failure seen by the reader.
func (r *FieldReader) Err() error {
	return r.err
}

// Path returns the location of the object being read.
func (r *FieldReader) Path() string {
	return r.path
}

// Value returns the object node being read.
func (r *FieldReader) Value() Value {
	return r.value
}

func (r *FieldReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *FieldReader) at(key string) string {
	return r.path + "." + key
}

// lookup returns a present, non-null member.
func (r *FieldReader) lookup(key string) (Value, bool) {
	if r.err != nil {
		return Null, false
	}

	v, ok := r.value.Get(key)
	if !ok || v.IsNull() {
		return Null, false
	}

	return v, true
}

func (r *FieldReader) mismatch(key string, expected Kind, v Value) {
	r.fail(&DecodeError{Path: r.at(key), Expected: expected.String(), Actual: v.Kind().String()})
}

func (r *FieldReader) missing(key string, expected Kind) {
	r.fail(&DecodeError{Path: r.at(key), Expected: expected.String()})
}

// ID reads the required "id" member.
func (r *FieldReader) ID() string {
	return r.String("id")
}

// String reads a required string member.
func (r *FieldReader) String(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		if r.err == nil {
			r.missing(key, KindString)
		}

		return ""
	}

	s, err := v.AsString()
	if err != nil {
		r.mismatch(key, KindString, v)
	}

	return s
}

// OptString reads an optional string member.
func (r *FieldReader) OptString(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		return ""
	}

	s, err := v.AsString()
	if err != nil {
		r.mismatch(key, KindString, v)
	}

	return s
}

// Masked reads an optional string member, blanking sentinel-masked values.
func (r *FieldReader) Masked(key string) string {
	return Unmask(r.OptString(key))
}

// Int64 reads a required integer member.
func (r *FieldReader) Int64(key string) int64 {
	v, ok := r.lookup(key)
	if !ok {
		if r.err == nil {
			r.missing(key, KindNumber)
		}

		return 0
	}

	return r.int64Of(key, v)
}

// OptInt64 reads an optional integer member.
func (r *FieldReader) OptInt64(key string) int64 {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}

	return r.int64Of(key, v)
}

func (r *FieldReader) int64Of(key string, v Value) int64 {
	if v.Kind() != KindNumber {
		r.mismatch(key, KindNumber, v)

		return 0
	}

	n, err := v.AsInt64()
	if err != nil {
		r.fail(&DecodeError{Path: r.at(key), Expected: "integer", Actual: "number " + v.text})
	}

	return n
}

// OptBool reads an optional bool member.
func (r *FieldReader) OptBool(key string) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}

	b, err := v.AsBool()
	if err != nil {
		r.mismatch(key, KindBool, v)
	}

	return b
}

// Strings reads an optional list of strings. Absent lists read as empty.
func (r *FieldReader) Strings(key string) []string {
	out := []string{}

	for i, item := range r.Objects(key) {
		s, err := item.AsString()
		if err != nil {
			r.fail(&DecodeError{Path: fmt.Sprintf("%s[%d]", r.at(key), i), Expected: KindString.String(), Actual: item.Kind().String()})

			return []string{}
		}

		out = append(out, s)
	}

	return out
}

// OptDateTime reads an optional timestamp. Absent, empty and masked values read as nil.
func (r *FieldReader) OptDateTime(key string) *time.Time {
	raw := r.OptString(key)
	if r.err != nil {
		return nil
	}

	t, err := ParseDateTime(raw)
	if err != nil {
		r.fail(fmt.Errorf("%s: %w", r.at(key), err))

		return nil
	}

	return t
}

// DateTime reads a timestamp, returning the zero time when it is absent or masked.
func (r *FieldReader) DateTime(key string) time.Time {
	t := r.OptDateTime(key)
	if t == nil {
		return time.Time{}
	}

	return *t
}

// Raw returns the member as is, or Null when absent.
func (r *FieldReader) Raw(key string) Value {
	v, _ := r.lookup(key)

	return v
}

// Object reads an optional object member, returning Null when absent.
func (r *FieldReader) Object(key string) Value {
	v, ok := r.lookup(key)
	if !ok {
		return Null
	}

	if v.Kind() != KindObject {
		r.mismatch(key, KindObject, v)

		return Null
	}

	return v
}

// Objects reads an optional array member. Absent arrays read as empty.
func (r *FieldReader) Objects(key string) []Value {
	v, ok := r.lookup(key)
	if !ok {
		return []Value{}
	}

	items, err := v.AsArray()
	if err != nil {
		r.mismatch(key, KindArray, v)

		return []Value{}
	}

	return items
}

// Resource dispatches an optional nested object to the constructor registered
// under name. Absent members read as nil.
func (r *FieldReader) Resource(key, name string) Resource {
	v := r.Object(key)
	if v.IsNull() || r.err != nil {
		return nil
	}

	res, err := r.registry.constructAt(name, r.at(key), v)
	if err != nil {
		r.fail(err)

		return nil
	}

	return res
}

// Resources dispatches every element of an optional array member.
func (r *FieldReader) Resources(key, name string) []Resource {
	items := r.Objects(key)
	out := make([]Resource, 0, len(items))

	for i, item := range items {
		res, err := r.registry.constructAt(name, fmt.Sprintf("%s[%d]", r.at(key), i), item)
		if err != nil {
			r.fail(err)

			return []Resource{}
		}

		out = append(out, res)
	}

	return out
}

// ResourceOf is Resource with the result asserted to T.
func ResourceOf[T Resource](r *FieldReader, key, name string) T {
	var zero T

	res := r.Resource(key, name)
	if res == nil {
		return zero
	}

	typed, ok := res.(T)
	if !ok {
		r.fail(&DecodeError{Path: r.at(key), Expected: name, Actual: fmt.Sprintf("%T", res)})

		return zero
	}

	return typed
}

// ResourcesOf is Resources with every element asserted to T.
func ResourcesOf[T Resource](r *FieldReader, key, name string) []T {
	all := r.Resources(key, name)
	out := make([]T, 0, len(all))

	for i, res := range all {
		typed, ok := res.(T)
		if !ok {
			r.fail(&DecodeError{Path: fmt.Sprintf("%s[%d]", r.at(key), i), Expected: name, Actual: fmt.Sprintf("%T", res)})

			return []T{}
		}

		out = append(out, typed)
	}

	return out
}
