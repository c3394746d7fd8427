package infra

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is an untyped JSON node. Numbers keep their literal text and object
// members keep the order in which the server sent them.
type Value struct {
	kind    Kind
	boolean bool
	text    string
	items   []Value
	keys    []string
	members map[string]Value
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// StringValue builds a string node.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// NumberValue builds a number node from its literal text.
func NumberValue(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// BoolValue builds a bool node.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// ArrayValue builds an array node.
func ArrayValue(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// ObjectValue builds an object node from parallel key and value slices.
func ObjectValue(keys []string, values []Value) Value {
	obj := Value{kind: KindObject, members: make(map[string]Value, len(keys))}
	for i, key := range keys {
		obj.set(key, values[i])
	}

	return obj
}

// ParseValue decodes a complete JSON document.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("parsing response body: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("parsing response body: %w", ErrTrailingData)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := Value{kind: KindArray, items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				arr.items = append(arr.items, item)
			}

			_, err := dec.Token()

			return arr, err
		case '{':
			obj := Value{kind: KindObject, members: map[string]Value{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}

				key, _ := keyTok.(string)

				member, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				obj.set(key, member)
			}

			_, err := dec.Token()

			return obj, err
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func (v *Value) set(key string, member Value) {
	if _, exists := v.members[key]; !exists {
		v.keys = append(v.keys, key)
	}

	v.members[key] = member
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is JSON null (or the zero Value).
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) mismatch(path string, expected Kind) error {
	return &DecodeError{Path: path, Expected: expected.String(), Actual: v.kind.String()}
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch("$", KindString)
	}

	return v.text, nil
}

// AsInt64 returns the integer held by v. Fractional or out of range numbers fail.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch("$", KindNumber)
	}

	n, err := strconv.ParseInt(v.text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Path: "$", Expected: "integer", Actual: "number " + v.text}
	}

	return n, nil
}

// AsNumber returns the literal text of a number node.
func (v Value) AsNumber() (json.Number, error) {
	if v.kind != KindNumber {
		return "", v.mismatch("$", KindNumber)
	}

	return json.Number(v.text), nil
}

// AsBool returns the bool held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch("$", KindBool)
	}

	return v.boolean, nil
}

// AsArray returns the elements of an array node.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch("$", KindArray)
	}

	return v.items, nil
}

// AsObject returns the members of an object node.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, v.mismatch("$", KindObject)
	}

	return v.members, nil
}

// Get returns the member named key and whether it exists. Non-objects have no members.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null, false
	}

	member, ok := v.members[key]

	return member, ok
}

// Keys returns object member names in wire order.
func (v Value) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.keys)
	default:
		return 0
	}
}

// Interface converts v into plain Go values (map[string]any, []any, json.Number, ...).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return json.Number(v.text)
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, key := range v.keys {
			out[key] = v.members[key].Interface()
		}

		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler, keeping member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.encode(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		buf.WriteString(v.text)
	case KindString:
		encoded, err := json.Marshal(v.text)
		if err != nil {
			return err
		}

		buf.Write(encoded)
	case KindArray:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')

		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			encoded, err := json.Marshal(key)
			if err != nil {
				return err
			}

			buf.Write(encoded)
			buf.WriteByte(':')

			err = v.members[key].encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
