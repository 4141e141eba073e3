package osc

import (
	"bytes"
	"fmt"
	"math"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindFloat32
	KindString
	KindBlob
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Tag returns the OSC type tag character for the kind.
func (k Kind) Tag() byte {
	switch k {
	case KindInt32:
		return 'i'
	case KindFloat32:
		return 'f'
	case KindString:
		return 's'
	case KindBlob:
		return 'b'
	}
	return 0
}

// Value is one OSC argument: exactly one of int32, float32, string or blob.
// The zero Value is the int32 zero.
type Value struct {
	kind Kind
	num  uint32 // int32 or float32 bits
	str  string
	blob []byte
}

// Int returns an int32 Value.
func Int(v int32) Value {
	return Value{kind: KindInt32, num: uint32(v)}
}

// Float returns a float32 Value.
func Float(v float32) Value {
	return Value{kind: KindFloat32, num: math.Float32bits(v)}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Blob returns a blob Value. The slice is not copied.
func Blob(b []byte) Value {
	return Value{kind: KindBlob, blob: b}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// Tag returns the OSC type tag character for the value.
func (v Value) Tag() byte { return v.kind.Tag() }

// Int32 returns the int32 payload. ok is false for any other kind.
func (v Value) Int32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(v.num), true
}

// Float32 returns the float32 payload. ok is false for any other kind.
func (v Value) Float32() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(v.num), true
}

// AsString returns the string payload. ok is false for any other kind.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBlob returns the blob payload. ok is false for any other kind.
func (v Value) AsBlob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return v.blob, true
}

// Equal reports whether two values hold the same variant and payload.
// Blob payloads are compared byte-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBlob:
		return bytes.Equal(v.blob, o.blob)
	}
	return v.num == o.num
}

// String implements the fmt.Stringer interface.
func (v Value) String() string {
	switch v.kind {
	case KindInt32:
		return fmt.Sprintf("%d", int32(v.num))
	case KindFloat32:
		return fmt.Sprintf("%g", math.Float32frombits(v.num))
	case KindString:
		return v.str
	case KindBlob:
		return fmt.Sprintf("blob[%d]", len(v.blob))
	}
	return "invalid"
}
