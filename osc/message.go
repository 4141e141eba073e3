package osc

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more typed arguments.
type Message struct {
	Address   string
	Arguments []Value
}

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...Value) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...Value) {
	m.Arguments = append(m.Arguments, args...)
}

// TypeTags returns the type tag string, e.g. ",if" for an int32 followed by
// a float32.
func (m *Message) TypeTags() string {
	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, a := range m.Arguments {
		tags = append(tags, a.Tag())
	}
	return string(tags)
}

// Equal reports whether two messages have the same address and arguments.
func (m *Message) Equal(o *Message) bool {
	if m.Address != o.Address || len(m.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range m.Arguments {
		if !m.Arguments[i].Equal(o.Arguments[i]) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Address)
	if len(m.Arguments) == 0 {
		return b.String()
	}

	b.WriteByte(' ')
	b.WriteString(m.TypeTags())
	for _, a := range m.Arguments {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

// Encode serializes the OSC message to a byte buffer. The byte buffer
// has the following format:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func (m *Message) Encode() ([]byte, error) {
	if m.Address == "" {
		return nil, &EncodeError{Msg: "empty address"}
	}
	if m.Address[0] != '/' {
		return nil, &EncodeError{Msg: "address must start with '/'", Address: m.Address}
	}

	data := new(bytes.Buffer)
	writePaddedString(m.Address, data)
	writePaddedString(m.TypeTags(), data)

	for _, a := range m.Arguments {
		switch a.kind {
		case KindInt32, KindFloat32:
			var buf [bit32Size]byte
			binary.BigEndian.PutUint32(buf[:], a.num)
			data.Write(buf[:])
		case KindString:
			writePaddedString(a.str, data)
		case KindBlob:
			writeBlob(a.blob, data)
		default:
			return nil, &EncodeError{Msg: "unsupported argument kind", Address: m.Address}
		}
	}

	if data.Len() > MaxPacketSize {
		return nil, &EncodeError{Msg: "packet too large", Address: m.Address}
	}
	return data.Bytes(), nil
}

// Decode parses a byte buffer into an OSC message. The decoder accepts only
// the type tags 'i', 'f', 's' and 'b'; any other tag is an error because the
// argument's byte width would be unknown.
func Decode(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Msg: "empty packet"}
	}
	if data[0] != '/' {
		return nil, &DecodeError{Msg: "address must start with '/'"}
	}
	if len(data)%bit32Size != 0 {
		return nil, &DecodeError{Msg: "packet length not a multiple of 4"}
	}

	b := bytes.NewBuffer(data)

	addr, _, err := readPaddedString(b)
	if err != nil {
		return nil, &DecodeError{Msg: "unterminated address", Err: err}
	}

	m := &Message{Address: addr}
	if err := m.decodeArguments(b); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeArguments reads the type tag string and one argument per tag.
func (m *Message) decodeArguments(b *bytes.Buffer) error {
	if b.Len() == 0 {
		// An address with no type tag string carries no arguments.
		return nil
	}

	tags, _, err := readPaddedString(b)
	if err != nil {
		return &DecodeError{Msg: "unterminated type tag string", Err: err}
	}
	if len(tags) == 0 || tags[0] != ',' {
		return &DecodeError{Msg: "type tag string must start with ','"}
	}

	m.Arguments = make([]Value, 0, len(tags)-1)
	for _, c := range tags[1:] {
		switch c {
		case 'i':
			if b.Len() < bit32Size {
				return &DecodeError{Msg: "truncated int32 argument", Err: io.ErrUnexpectedEOF}
			}
			m.Arguments = append(m.Arguments, Int(int32(binary.BigEndian.Uint32(b.Next(bit32Size)))))

		case 'f':
			if b.Len() < bit32Size {
				return &DecodeError{Msg: "truncated float32 argument", Err: io.ErrUnexpectedEOF}
			}
			m.Arguments = append(m.Arguments, Float(math.Float32frombits(binary.BigEndian.Uint32(b.Next(bit32Size)))))

		case 's':
			str, _, err := readPaddedString(b)
			if err != nil {
				return &DecodeError{Msg: "truncated string argument", Err: err}
			}
			m.Arguments = append(m.Arguments, String(str))

		case 'b':
			blob, err := readBlob(b)
			if err != nil {
				return &DecodeError{Msg: "truncated blob argument", Err: err}
			}
			m.Arguments = append(m.Arguments, Blob(blob))

		default:
			return &DecodeError{Msg: "unsupported type tag '" + string(c) + "'"}
		}
	}
	return nil
}
