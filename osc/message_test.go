package osc

import (
	"errors"
	"testing"
)

type messageTestCase struct {
	name string
	obj  *Message
	raw  []byte
}

// messageTestCases is shared between the encode, decode and round-trip tests.
var messageTestCases = []messageTestCase{
	{
		"fader float",
		NewMessage("/ch/01/mix/fader", Float(0.75)),
		[]byte{
			'/', 'c', 'h', '/', '0', '1', '/', 'm', 'i', 'x', '/', 'f', 'a', 'd', 'e', 'r', 0, 0, 0, 0,
			',', 'f', 0, 0,
			0x3f, 0x40, 0x00, 0x00,
		},
	},
	{
		"int argument",
		NewMessage("/ch/01/mix/on", Int(1)),
		[]byte{
			'/', 'c', 'h', '/', '0', '1', '/', 'm', 'i', 'x', '/', 'o', 'n', 0, 0, 0,
			',', 'i', 0, 0,
			0x00, 0x00, 0x00, 0x01,
		},
	},
	{
		"string argument",
		NewMessage("/ch/01/config/name", String("Kick")),
		[]byte{
			'/', 'c', 'h', '/', '0', '1', '/', 'c', 'o', 'n', 'f', 'i', 'g', '/', 'n', 'a', 'm', 'e', 0, 0,
			',', 's', 0, 0,
			'K', 'i', 'c', 'k', 0, 0, 0, 0,
		},
	},
	{
		"no arguments",
		NewMessage("/info"),
		[]byte{
			'/', 'i', 'n', 'f', 'o', 0, 0, 0,
			',', 0, 0, 0,
		},
	},
	{
		"blob argument",
		NewMessage("/x", Blob([]byte{1, 2, 3})),
		[]byte{
			'/', 'x', 0, 0,
			',', 'b', 0, 0,
			0x00, 0x00, 0x00, 0x03,
			0x01, 0x02, 0x03, 0x00,
		},
	},
	{
		"mixed arguments",
		NewMessage("/node", Int(-1), Float(0.5), String("st")),
		[]byte{
			'/', 'n', 'o', 'd', 'e', 0, 0, 0,
			',', 'i', 'f', 's', 0, 0, 0, 0,
			0xff, 0xff, 0xff, 0xff,
			0x3f, 0x00, 0x00, 0x00,
			's', 't', 0, 0,
		},
	},
}

func TestMessage_Encode(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(got) != string(tt.raw) {
				t.Errorf("Encode() got = % x, want % x", got, tt.raw)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.Equal(tt.obj) {
				t.Errorf("Decode() got = %v, want %v", got, tt.obj)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.obj.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.Equal(tt.obj) {
				t.Errorf("Decode(Encode(m)) = %v, want %v", got, tt.obj)
			}
		})
	}
}

func TestMessage_EncodeErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		obj  *Message
	}{
		{"empty address", NewMessage("")},
		{"no leading slash", NewMessage("ch/01/mix/fader")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.obj.Encode()
			var encErr *EncodeError
			if !errors.As(err, &encErr) {
				t.Errorf("Encode() error = %v, want *EncodeError", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		raw  []byte
	}{
		{"empty packet", []byte{}},
		{"no leading slash", []byte{'c', 'h', 0, 0, ',', 0, 0, 0}},
		{"not 4-byte aligned", []byte{'/', 'c', 'h', 0, ',', 0}},
		{"unterminated address", []byte{'/', 'a', 'b', 'c'}},
		{"type tags missing comma", []byte{'/', 'c', 'h', 0, 'i', 0, 0, 0}},
		{"unknown type tag", []byte{'/', 'c', 'h', 0, ',', 'x', 0, 0, 0, 0, 0, 0}},
		{"truncated int32", []byte{'/', 'c', 'h', 0, ',', 'i', 0, 0}},
		{"truncated float32", []byte{'/', 'c', 'h', 0, ',', 'f', 0, 0}},
		{"truncated string", []byte{'/', 'c', 'h', 0, ',', 's', 0, 0, 'a', 'b', 'c', 'd'}},
		{"truncated blob", []byte{'/', 'c', 'h', 0, ',', 'b', 0, 0, 0x00, 0x00, 0x00, 0x08}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.raw); err == nil {
				t.Errorf("Decode(% x) expected error, got nil", tt.raw)
			} else {
				var decErr *DecodeError
				if !errors.As(err, &decErr) {
					t.Errorf("Decode() error = %v, want *DecodeError", err)
				}
			}
		})
	}
}

func FuzzDecode(f *testing.F) {
	for _, tc := range messageTestCases {
		f.Add(tc.raw)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := Decode(data)
		if err != nil {
			return
		}

		dataNew, err := m.Encode()
		if err != nil {
			t.Fatalf("Encode(): err != nil on decoded message %v: %v", m, err)
		}

		m2, err := Decode(dataNew)
		if err != nil {
			t.Fatalf("Decode(): err != nil on encoded message %v: %v", m, err)
		}
		if !m.Equal(m2) {
			t.Fatalf("round trip changed message: %v != %v", m, m2)
		}
	})
}

func TestMessage_TypeTags(t *testing.T) {
	m := NewMessage("/node", Int(1), Float(2), String("x"), Blob(nil))
	if got := m.TypeTags(); got != ",ifsb" {
		t.Errorf("TypeTags() = %q, want %q", got, ",ifsb")
	}
}

func TestMessage_String(t *testing.T) {
	m := NewMessage("/ch/01/mix/on", Int(1))
	if got := m.String(); got != "/ch/01/mix/on ,i 1" {
		t.Errorf("String() = %q", got)
	}
}
