// Package osc implements the Open Sound Control 1.0 binary message format
// as consumed and produced by digital mixing consoles.
//
// This implementation is based on the Open Sound Control 1.0 Specification
// (http://opensoundcontrol.org/spec-1_0.html), restricted to the four
// argument types mixing consoles actually use on the wire:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte)
//
// A Message consists of a slash-delimited address pattern and zero or more
// typed arguments. Arguments are carried as the tagged Value variant rather
// than interface{} so that callers narrow to the concrete type explicitly.
//
// Encoding example:
//
//	m := osc.NewMessage("/ch/01/mix/fader", osc.Float(0.75))
//	data, err := m.Encode()
//
// Decoding example:
//
//	m, err := osc.Decode(data)
//	f, ok := m.Arguments[0].Float32()
package osc
