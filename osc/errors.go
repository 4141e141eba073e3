package osc

import "fmt"

// EncodeError reports a message that cannot be serialized, such as an empty
// or malformed address. It always indicates a caller bug, never wire state.
type EncodeError struct {
	Msg     string
	Address string
}

func (e *EncodeError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("osc: encode %q: %s", e.Address, e.Msg)
	}
	return fmt.Sprintf("osc: encode: %s", e.Msg)
}

// DecodeError reports a datagram that is not a valid OSC message: truncated
// fields, a missing or malformed type-tag string, or an unrecognized tag.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("osc: decode: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("osc: decode: %s", e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }
