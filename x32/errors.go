// Package x32 implements a client engine for controlling a Behringer X32
// family mixing console over its OSC/UDP remote protocol.
package x32

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for connection lifecycle.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrNotConnected indicates an operation was attempted while disconnected.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates Connect was called on a live connection.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrConnClosed rejects requests that were still pending when the
	// connection was torn down.
	ErrConnClosed = errors.New("connection closed")
)

// TimeoutError indicates no correlated reply arrived within the deadline.
// The caller may retry; the engine never retries on its own.
type TimeoutError struct {
	Address string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("x32: no reply for %s within %s", e.Address, e.Timeout)
}

// RangeError indicates a caller-supplied index or numeric value outside its
// documented domain. Nothing is sent on the wire.
type RangeError struct {
	What     string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("x32: %s %d out of range [%d, %d]", e.What, e.Value, e.Min, e.Max)
}

// ValidationError indicates a caller-supplied value that cannot be parsed or
// converted. Nothing is sent on the wire.
type ValidationError struct {
	What  string
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("x32: invalid %s: %q", e.What, e.Input)
}

// ResponseError indicates a reply was received but its argument count or
// types do not match the documented shape for the address. Treated as a
// firmware incompatibility, never retried automatically.
type ResponseError struct {
	Address string
	Want    string
	Got     string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("x32: unexpected reply for %s: want %s, got %s", e.Address, e.Want, e.Got)
}

// HardwareError indicates a transport-level send or receive failure. The
// connection state is left as-is; the caller should check Status or
// reconnect.
type HardwareError struct {
	Op  string
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("x32: %s failed: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error { return e.Err }
