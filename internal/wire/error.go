// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As so callers can check against a specific kind without string
// matching.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// These constants are used to identify a specific MessageError.
const (
	// ErrNonCanonicalVarInt is returned when a variable length integer is
	// not minimally encoded.
	ErrNonCanonicalVarInt = ErrorKind("ErrNonCanonicalVarInt")

	// ErrVarStringTooLong is returned when a variable length string
	// exceeds the allowed maximum.
	ErrVarStringTooLong = ErrorKind("ErrVarStringTooLong")

	// ErrVarBytesTooLong is returned when a variable length byte slice
	// exceeds the allowed maximum.
	ErrVarBytesTooLong = ErrorKind("ErrVarBytesTooLong")

	// ErrCmdTooLong is returned when a command exceeds the fixed command
	// field size.
	ErrCmdTooLong = ErrorKind("ErrCmdTooLong")

	// ErrPayloadTooLarge is returned when a payload exceeds the maximum
	// allowed message payload.
	ErrPayloadTooLarge = ErrorKind("ErrPayloadTooLarge")

	// ErrWrongNetwork is returned when a message's magic does not match
	// the expected network.
	ErrWrongNetwork = ErrorKind("ErrWrongNetwork")

	// ErrMalformedCmd is returned when a command contains non-ASCII or
	// otherwise malformed bytes.
	ErrMalformedCmd = ErrorKind("ErrMalformedCmd")

	// ErrUnknownCmd is returned by makeEmptyMessage for a command with no
	// known concrete type; this is not fatal, the frame is still parsed.
	ErrUnknownCmd = ErrorKind("ErrUnknownCmd")

	// ErrPayloadChecksum is returned when a computed payload checksum
	// does not match the one in the header.
	ErrPayloadChecksum = ErrorKind("ErrPayloadChecksum")

	// ErrInvalidMsg is returned for a structurally invalid message body.
	ErrInvalidMsg = ErrorKind("ErrInvalidMsg")

	// ErrUserAgentTooLong is returned when a version message's user agent
	// exceeds the allowed maximum.
	ErrUserAgentTooLong = ErrorKind("ErrUserAgentTooLong")

	// ErrTooManyAddrs is returned when an addr message's address count
	// exceeds the allowed maximum.
	ErrTooManyAddrs = ErrorKind("ErrTooManyAddrs")

	// ErrTooManyLocators is returned when a getheaders/getblocks message's
	// locator hash count exceeds the allowed maximum.
	ErrTooManyLocators = ErrorKind("ErrTooManyLocators")

	// ErrTooManyVectors is returned when an inv/getdata message's
	// inventory vector count exceeds the allowed maximum.
	ErrTooManyVectors = ErrorKind("ErrTooManyVectors")

	// ErrTooManyHeaders is returned when a headers message's header count
	// exceeds the allowed maximum.
	ErrTooManyHeaders = ErrorKind("ErrTooManyHeaders")
)

// MessageError identifies an error related to wire messages.  It has full
// support for errors.Is and errors.As so the caller can check against the
// underlying ErrorKind.
type MessageError struct {
	Func        string
	Err         error
	Description string
}

// Error satisfies the error interface and prints a human-readable error.
func (e MessageError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e MessageError) Unwrap() error {
	return e.Err
}

// messageError creates a MessageError given a set of arguments.
func messageError(fn string, kind ErrorKind, desc string) MessageError {
	return MessageError{Func: fn, Err: kind, Description: desc}
}
