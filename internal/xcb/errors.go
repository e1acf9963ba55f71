package xcb

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Connection-open failures, one per documented connection closure code.
var (
	ErrConnectionFailed      = errors.New("connection failed")
	ErrUnsupportedExtension  = errors.New("extension not supported")
	ErrInsufficientMemory    = errors.New("insufficient memory")
	ErrRequestLengthExceeded = errors.New("maximum request length exceeded")
	ErrDisplayParse          = errors.New("failed to parse display string")
	ErrInvalidScreen         = errors.New("no screen matching the display")
)

// ErrConnectionClosed reports that the server closed the connection while we
// were waiting for an event.
var ErrConnectionClosed = errors.New("connection with X server closed")

// ErrBadEvent reports an inbound event that could not be decoded.
var ErrBadEvent = errors.New("malformed event")

// Connection closure codes from the XCB handshake.
const (
	connError uint32 = iota + 1
	connClosedExtNotSupported
	connClosedMemInsufficient
	connClosedReqLenExceed
	connClosedParseErr
	connClosedInvalidScreen
)

// UnknownError carries a protocol error code that has no more specific
// mapping.
type UnknownError struct {
	Code uint32
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error (code %d)", e.Code)
}

// ScreenNotFoundError reports a screen index past the end of the setup
// block's screen list.
type ScreenNotFoundError struct {
	Screen int
}

func (e *ScreenNotFoundError) Error() string {
	return fmt.Sprintf("screen %d not found", e.Screen)
}

// closeError maps a connection closure code to its error. Code 0 means the
// connection is healthy.
func closeError(code uint32) error {
	switch code {
	case 0:
		return nil
	case connError:
		return ErrConnectionFailed
	case connClosedExtNotSupported:
		return ErrUnsupportedExtension
	case connClosedMemInsufficient:
		return ErrInsufficientMemory
	case connClosedReqLenExceed:
		return ErrRequestLengthExceeded
	case connClosedParseErr:
		return ErrDisplayParse
	case connClosedInvalidScreen:
		return ErrInvalidScreen
	default:
		return &UnknownError{Code: code}
	}
}

// openError classifies a connection-open failure from the protocol library
// into the closure-code taxonomy via closeError. The pure-Go library
// surfaces two failure classes at connect time: socket errors, and
// display-string parse errors ("bad display string", "empty display
// string"). Anything else is lifted into the generic connection-failed
// closure rather than returned raw.
func openError(err error) error {
	code := connError
	var op *net.OpError
	if !errors.As(err, &op) && strings.Contains(err.Error(), "display") {
		code = connClosedParseErr
	}
	return fmt.Errorf("%w: %v", closeError(code), err)
}
