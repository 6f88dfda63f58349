package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure so callers can choose the right
// recovery path: transport and HTTP failures are retryable by the user,
// parse/schema failures mean the model returned an unusable payload.
type Kind int

const (
	// KindTransport is a network-level failure reaching the service.
	KindTransport Kind = iota
	// KindTimeout is a request that exceeded the configured deadline.
	KindTimeout
	// KindHTTPStatus is a non-2xx response; Status carries the code.
	KindHTTPStatus
	// KindParse means the response text was not valid JSON after
	// normalization.
	KindParse
	// KindSchema means the response parsed but had the wrong shape.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindParse:
		return "parse"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Error is a classified generation failure.
type Error struct {
	Kind   Kind
	Status int // set for KindHTTPStatus
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "generation failed"
	}
	if e.Kind == KindHTTPStatus {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the classification from err, if it is a generation
// error.
func KindOf(err error) (Kind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a generation error of the given kind.
func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// ErrInFlight is returned when a duplicate request is triggered while an
// identical one is still outstanding. The in-flight guard is a
// correctness requirement: rapid repeated triggers must not fan out into
// concurrent generation calls.
var ErrInFlight = errors.New("request already in flight")
