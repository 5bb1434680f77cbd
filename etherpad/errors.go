package etherpad

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindInvalidArgument covers bad construction input, unsupported verbs and
	// server-side parameter, method or API key rejections.
	KindInvalidArgument Kind = iota + 1
	// KindServer means the server reported an internal failure.
	KindServer
	// KindProtocol means the response could not be understood.
	KindProtocol
	// KindTransport means no response was obtained from the server.
	KindTransport
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindServer:
		return "server error"
	case KindProtocol:
		return "protocol error"
	case KindTransport:
		return "transport error"
	default:
		return "unknown error"
	}
}

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	// ErrInvalidArgument indicates rejected input, locally or by the server
	ErrInvalidArgument = errors.New("etherpad: invalid argument")
	// ErrServer indicates an internal server failure
	ErrServer = errors.New("etherpad: server error")
	// ErrProtocol indicates a response the client does not understand
	ErrProtocol = errors.New("etherpad: protocol error")
	// ErrTransport indicates a network or TLS failure
	ErrTransport = errors.New("etherpad: transport error")
)

// Error is returned by every failing Client call.
type Error struct {
	Kind Kind
	// Method is the API method name, empty for construction errors.
	Method string
	// Code is the envelope code, or -1 when no envelope was decoded.
	Code int
	// Message is the server's message or a local description.
	Message string
	// Body holds the raw response body for protocol errors.
	Body string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := "etherpad " + e.Kind.String()
	if e.Method != "" {
		msg += " in " + e.Method
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Kind == KindProtocol {
		if e.Body != "" {
			msg += fmt.Sprintf(" (body: %q)", e.Body)
		}
		msg += "; check that the client and server API versions are compatible"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrServer:
		return e.Kind == KindServer
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// IsInvalidArgument checks if err is an invalid argument failure
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsServerError checks if err is a server-reported internal failure
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsProtocolError checks if err is a protocol mismatch
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsTransportError checks if err is a network or TLS failure
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalidArgument(method, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Method: method, Code: -1, Message: fmt.Sprintf(format, args...)}
}

func protocolError(method, message, body string, err error) *Error {
	return &Error{Kind: KindProtocol, Method: method, Code: -1, Message: message, Body: body, Err: err}
}

func transportError(method string, err error) *Error {
	return &Error{Kind: KindTransport, Method: method, Code: -1, Err: err}
}
