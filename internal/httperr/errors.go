// Package httperr holds the error types shared by the parser, the response
// writer and the connection loop.
package httperr

import (
	"fmt"
)

// ParseErrorKind classifies a request that could not be parsed.
type ParseErrorKind int

const (
	MalformedRequestLine ParseErrorKind = iota
	UnknownMethod
	MissingHeaderSeparator
	InvalidHeaderName
	InvalidContentLength
	TruncatedBody
	UnsupportedTransferEncoding
)

func (k ParseErrorKind) Error() string {
	switch k {
	case MalformedRequestLine:
		return "malformed request line"
	case UnknownMethod:
		return "unknown method"
	case MissingHeaderSeparator:
		return "missing header separator"
	case InvalidHeaderName:
		return "invalid header name"
	case InvalidContentLength:
		return "invalid content length"
	case TruncatedBody:
		return "truncated body"
	case UnsupportedTransferEncoding:
		return "unsupported transfer encoding"
	default:
		return fmt.Sprintf("unknown parse error: %d", int(k))
	}
}

// ParseError is returned by the request parser. errors.Is(err, kind) reports
// whether err is a ParseError of that kind.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
	Err    error
}

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind ParseErrorKind, detail string, underlying error) *ParseError {
	return &ParseError{
		Kind:   kind,
		Detail: detail,
		Err:    underlying,
	}
}

func (e *ParseError) Error() string {
	msg := "parse error: " + e.Kind.Error()
	if e.Detail != "" {
		msg += fmt.Sprintf(": %q", e.Detail)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (underlying: %v)", e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	k, ok := target.(ParseErrorKind)
	return ok && k == e.Kind
}

// DispatchError reports a handler that failed while serving a request.
type DispatchError struct {
	Method string
	Path   string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("handler failed for %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// IOError wraps a read or write failure on a stream.
type IOError struct {
	Op  string
	Err error
}

// NewIOError creates an IOError for the named operation.
func NewIOError(op string, underlying error) *IOError {
	return &IOError{
		Op:  op,
		Err: underlying,
	}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
