package search

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
	ErrDecode  = errors.New("decode error")
)

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// NetworkError marks err as a fetch failure.
func NetworkError(err error) error {
	return errors.WithStack(&kindError{kind: ErrNetwork, cause: err})
}

// ParseError marks err as a document parsing failure.
func ParseError(err error) error {
	return errors.WithStack(&kindError{kind: ErrParse, cause: err})
}

// DecodeError reports an element whose embedded JSON could not be decoded.
type DecodeError struct {
	Index     int
	Attribute string
	Value     string
	Err       error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("element #%d: missing attribute '%s'", e.Index, e.Attribute)
	}

	return fmt.Sprintf("element #%d: could not decode attribute '%s': %s", e.Index, e.Attribute, e.Err)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodePolicy controls what happens when an element fails to decode.
type DecodePolicy int

const (
	// DecodeAbort fails the whole run on the first malformed element.
	DecodeAbort DecodePolicy = iota
	// DecodeSkip drops malformed elements and reports them alongside the results.
	DecodeSkip
)

func (p DecodePolicy) String() string {
	switch p {
	case DecodeAbort:
		return "abort"
	case DecodeSkip:
		return "skip"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", int(p))
	}
}
