// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"errors"
	"strconv"
)

// Kind classifies a serialization failure.
type Kind uint8

const (
	_ Kind = iota
	// KindInsufficientSpace reports that the destination ran out of room.
	// It is the only retryable kind.
	KindInsufficientSpace
	// KindInvalidInput reports a caller precondition violation.
	KindInvalidInput
	// KindNotImplemented reports a missing destination capability.
	KindNotImplemented
	// KindCustom carries an opaque domain error code.
	KindCustom
	// KindIO wraps an error returned by an io.Writer backed destination.
	KindIO
)

var kindNames = [...]string{
	KindInsufficientSpace: "insufficient space",
	KindInvalidInput:      "invalid input",
	KindNotImplemented:    "not implemented",
	KindCustom:            "custom",
	KindIO:                "i/o",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrInsufficientSpace = errors.New("emit: insufficient space")
	ErrInvalidInput      = errors.New("emit: invalid input")
	ErrNotImplemented    = errors.New("emit: not implemented")
	ErrCustom            = errors.New("emit: custom error")
	ErrIO                = errors.New("emit: i/o error")
)

// Error is the failure half of a serializer outcome.
// Combinators forward it unchanged; only the growth driver interprets
// KindInsufficientSpace.
type Error struct {
	Kind Kind
	// Need is the additional capacity, in bytes, the failing write required.
	// Set for KindInsufficientSpace only.
	Need int
	// Code is the caller-defined code of a KindCustom error.
	Code   uint32
	Detail string
	Err    error
}

func (e *Error) Error() string {
	s := "emit: " + e.Kind.String()
	switch e.Kind {
	case KindInsufficientSpace:
		s += ": need " + strconv.Itoa(e.Need) + " more bytes"
	case KindCustom:
		s += " " + strconv.FormatUint(uint64(e.Code), 10)
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInsufficientSpace:
		return e.Kind == KindInsufficientSpace
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrNotImplemented:
		return e.Kind == KindNotImplemented
	case ErrCustom:
		return e.Kind == KindCustom
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// InsufficientSpace returns a retryable error asking for n more bytes.
func InsufficientSpace(n int) error {
	return &Error{Kind: KindInsufficientSpace, Need: n}
}

// InvalidInput returns a non-retryable precondition error.
func InvalidInput(detail string) error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

// NotImplemented returns an error for a destination lacking a capability.
func NotImplemented(detail string) error {
	return &Error{Kind: KindNotImplemented, Detail: detail}
}

// Custom returns an opaque domain error. The engine never inspects code.
func Custom(code uint32, detail string) error {
	return &Error{Kind: KindCustom, Code: code, Detail: detail}
}

// IOError wraps err returned by an underlying writer.
func IOError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Need reports the additional capacity requested by an insufficient-space error.
func Need(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindInsufficientSpace {
		return e.Need, true
	}
	return 0, false
}
