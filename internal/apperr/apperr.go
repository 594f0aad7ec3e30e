// Package apperr defines the failure kinds surfaced by the appraisal core.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers that need to react to it (HTTP status, CLI exit message).
type Kind string

const (
	KindInternal        Kind = "internal"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindTooManyRequests Kind = "too_many_requests"
)

// Error is a classified failure. MissingQuestionIDs is set only for the missing-required-answers case.
type Error struct {
	Kind               Kind
	Message            string
	MissingQuestionIDs []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind, so errors.Is(err, apperr.ErrForbidden) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrTooManyRequests = &Error{Kind: KindTooManyRequests}
)

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func TooManyRequests(message string) error {
	return &Error{Kind: KindTooManyRequests, Message: message}
}

// MissingRequired is the validation failure for unanswered required questions.
// ids keeps the order the questions appear in the template.
func MissingRequired(ids []string) error {
	copied := make([]string, len(ids))
	copy(copied, ids)
	return &Error{
		Kind:               KindValidation,
		Message:            fmt.Sprintf("%d required question(s) are not answered", len(ids)),
		MissingQuestionIDs: copied,
	}
}

// As extracts the *Error from a wrapped chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// RequireCaller returns the caller id or Unauthorized when it is blank.
func RequireCaller(callerID string) (string, error) {
	if callerID == "" {
		return "", Unauthorized("sign-in is required")
	}
	return callerID, nil
}
