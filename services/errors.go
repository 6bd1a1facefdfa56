package services

import (
	"errors"
	"log"

	"masterboxer.com/project-social-blog/repository"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindInvalidArgument
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidArgument:
		return "invalid argument"
	case KindConflict:
		return "conflict"
	default:
		return "internal error"
	}
}

// Error is the typed failure every service operation returns. Message is
// safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind when target carries no message,
// so errors.Is(err, ErrNotFound) works for every not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrInternal        = &Error{Kind: KindInternal}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrConflict        = &Error{Kind: KindConflict}
)

// InternalMessage is the only text callers see for internal failures.
const InternalMessage = "Something went wrong"

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func notFound(msg string) *Error        { return newError(KindNotFound, msg) }
func unauthorized(msg string) *Error    { return newError(KindUnauthorized, msg) }
func invalidArgument(msg string) *Error { return newError(KindInvalidArgument, msg) }
func conflict(msg string) *Error        { return newError(KindConflict, msg) }

// KindOf reports the kind of err. Anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// internal logs the storage failure and hides it behind a generic message.
func internal(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	log.Printf("%s error: %v", op, err)
	return newError(KindInternal, InternalMessage)
}

// storeError translates repository sentinels, treating anything else as
// an internal failure of op.
func storeError(op string, err error, missing string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(missing)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return conflict("Creating an already existing account, try another email")
	default:
		return internal(op, err)
	}
}
