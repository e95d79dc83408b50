package service

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindBackend Kind = iota
	KindAuth
	KindNotFound
	KindOwnership
	KindInvalidState
	KindTransport
	KindValidation
)

// Error is a classified failure. Error() is the sentence shown to the user;
// the raw backend error stays reachable through Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can compare against the
// exported sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotAuthenticated = &Error{Kind: KindAuth, Message: "Please sign in to accept tasks."}
	ErrTaskNotFound     = &Error{Kind: KindNotFound, Message: "Task not found."}
	ErrOwnTask          = &Error{Kind: KindOwnership, Message: "You cannot accept your own task."}
	ErrTaskNotPosted    = &Error{Kind: KindInvalidState, Message: "This task has already been accepted or is no longer available."}
	ErrAcceptFailed     = &Error{Kind: KindBackend, Message: "Failed to accept task. Please try again."}
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation error"}
)

type classification struct {
	pattern string
	err     *Error
}

// Checked in order; the first pattern found in the backend message wins.
var acceptErrors = []classification{
	{pattern: "not_authenticated", err: ErrNotAuthenticated},
	{pattern: "task_not_found", err: ErrTaskNotFound},
	{pattern: "cannot_accept_own_task", err: ErrOwnTask},
	{pattern: "task_not_posted", err: ErrTaskNotPosted},
}

func classifyAccept(err error) *Error {
	msg := err.Error()
	for _, c := range acceptErrors {
		if strings.Contains(msg, c.pattern) {
			return &Error{Kind: c.err.Kind, Message: c.err.Message, Err: err}
		}
	}
	return &Error{Kind: ErrAcceptFailed.Kind, Message: ErrAcceptFailed.Message, Err: err}
}

// backendError keeps the backend's own message, falling back to fallback when
// it has none.
func backendError(kind Kind, err error, fallback string) *Error {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
