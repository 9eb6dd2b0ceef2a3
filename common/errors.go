package common

import (
	"errors"
	"fmt"
)

// authentication failures
var ErrUnknownAccount = errors.New("unknown account")
var ErrIncorrectCredentials = errors.New("incorrect credentials")
var ErrLockedAccount = errors.New("locked account")
var ErrAuthentication = errors.New("authentication error")

var ErrInvalidInput = errors.New("bad input")
var ErrAlreadyAuthenticated = errors.New("subject already authenticated")
var ErrUnauthorized = errors.New("unauthorized")

// session errors
var ErrSessionExpired = errors.New("session expired")
var ErrAttributeNotFound = errors.New("session attribute not found")

// FailureKind classifies the outcome of an authentication attempt.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureUnknownAccount
	FailureIncorrectCredentials
	FailureLockedAccount
	FailureAuthentication
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureUnknownAccount:
		return "unknown_account"
	case FailureIncorrectCredentials:
		return "incorrect_credentials"
	case FailureLockedAccount:
		return "locked_account"
	default:
		return "authentication_error"
	}
}

// Sentinel returns the package-level error matching the kind, nil for FailureNone.
func (k FailureKind) Sentinel() error {
	switch k {
	case FailureNone:
		return nil
	case FailureUnknownAccount:
		return ErrUnknownAccount
	case FailureIncorrectCredentials:
		return ErrIncorrectCredentials
	case FailureLockedAccount:
		return ErrLockedAccount
	default:
		return ErrAuthentication
	}
}

// AuthError is the failed variant of an authentication result.
type AuthError struct {
	Kind    FailureKind
	Subject SubjectID
	Err     error
}

func NewAuthError(kind FailureKind, subject SubjectID, cause error) *AuthError {
	if kind == FailureNone {
		kind = FailureAuthentication
	}
	return &AuthError{Kind: kind, Subject: subject, Err: cause}
}

func (e *AuthError) Error() string {
	msg := e.Kind.Sentinel().Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.Err != nil && !errors.Is(e.Err, e.Kind.Sentinel()) {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

func (e *AuthError) Unwrap() error { return e.Err }

// FailureOf maps err onto the failure taxonomy. A nil error is FailureNone and
// anything unclassified is FailureAuthentication.
func FailureOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	switch {
	case errors.Is(err, ErrUnknownAccount):
		return FailureUnknownAccount
	case errors.Is(err, ErrIncorrectCredentials):
		return FailureIncorrectCredentials
	case errors.Is(err, ErrLockedAccount):
		return FailureLockedAccount
	default:
		return FailureAuthentication
	}
}
