// Package serrors defines the semantic error taxonomy used across the
// checker. Kinds are comparable sentinels; the Error wrapper attaches a kind
// plus an optional cause and message while staying compatible with
// errors.Is/As.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. The name is also the classification string reported to callers, so it
// must stay stable.
func NewKind(name string) Kind { return kind{s: name} }

// Error kinds for credential checking. The first group is the per-credential
// classification surface: these names appear verbatim in invalid records.
var (
	// ErrInvalidFormat indicates the credential failed the local structural
	// check and was rejected before any network call.
	ErrInvalidFormat = NewKind("InvalidFormat")
	// ErrUnauthorized indicates the provider rejected the credential (401).
	ErrUnauthorized = NewKind("Unauthorized")
	// ErrForbidden indicates the provider kept refusing even after a fresh
	// anti-forgery token (403 after retry).
	ErrForbidden = NewKind("Forbidden")
	// ErrRateLimited indicates the provider throttled us beyond the retry budget.
	ErrRateLimited = NewKind("RateLimited")
	// ErrNetwork indicates a timeout or connection failure that survived retries.
	ErrNetwork = NewKind("NetworkError")
	// ErrMalformedResponse indicates a 2xx response missing required fields.
	ErrMalformedResponse = NewKind("MalformedResponse")
	// ErrNoValidCredentials indicates a batch where nothing survived normalization.
	ErrNoValidCredentials = NewKind("NoValidCredentials")
	// ErrCancelled indicates the batch was cancelled before this credential
	// was dispatched.
	ErrCancelled = NewKind("Cancelled")

	// ErrBadRequest indicates a structurally invalid request (empty or
	// oversized batch, undecodable body).
	ErrBadRequest = NewKind("BadRequest")
	// ErrInternal indicates an internal failure.
	ErrInternal = NewKind("Internal")
)

// classifiable lists the kinds that may appear as a per-credential
// classification, in match order.
var classifiable = []Kind{ //nolint: gochecknoglobals
	ErrInvalidFormat,
	ErrUnauthorized,
	ErrForbidden,
	ErrRateLimited,
	ErrNetwork,
	ErrMalformedResponse,
	ErrNoValidCredentials,
	ErrCancelled,
	ErrBadRequest,
	ErrInternal,
}

// KindOf returns the semantic kind matched by err, if any.
func KindOf(err error) (Kind, bool) {
	for _, k := range classifiable {
		if errors.Is(err, k) {
			return k, true
		}
	}

	return nil, false
}

// Classification returns the stable classification string for err. Errors
// without a semantic kind (raw transport failures and the like) classify as
// NetworkError.
func Classification(err error) string {
	if k, ok := KindOf(err); ok {
		return k.Error()
	}

	return ErrNetwork.Error()
}

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped error and an optional arbitrary message. It fully supports
// errors.Is/errors.As and unwrapping.
//
// Matching semantics:
//   - errors.Is(err, target) will match if target matches either the kind
//     sentinel or the wrapped error.
//   - errors.As(err, target) will succeed for either the kind sentinel or the
//     wrapped error.
type Error struct {
	kind Kind  // semantic kind sentinel
	err  error // wrapped error (optional)
	msg  string
}

// With constructs a new semantic error with the given kind and an arbitrary
// human-readable message. Use Wrap if you also want to wrap a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wraps the provided
// cause (err) and allows adding an arbitrary message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind without extra
// message or concrete cause.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface. Formatting: "<msg>: <err>" when both
// are set, otherwise whichever is present, falling back to the kind name.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped error, enabling errors.Unwrap/Is/As to traverse
// the underlying cause chain.
func (e *Error) Unwrap() error { return e.err }

// Is enables matching against either the semantic kind sentinel or the wrapped
// error in the chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the semantic kind sentinel or the
// wrapped error in the chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the arbitrary message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }
