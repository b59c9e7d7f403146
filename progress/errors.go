package progress

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

type Kind int

const (
	AuthError Kind = iota + 1
	FetchError
	TransformError
	WriteError
)

func (k Kind) String() string {
	switch k {
	case AuthError:
		return "authorisation error"
	case FetchError:
		return "fetch error"
	case TransformError:
		return "transform error"
	case WriteError:
		return "write error"
	default:
		return "error"
	}
}

// Error records which phase of a sync failed.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (%v)", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind so that callers can test with
// errors.Is(err, &Error{Kind: FetchError}).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Err == nil && t.Kind == e.Kind
	}

	return false
}

// Wrap records the failed phase. Google API errors with HTTP 401/403 are
// reported as authorisation errors whichever phase they occurred in.
func Wrap(kind Kind, err error) *Error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
		kind = AuthError
	}

	return &Error{
		Kind: kind,
		Err:  err,
	}
}
