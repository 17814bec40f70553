package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession indicates an authenticated call was attempted while
	// signed out. No request is issued.
	ErrNoSession = errors.New("not logged in")

	// ErrAuthExpired indicates the server rejected the token (or the token
	// is known-expired). The session has already been invalidated.
	ErrAuthExpired = errors.New("session expired, please log in again")

	// ErrForbidden indicates the signed-in user lacks permission for the
	// action. The session is left intact.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrNotFound indicates the record no longer exists on the server.
	ErrNotFound = errors.New("purchase request not found")
)

// ServerError is any other non-2xx response. Detail carries the server's
// "detail" message when one was provided.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Detail returns the user-facing message for an API failure: the server's
// detail text when present, otherwise the given fallback.
func Detail(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	switch {
	case errors.Is(err, ErrAuthExpired):
		return "Session expired. Please login again."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action."
	case errors.Is(err, ErrNotFound):
		return "Purchase request not found."
	case errors.Is(err, ErrNoSession):
		return "Not logged in. Run 'prdesk login' first."
	}
	return fallback
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthExpired):
		return "AUTH_EXPIRED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNoSession):
		return "NO_SESSION"
	default:
		return "SERVER_OR_TRANSPORT"
	}
}
