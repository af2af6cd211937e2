package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Project lifecycle errors. Every rejected action is one of three kinds:
// ErrActionUnauthorized, ErrInvalidState or ErrDependencyFailure.
var (
	ErrActionUnauthorized = errors.New("action unauthorized")
	ErrInvalidState       = errors.New("invalid project state")
	ErrDependencyFailure  = errors.New("action failed")
)

var (
	ErrNoActor        = errors.New("no signed-in user")
	ErrNotOwner       = errors.New("not the project creator")
	ErrOwnProject     = errors.New("project belongs to the actor")
	ErrAlreadyApplied = errors.New("already applied")
	ErrStatusChanged  = errors.New("status changed concurrently")
)

func NewNoActorError(action string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%w: %w", ErrActionUnauthorized, ErrNoActor),
		Details:    fmt.Sprintf("a signed-in user is required to %s a project", action),
	}
}

func NewNotOwnerError(action string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%w: %w", ErrActionUnauthorized, ErrNotOwner),
		Details:    fmt.Sprintf("only the project creator can %s it", action),
	}
}

func NewOwnProjectError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%w: %w", ErrActionUnauthorized, ErrOwnProject),
		Details:    "creators cannot select their own project",
	}
}

func NewInvalidStateError(action, status string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrInvalidState,
		Details:    fmt.Sprintf("cannot %s a project that is %s", action, status),
		Field:      "status",
	}
}

func NewAlreadyAppliedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%w: %w", ErrInvalidState, ErrAlreadyApplied),
		Details:    "you have already selected this project",
	}
}

// NewStatusChangedError reports a conditional write that matched no row because another
// actor moved the project out of the expected status first.
func NewStatusChangedError(action, expected string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%w: %w", ErrInvalidState, ErrStatusChanged),
		Details:    fmt.Sprintf("cannot %s: project is no longer %s", action, expected),
		Field:      "status",
	}
}

// NewDependencyFailure wraps a store or identity failure. A not-found cause keeps its 404.
func NewDependencyFailure(operation string, cause error) *ApiErr {
	if IsNotFound(cause) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("project %w", ErrNotFound),
			Details:    fmt.Sprintf("Failed to %s", operation),
			Cause:      cause,
		}
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrDependencyFailure,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func IsActionUnauthorized(err error) bool {
	return errors.Is(err, ErrActionUnauthorized)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsDependencyFailure(err error) bool {
	return errors.Is(err, ErrDependencyFailure)
}
