package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrLoadFailed      = errors.New("dashboard load failed")
	ErrMutationFailed  = errors.New("dashboard update failed")
	ErrPrecondition    = errors.New("precondition failed")
	ErrStaleResponse   = errors.New("superseded by a newer dashboard load")
	ErrSessionNotFound = errors.New("dashboard session not found")
)

// LoadError means one of the sources of a full dashboard load could not be fetched.
type LoadError struct {
	ProfileID string
	Source    string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dashboard for profile %s, fetch %s: %s", e.ProfileID, e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoadFailed, e.Err}
}

// MutationError means a progress/weight submission, or the refresh following it, failed.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("dashboard %s: %s", e.Op, e.Err)
}

func (e *MutationError) Unwrap() []error {
	return []error{ErrMutationFailed, e.Err}
}

// PreconditionError is returned before any backend call is made.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func newPreconditionError(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// Notice turns an aggregator error into a message that is safe to show to the user.
// Transport details never leave the service.
func Notice(err error) string {
	var preconditionErr *PreconditionError
	var mutationErr *MutationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &preconditionErr):
		return preconditionErr.Reason
	case errors.Is(err, ErrSessionNotFound):
		return "Dashboard session expired. Please open the profile again."
	case errors.Is(err, ErrStaleResponse):
		return "The dashboard was reloaded in the meantime. Please try again."
	case errors.Is(err, ErrLoadFailed):
		return "Failed to load dashboard data. Please try again."
	case errors.As(err, &mutationErr):
		return mutationNotices[mutationErr.Op]
	default:
		return "Something went wrong. Please try again."
	}
}

var mutationNotices = map[string]string{
	opRecordProgress:  "Failed to log progress. Please try again.",
	opRecordWeight:    "Failed to add weight entry. Please try again.",
	opRegeneratePlans: "Failed to generate plan. Please try again.",
}
