package apperr

import "errors"

func IsValidation(err error) bool {
	var e *Validation
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *Conflict
	return errors.As(err, &e)
}

func IsIntegrity(err error) bool {
	var e *Integrity
	return errors.As(err, &e)
}

func IsState(err error) bool {
	var e *State
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFound
	return errors.As(err, &e)
}

// Reason extracts the machine-readable code from any taxonomy error,
// or "" for foreign errors.
func Reason(err error) string {
	switch {
	case IsValidation(err):
		var e *Validation
		errors.As(err, &e)
		return e.Reason
	case IsConflict(err):
		var e *Conflict
		errors.As(err, &e)
		return e.Reason
	case IsIntegrity(err):
		var e *Integrity
		errors.As(err, &e)
		return e.Reason
	case IsState(err):
		var e *State
		errors.As(err, &e)
		return e.Reason
	case IsNotFound(err):
		var e *NotFound
		errors.As(err, &e)
		return e.Reason
	}
	return ""
}
