package catalog

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is matched (via errors.Is) by every error reporting that no
// job data could be fetched.
var ErrDataUnavailable = errors.New("job data unavailable")

// UnavailableError reports which source failed and why.
type UnavailableError struct {
	Source string
	Cause  error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job data unavailable from %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("job data unavailable from %s", e.Source)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrDataUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
