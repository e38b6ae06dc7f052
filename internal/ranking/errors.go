package ranking

import "errors"

// ErrInvalidInput is returned when no skills were selected; callers should reject the
// request instead of reporting "no matches".
var ErrInvalidInput = errors.New("invalid input: at least one skill must be selected")
