package parse

import "errors"

// ErrNoAmount is returned when no monetary quantity can be extracted from the
// input. It is the parser's only failure mode; every other step falls back to
// a default instead of failing.
var ErrNoAmount = errors.New("no amount found")
