package errors

import "errors"

// ErrNotFound is returned by repos when a row with the requested id does not exist.
var ErrNotFound = errors.New("not found")
