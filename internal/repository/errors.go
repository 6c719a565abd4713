package repository

import "errors"

// ErrNotFound is returned when a lookup or update targets a row that does not exist.
var ErrNotFound = errors.New("not found")
