// Package farmer holds the sentinel errors shared by the farmer store and
// registration service.
package farmer

import "errors"

var (
	ErrNotFound  = errors.New("farmer not found")
	ErrDuplicate = errors.New("phone or email already registered")
)
