package core

import "errors"

var (
	// ErrNotFound is returned by repositories when an identifier does not
	// resolve. The web layer maps it to a 404 page.
	ErrNotFound = errors.New("not found")
)
