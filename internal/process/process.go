// Package process tears down browser process trees.
package process

import "errors"

// ErrInvalidPID guards against signalling pid 0, which addresses the
// caller's own process group.
var ErrInvalidPID = errors.New("invalid process id")
