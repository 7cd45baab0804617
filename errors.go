package rangecache

import "errors"

// ErrInvalidCapacity is returned by New when the capacity is below one.
var ErrInvalidCapacity = errors.New("capacity must be at least 1")
