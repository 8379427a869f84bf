package core

import (
	"errors"
)

var (
	ErrInvalidElementCount   = errors.New("invalid number of matrix elements")
	ErrSingularMatrix        = errors.New("can't inverse the matrix because its determinant is zero")
	ErrInvalidGridDimensions = errors.New("rows and columns must be more than 2")
	ErrScrollDataLength      = errors.New("scroll data length does not match the grid columns")
	ErrInvalidSegments       = errors.New("segments must be at least 1")
	ErrZeroAxis              = errors.New("axis must not be the zero vector")
	ErrUnsupportedCapAxis    = errors.New("caps are only supported for the Y axis")
	ErrInvalidLayout         = errors.New("invalid vertex layout")
	ErrQueueFull             = errors.New("queue is full")
	ErrQueueEmpty            = errors.New("queue is empty")
	ErrUnknownCamera         = errors.New("unknown camera")
	ErrUnknownGeometry       = errors.New("unknown geometry")
	ErrSystemFull            = errors.New("system has no free slots")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrUnknown               = errors.New("unknown")
)
