package quadtree

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every *OutOfBoundsError.
var ErrOutOfBounds = errors.New("point outside bounding box")

// OutOfBoundsError reports a point that does not lie within the box it was required to.
type OutOfBoundsError struct {
	Point  Point
	Bounds BoundingBox
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("point %s outside bounding box %s", e.Point, e.Bounds)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }
