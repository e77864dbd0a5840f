package quadtree

import (
	"strconv"
)

type Point struct {
	X float64
	Y float64
}

// Pointer is implemented by anything the tree can index.
// The tree only ever asks for the location; the rest of the value is opaque to it.
type Pointer interface {
	Point() Point
}

// Point returns p, so plain points can be stored in a tree directly.
func (p Point) Point() Point {
	return p
}

func (p Point) String() string {
	return "[" + strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64) + "]"
}
