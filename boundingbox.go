package quadtree

import "github.com/golang/geo/r2"

// BoundingBox is a closed axis-aligned rectangle from Min (upper-left) to Max (bottom-right).
type BoundingBox struct {
	Min Point
	Max Point
}

func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{Min: Point{x1, y1}, Max: Point{x2, y2}}
}

func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X &&
		p.X <= b.Max.X &&
		p.Y >= b.Min.Y &&
		p.Y <= b.Max.Y
}

// ContainsBox reports whether other lies entirely within b.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// IntersectsCircle reports whether c has any point in common with b.
func (b BoundingBox) IntersectsCircle(c Circle) bool {
	return CircleIntersectsRectangle(c.Center.X, c.Center.Y, c.Radius, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Intersection returns the overlap of b and other. An empty overlap contains no points.
func (b BoundingBox) Intersection(other BoundingBox) BoundingBox {
	return boxFromRect(b.Rect().Intersection(other.Rect()))
}

// Rect converts b to an r2.Rect. Min and Max may be given in either order.
func (b BoundingBox) Rect() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: b.Min.X, Y: b.Min.Y}, r2.Point{X: b.Max.X, Y: b.Max.Y})
}

func boxFromRect(r r2.Rect) BoundingBox {
	return BoundingBox{
		Min: Point{r.X.Lo, r.Y.Lo},
		Max: Point{r.X.Hi, r.Y.Hi},
	}
}

func (b BoundingBox) String() string {
	return "{" + b.Min.String() + " " + b.Max.String() + "}"
}
