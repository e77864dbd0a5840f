package quadtree

import (
	"github.com/golang/geo/r2"
)

// Circle is a closed disc.
type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) Contains(p Point) bool {
	return PointInCircle(p.X, p.Y, c.Center.X, c.Center.Y, c.Radius)
}

// PointInCircle reports whether (px,py) is within distance r of (cx,cy). Points on the circle count.
func PointInCircle(px, py, cx, cy, r float64) bool {
	return r2.Point{X: px, Y: py}.Sub(r2.Point{X: cx, Y: cy}).Norm() <= r
}

// CircleIntersectsRectangle reports whether the circle and the closed rectangle (x1,y1)-(x2,y2)
// share at least one point. The center is clamped to the rectangle to get the rectangle point
// nearest to it, and that point is tested against the circle.
func CircleIntersectsRectangle(cx, cy, r, x1, y1, x2, y2 float64) bool {
	rect := r2.RectFromPoints(r2.Point{X: x1, Y: y1}, r2.Point{X: x2, Y: y2})
	nearest := rect.ClampPoint(r2.Point{X: cx, Y: cy})
	return PointInCircle(nearest.X, nearest.Y, cx, cy, r)
}
