package sim

import (
	"math/rand"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	quadtree "github.com/robert-butts/pointquadtree"
)

// DefaultRadius is the radius of blobs created by World.Add.
const DefaultRadius = 5.0

// Blob is a moving disc. Blobs are indexed by their center.
type Blob struct {
	ecs.BasicEntity

	Pos mgl64.Vec2
	Vel mgl64.Vec2
	R   float64

	mover Mover
}

// NewBlob creates a blob at (x, y) that moves according to m.
// A nil mover leaves the blob where it is.
func NewBlob(x, y, r float64, m Mover) *Blob {
	return &Blob{
		BasicEntity: ecs.NewBasic(),
		Pos:         mgl64.Vec2{x, y},
		R:           r,
		mover:       m,
	}
}

// Point implements quadtree.Pointer.
func (b *Blob) Point() quadtree.Point {
	return quadtree.Point{X: b.Pos.X(), Y: b.Pos.Y()}
}

// Step advances b by one tick, keeping it within bounds.
func (b *Blob) Step(bounds quadtree.BoundingBox, rng *rand.Rand) {
	if b.mover != nil {
		b.mover.Move(b, bounds, rng)
	}
}
