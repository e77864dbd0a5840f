package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	quadtree "github.com/robert-butts/pointquadtree"
)

// Mover updates a blob's position once per tick.
type Mover interface {
	Move(b *Blob, bounds quadtree.BoundingBox, rng *rand.Rand)
}

// randomVelocity returns a velocity with each component uniform in [-1, 1).
func randomVelocity(rng *rand.Rand) mgl64.Vec2 {
	return mgl64.Vec2{2 * (rng.Float64() - 0.5), 2 * (rng.Float64() - 0.5)}
}

// Bouncer keeps the blob's velocity and reflects it off the walls.
type Bouncer struct{}

func (Bouncer) Move(b *Blob, bounds quadtree.BoundingBox, _ *rand.Rand) {
	p := b.Pos.Add(b.Vel)
	lo := mgl64.Vec2{bounds.Min.X, bounds.Min.Y}
	hi := mgl64.Vec2{bounds.Max.X, bounds.Max.Y}
	for i := range p {
		if p[i] < lo[i] {
			p[i] = lo[i]
			b.Vel[i] = -b.Vel[i]
		} else if p[i] > hi[i] {
			p[i] = hi[i]
			b.Vel[i] = -b.Vel[i]
		}
	}
	b.Pos = p
}

// DefaultWanderSteps is how many ticks a Wanderer keeps its heading.
const DefaultWanderSteps = 10

// Wanderer takes a random walk, picking a new velocity every Steps ticks.
// It stops at the walls rather than leaving the world.
type Wanderer struct {
	Steps     int
	remaining int
}

func (m *Wanderer) Move(b *Blob, bounds quadtree.BoundingBox, rng *rand.Rand) {
	if m.remaining <= 0 {
		b.Vel = randomVelocity(rng)
		m.remaining = m.Steps
		if m.remaining <= 0 {
			m.remaining = DefaultWanderSteps
		}
	}
	m.remaining--
	p := b.Pos.Add(b.Vel)
	p[0] = mgl64.Clamp(p[0], bounds.Min.X, bounds.Max.X)
	p[1] = mgl64.Clamp(p[1], bounds.Min.Y, bounds.Max.Y)
	b.Pos = p
}
