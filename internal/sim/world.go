// Package sim moves a set of blobs around a rectangular world and uses a point quadtree,
// rebuilt every tick, to find the blobs that touch another blob.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/sirupsen/logrus"

	quadtree "github.com/robert-butts/pointquadtree"
)

// Tick summarizes one step of a world.
type Tick struct {
	Seq       int
	Blobs     int
	Colliders []*Blob
	Destroyed int
}

// World owns the blobs. It is not safe for concurrent use.
type World struct {
	cfg     Config
	bounds  quadtree.BoundingBox
	rng     *rand.Rand
	log     logrus.FieldLogger
	metrics quadtree.MetricsCollector

	blobs     []*Blob
	colliders []*Blob
	blobType  BlobType
	handler   Handler
	delay     time.Duration
	seq       int
}

// Option configures a World.
type Option func(*World)

// WithMetricsCollector passes m to every tree the world builds.
func WithMetricsCollector(m quadtree.MetricsCollector) Option {
	return func(w *World) {
		w.metrics = m
	}
}

func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	w := &World{
		cfg:      cfg,
		bounds:   quadtree.NewBoundingBox(0, 0, cfg.Width, cfg.Height),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		log:      cfg.Logger,
		metrics:  quadtree.NoopMetricsCollector{},
		blobType: cfg.BlobType,
		handler:  cfg.Handler,
		delay:    cfg.Delay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) Bounds() quadtree.BoundingBox {
	return w.bounds
}

func (w *World) Blobs() []*Blob {
	return w.blobs
}

func (w *World) Delay() time.Duration {
	return w.delay
}

func (w *World) Handler() Handler {
	return w.handler
}

func (w *World) BlobType() BlobType {
	return w.blobType
}

// Colliders returns the colliders found by the last call to FindColliders.
func (w *World) Colliders() []*Blob {
	return w.colliders
}

// Add creates a blob of the current type at (x, y).
func (w *World) Add(x, y float64) (*Blob, error) {
	var b *Blob
	switch w.blobType {
	case Bouncing:
		b = NewBlob(x, y, w.cfg.Radius, Bouncer{})
		b.Vel = randomVelocity(w.rng)
	case Wandering:
		b = NewBlob(x, y, w.cfg.Radius, &Wanderer{Steps: w.cfg.WanderSteps})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlobType, rune(w.blobType))
	}
	w.AddBlob(b)
	return b, nil
}

// AddBlob adds a blob built by the caller.
func (w *World) AddBlob(b *Blob) {
	w.blobs = append(w.blobs, b)
	w.log.WithFields(logrus.Fields{
		"id":  b.ID(),
		"pos": b.Point().String(),
	}).Debug("blob added")
}

// AddRandom adds n blobs of the current type at random positions.
func (w *World) AddRandom(n int) error {
	for i := 0; i != n; i++ {
		if _, err := w.Add(w.rng.Float64()*w.cfg.Width, w.rng.Float64()*w.cfg.Height); err != nil {
			return err
		}
	}
	w.log.WithField("count", n).Info("added random blobs")
	return nil
}

// SetBlobType sets the type of blobs created from now on.
// An unknown type is only reported when a blob is added.
func (w *World) SetBlobType(t BlobType) {
	w.blobType = t
}

func (w *World) SetHandler(h Handler) error {
	if !h.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownHandler, rune(h))
	}
	w.handler = h
	w.log.WithField("handler", string(rune(h))).Info("collision handler changed")
	return nil
}

// Faster halves the delay between ticks, down to a millisecond.
func (w *World) Faster() {
	if w.delay > time.Millisecond {
		w.delay /= 2
	}
	w.log.WithField("delay", w.delay).Info("delay changed")
}

// Slower doubles the delay between ticks.
func (w *World) Slower() {
	if w.delay <= 0 {
		w.delay = time.Millisecond
	} else {
		w.delay *= 2
	}
	w.log.WithField("delay", w.delay).Info("delay changed")
}

// HandleKey applies a single-key command:
// 'f' faster, 's' slower, 'r' ten random blobs, 'c'/'d' collision handler,
// anything else selects the blob type.
func (w *World) HandleKey(k byte) error {
	switch k {
	case 'f':
		w.Faster()
	case 's':
		w.Slower()
	case 'r':
		return w.AddRandom(10)
	case byte(Color), byte(Destroy):
		return w.SetHandler(Handler(k))
	default:
		w.SetBlobType(BlobType(k))
	}
	return nil
}

// FindColliders indexes every blob and returns, in blob order, each blob that touches
// at least one other blob. It returns nil for an empty world.
func (w *World) FindColliders(ctx context.Context) ([]*Blob, error) {
	w.colliders = nil
	if len(w.blobs) == 0 {
		return nil, nil
	}

	tree := quadtree.New(w.blobs[0], w.bounds,
		quadtree.WithLogger(w.log),
		quadtree.WithMetricsCollector(w.metrics),
	)
	for _, b := range w.blobs[1:] {
		if err := tree.Insert(b); err != nil {
			return nil, fmt.Errorf("index blob %d: %w", b.ID(), err)
		}
	}

	// a blob collides with every other blob within twice its radius
	circles := make([]quadtree.Circle, len(w.blobs))
	for i, b := range w.blobs {
		circles[i] = quadtree.Circle{Center: b.Point(), Radius: 2 * b.R}
	}
	found, err := tree.FindInCircles(ctx, circles, w.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("find colliders: %w", err)
	}

	hit := roaring64.New()
	for i, b := range w.blobs {
		for _, other := range found[i] {
			if other != b {
				hit.Add(other.ID())
			}
		}
	}
	for _, b := range w.blobs {
		if hit.Contains(b.ID()) {
			w.colliders = append(w.colliders, b)
		}
	}
	return w.colliders, nil
}

// Step moves every blob, finds the colliders, and removes them if the handler is Destroy.
func (w *World) Step(ctx context.Context) (Tick, error) {
	for _, b := range w.blobs {
		b.Step(w.bounds, w.rng)
	}
	colliders, err := w.FindColliders(ctx)
	if err != nil {
		return Tick{}, err
	}
	w.seq++
	tick := Tick{Seq: w.seq, Colliders: colliders}

	if w.handler == Destroy && len(colliders) > 0 {
		w.blobs = w.remove(colliders)
		tick.Destroyed = len(colliders)
		w.colliders = nil
	}
	tick.Blobs = len(w.blobs)

	w.log.WithFields(logrus.Fields{
		"tick":      tick.Seq,
		"blobs":     tick.Blobs,
		"colliders": len(tick.Colliders),
		"destroyed": tick.Destroyed,
	}).Debug("tick")
	return tick, nil
}

func (w *World) remove(gone []*Blob) []*Blob {
	ids := roaring64.New()
	for _, b := range gone {
		ids.Add(b.ID())
	}
	kept := w.blobs[:0]
	for _, b := range w.blobs {
		if !ids.Contains(b.ID()) {
			kept = append(kept, b)
		}
	}
	return kept
}
