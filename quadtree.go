/*
Package quadtree implements a point quadtree.

Every node anchors exactly one point and owns up to four children, one per quadrant around
that anchor. Each child covers the part of its parent's bounding box on its side of the anchor,
so the first point inserted into a quadrant becomes that quadrant's anchor, and the shape of the
tree depends only on insertion order. There is no deletion and no rebalancing; callers that track
moving points rebuild the tree.

A tree is not safe for concurrent insertion. Once insertion is finished, any number of
goroutines may query it.
*/
package quadtree

import (
	"time"
)

// Quadrant identifies a child of a node, relative to the node's anchor.
// Y grows downward, so north is toward Min.Y.
type Quadrant int

const (
	Ne Quadrant = iota + 1
	Nw
	Sw
	Se
)

func (q Quadrant) String() string {
	switch q {
	case Ne:
		return "NE"
	case Nw:
		return "NW"
	case Sw:
		return "SW"
	case Se:
		return "SE"
	}
	return "Quadrant(?)"
}

// Quadrants lists the quadrants in traversal order.
var Quadrants = [4]Quadrant{Ne, Nw, Sw, Se}

type Quadtree[T Pointer] struct {
	anchor T
	at     Point // anchor.Point(), cached
	bounds BoundingBox
	ne     *Quadtree[T]
	nw     *Quadtree[T]
	sw     *Quadtree[T]
	se     *Quadtree[T]
	opts   *options
}

// New creates a tree holding only seed, covering bounds.
// bounds is never inferred; it must cover every point that will be inserted.
func New[T Pointer](seed T, bounds BoundingBox, opts ...Option) *Quadtree[T] {
	o := newOptions(opts)
	q := &Quadtree[T]{anchor: seed, at: seed.Point(), bounds: bounds, opts: o}
	if !bounds.Contains(q.at) {
		o.logger.WithField("point", q.at.String()).WithField("bounds", bounds.String()).Warn("seed outside tree bounds")
	}
	o.logger.WithField("bounds", bounds.String()).Debug("quadtree created")
	return q
}

func (q *Quadtree[T]) Anchor() T {
	return q.anchor
}

func (q *Quadtree[T]) Bounds() BoundingBox {
	return q.bounds
}

// Child returns the subtree in the given quadrant, or nil if there is none.
func (q *Quadtree[T]) Child(quadrant Quadrant) *Quadtree[T] {
	if s := q.slot(quadrant); s != nil {
		return *s
	}
	return nil
}

// HasChild reports whether the given quadrant holds a subtree.
func (q *Quadtree[T]) HasChild(quadrant Quadrant) bool {
	return q.Child(quadrant) != nil
}

// Insert adds p below q.
//
// p is compared against each anchor on the way down and stored as a new leaf in the first
// empty quadrant it reaches. Existing anchors are never replaced, and a point equal to an
// anchor is still stored, in that anchor's NW quadrant.
//
// A point outside q's bounding box is placed anyway and logged, unless the tree was built
// with WithStrictBounds, in which case Insert returns an *OutOfBoundsError and q is unchanged.
func (q *Quadtree[T]) Insert(p T) error {
	start := time.Now()
	err := q.insert(p)
	q.opts.metrics.RecordInsert(time.Since(start), err)
	return err
}

func (q *Quadtree[T]) insert(p T) error {
	at := p.Point()
	if !q.bounds.Contains(at) {
		err := &OutOfBoundsError{Point: at, Bounds: q.bounds}
		if q.opts.strict {
			q.opts.logger.WithError(err).Debug("insert rejected")
			return err
		}
		q.opts.logger.WithError(err).Warn("inserting point outside tree bounds")
	}

	n := q
	for {
		quadrant := classify(at, n.at)
		slot := n.slot(quadrant)
		if *slot == nil {
			*slot = &Quadtree[T]{
				anchor: p,
				at:     at,
				bounds: n.quadrantBounds(quadrant),
				opts:   n.opts,
			}
			return nil
		}
		n = *slot
	}
}

// classify returns the quadrant of p relative to anchor.
// Each axis is compared independently, with ties going to the lesser side.
func classify(p, anchor Point) Quadrant {
	switch {
	case p.X > anchor.X && p.Y <= anchor.Y:
		return Ne
	case p.X <= anchor.X && p.Y <= anchor.Y:
		return Nw
	case p.X <= anchor.X && p.Y > anchor.Y:
		return Sw
	default:
		return Se
	}
}

// helper function of insert()
// returns the bounding box of a new child in the given quadrant.
func (q *Quadtree[T]) quadrantBounds(quadrant Quadrant) BoundingBox {
	a, b := q.at, q.bounds
	switch quadrant {
	case Ne:
		return BoundingBox{Min: Point{a.X, b.Min.Y}, Max: Point{b.Max.X, a.Y}}
	case Nw:
		return BoundingBox{Min: b.Min, Max: a}
	case Sw:
		return BoundingBox{Min: Point{b.Min.X, a.Y}, Max: Point{a.X, b.Max.Y}}
	default:
		return BoundingBox{Min: a, Max: b.Max}
	}
}

func (q *Quadtree[T]) slot(quadrant Quadrant) **Quadtree[T] {
	switch quadrant {
	case Ne:
		return &q.ne
	case Nw:
		return &q.nw
	case Sw:
		return &q.sw
	case Se:
		return &q.se
	}
	return nil
}

// walk visits q and its descendants in pre-order: a node, then its subtrees in the order
// NE, NW, SW, SE. The children of a node are skipped when visit returns false.
// An explicit stack is used, so a degenerate chain of any length is safe to walk.
func (q *Quadtree[T]) walk(visit func(n *Quadtree[T]) bool) {
	stack := []*Quadtree[T]{q}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n) {
			continue
		}
		// reversed, so NE is popped first
		for _, c := range [4]*Quadtree[T]{n.se, n.sw, n.nw, n.ne} {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// Size returns the number of points in q, including its descendants.
func (q *Quadtree[T]) Size() int {
	size := 0
	q.walk(func(*Quadtree[T]) bool {
		size++
		return true
	})
	return size
}

// Points returns every point in q in pre-order.
func (q *Quadtree[T]) Points() []T {
	var points []T
	q.walk(func(n *Quadtree[T]) bool {
		points = append(points, n.anchor)
		return true
	})
	return points
}

// FindInCircle returns every point of q within distance r of (cx,cy), boundary included.
// Subtrees whose bounding box misses the circle are skipped entirely.
// If the center itself was inserted it is part of the result.
func (q *Quadtree[T]) FindInCircle(cx, cy, r float64) []T {
	start := time.Now()
	var points []T
	visited := 0
	q.walk(func(n *Quadtree[T]) bool {
		visited++
		if !CircleIntersectsRectangle(cx, cy, r, n.bounds.Min.X, n.bounds.Min.Y, n.bounds.Max.X, n.bounds.Max.Y) {
			return false
		}
		if PointInCircle(n.at.X, n.at.Y, cx, cy, r) {
			points = append(points, n.anchor)
		}
		return true
	})
	q.opts.metrics.RecordSearch(visited, len(points), time.Since(start))
	return points
}

// Validate checks that every anchor lies within the bounding box of its own node and of
// all its ancestors. It returns the first violation found, as an *OutOfBoundsError whose
// Bounds is the intersection of those boxes.
func (q *Quadtree[T]) Validate() error {
	type frame struct {
		n     *Quadtree[T]
		limit BoundingBox
	}
	stack := []frame{{q, q.bounds}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		limit := f.limit.Intersection(f.n.bounds)
		if !limit.Contains(f.n.at) {
			return &OutOfBoundsError{Point: f.n.at, Bounds: limit}
		}
		for _, c := range [4]*Quadtree[T]{f.n.se, f.n.sw, f.n.nw, f.n.ne} {
			if c != nil {
				stack = append(stack, frame{c, limit})
			}
		}
	}
	return nil
}
