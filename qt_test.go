package quadtree

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var universe = NewBoundingBox(0, 0, 800, 600)

// scenarioTree is the 800x600 universe seeded at its center, with one point per quadrant.
func scenarioTree(t *testing.T, opts ...Option) *Quadtree[Point] {
	t.Helper()
	qt := New(Point{400, 300}, universe, opts...)
	for _, p := range []Point{{100, 100}, {700, 500}, {100, 500}, {700, 100}} {
		require.NoError(t, qt.Insert(p))
	}
	return qt
}

/// randomTree inserts n-1 random points after a random seed, all inside b
func randomTree(rng *rand.Rand, b BoundingBox, n int) (*Quadtree[Point], []Point) {
	randomPoint := func() Point {
		return Point{
			b.Min.X + rng.Float64()*(b.Max.X-b.Min.X),
			b.Min.Y + rng.Float64()*(b.Max.Y-b.Min.Y),
		}
	}
	points := []Point{randomPoint()}
	qt := New(points[0], b)
	for i := 1; i < n; i++ {
		p := randomPoint()
		points = append(points, p)
		qt.Insert(p)
	}
	return qt, points
}

func TestScenario(t *testing.T) {
	qt := scenarioTree(t)

	assert.Equal(t, 5, qt.Size())
	assert.ElementsMatch(t, qt.Points(), qt.FindInCircle(400, 300, 500))
	assert.Equal(t, []Point{{100, 100}}, qt.FindInCircle(100, 100, 1))

	// pre-order, quadrants NE, NW, SW, SE
	assert.Equal(t, []Point{{400, 300}, {700, 100}, {100, 100}, {100, 500}, {700, 500}}, qt.Points())
}

func TestQuadrantBounds(t *testing.T) {
	qt := scenarioTree(t)

	var tests = []struct {
		quadrant Quadrant
		anchor   Point
		bounds   BoundingBox
	}{
		{Ne, Point{700, 100}, NewBoundingBox(400, 0, 800, 300)},
		{Nw, Point{100, 100}, NewBoundingBox(0, 0, 400, 300)},
		{Sw, Point{100, 500}, NewBoundingBox(0, 300, 400, 600)},
		{Se, Point{700, 500}, NewBoundingBox(400, 300, 800, 600)},
	}
	for _, tt := range tests {
		t.Run(tt.quadrant.String(), func(t *testing.T) {
			require.True(t, qt.HasChild(tt.quadrant))
			c := qt.Child(tt.quadrant)
			assert.Equal(t, tt.anchor, c.Anchor())
			assert.Equal(t, tt.bounds, c.Bounds())
			assert.Equal(t, 1, c.Size())
		})
	}
}

func TestRouting(t *testing.T) {
	var tests = []struct {
		p   Point
		out Quadrant
	}{
		{Point{5, 5}, Nw},
		{Point{10, 1}, Ne},
		{Point{1, 10}, Sw},
		{Point{10, 10}, Se},
		{Point{1, 1}, Nw},
		{Point{5, 1}, Nw},
		{Point{1, 5}, Nw},
		{Point{10, 5}, Ne},
		{Point{5, 10}, Sw},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			qt := New(Point{5, 5}, NewBoundingBox(0, 0, 10, 10))
			require.NoError(t, qt.Insert(tt.p))
			for _, q := range Quadrants {
				if q == tt.out {
					require.NotNil(t, qt.Child(q), "quadrant %s", q)
					assert.Equal(t, tt.p, qt.Child(q).Anchor())
				} else {
					assert.Nil(t, qt.Child(q), "quadrant %s", q)
				}
			}
		})
	}
}

func TestRoutingIsRelativeToEachAnchor(t *testing.T) {
	qt := New(Point{400, 300}, universe)
	require.NoError(t, qt.Insert(Point{100, 100}))
	// NW of the root, then SE of (100,100)
	require.NoError(t, qt.Insert(Point{200, 200}))

	nw := qt.Child(Nw)
	require.NotNil(t, nw)
	se := nw.Child(Se)
	require.NotNil(t, se)
	assert.Equal(t, Point{200, 200}, se.Anchor())
	assert.Equal(t, NewBoundingBox(100, 100, 400, 300), se.Bounds())
}

func TestDuplicatePoints(t *testing.T) {
	qt := New(Point{10, 10}, NewBoundingBox(0, 0, 100, 100))
	require.NoError(t, qt.Insert(Point{10, 10}))
	require.NoError(t, qt.Insert(Point{10, 10}))
	require.NoError(t, qt.Insert(Point{20, 20}))

	assert.Equal(t, 4, qt.Size())
	assert.Equal(t, Point{10, 10}, qt.Anchor())
	require.NotNil(t, qt.Child(Nw))
	require.NotNil(t, qt.Child(Nw).Child(Nw))
	assert.Equal(t, []Point{{10, 10}, {10, 10}, {10, 10}}, qt.FindInCircle(10, 10, 0))
}

func TestZeroRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	qt, points := randomTree(rng, universe, 200)
	for _, p := range points[:20] {
		assert.Equal(t, []Point{p}, qt.FindInCircle(p.X, p.Y, 0))
	}
	assert.Empty(t, qt.FindInCircle(points[0].X+1e-9, points[0].Y, 0))
}

func TestCoveringCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	qt, points := randomTree(rng, universe, 500)
	diagonal := math.Hypot(universe.Max.X-universe.Min.X, universe.Max.Y-universe.Min.Y)

	found := qt.FindInCircle(rng.Float64()*800, rng.Float64()*600, diagonal+1)
	assert.ElementsMatch(t, points, found)
}

func TestSizeAndEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 10, 100, 1000} {
		qt, points := randomTree(rng, universe, n)
		assert.Equal(t, n, qt.Size())
		assert.ElementsMatch(t, points, qt.Points())
	}
}

func TestContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i != 20; i++ {
		qt, _ := randomTree(rng, universe, 1+rng.Intn(500))
		require.NoError(t, qt.Validate())
		qt.walk(func(n *Quadtree[Point]) bool {
			for _, p := range n.Points() {
				if !n.bounds.Contains(p) {
					t.Errorf("point %s outside %s", p, n.bounds)
				}
			}
			for _, q := range Quadrants {
				if c := n.Child(q); c != nil {
					assert.True(t, n.bounds.ContainsBox(c.bounds))
				}
			}
			return true
		})
	}
}

func TestFindInCircleMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i != 300; i++ {
		qt, points := randomTree(rng, universe, 1+rng.Intn(300))
		c := Circle{
			Center: Point{rng.Float64()*1000 - 100, rng.Float64()*800 - 100},
			Radius: rng.Float64() * 300,
		}
		var want []Point
		for _, p := range points {
			if math.Hypot(p.X-c.Center.X, p.Y-c.Center.Y) <= c.Radius {
				want = append(want, p)
			}
		}
		got := qt.FindInCircle(c.Center.X, c.Center.Y, c.Radius)
		assert.ElementsMatch(t, want, got, "circle %+v", c)
	}
}

func TestSortedInsertions(t *testing.T) {
	const n = 5000
	qt := New(Point{0, 0}, NewBoundingBox(0, 0, n, n))
	for i := 1; i < n; i++ {
		require.NoError(t, qt.Insert(Point{float64(i), float64(i)}))
	}
	assert.Equal(t, n, qt.Size())
	assert.NoError(t, qt.Validate())
	assert.Len(t, qt.FindInCircle(n/2, n/2, 1.5), 3)
}

func TestStrictBounds(t *testing.T) {
	qt := scenarioTree(t, WithStrictBounds())

	err := qt.Insert(Point{900, 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, Point{900, 10}, oob.Point)
	assert.Equal(t, universe, oob.Bounds)
	assert.Equal(t, 5, qt.Size())
	assert.NoError(t, qt.Validate())
}

func TestOutOfBoundsInsertIsPlaced(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	qt := scenarioTree(t, WithLogger(logger))

	require.NoError(t, qt.Insert(Point{900, 10}))
	assert.Equal(t, 6, qt.Size())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	err := qt.Validate()
	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, Point{900, 10}, oob.Point)
}

func TestMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	qt := scenarioTree(t, WithMetricsCollector(metrics))

	assert.Equal(t, []Point{{100, 100}}, qt.FindInCircle(100, 100, 1))

	assert.Equal(t, int64(4), metrics.InsertCount.Load())
	assert.Equal(t, int64(0), metrics.InsertErrors.Load())
	assert.Equal(t, int64(1), metrics.SearchCount.Load())
	// the root and its four children are tested, three children are pruned
	assert.Equal(t, int64(5), metrics.SearchVisited.Load())
	assert.Equal(t, int64(1), metrics.SearchFound.Load())

	stats := metrics.Stats()
	assert.Equal(t, 5.0, stats.AvgVisited)
	assert.Equal(t, 1.0, stats.AvgFound)
}

func TestSearchPrunes(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	rng := rand.New(rand.NewSource(9))
	points := []Point{{400, 300}}
	qt := New(points[0], universe, WithMetricsCollector(metrics))
	for i := 0; i != 2000; i++ {
		qt.Insert(Point{rng.Float64() * 800, rng.Float64() * 600})
	}
	qt.FindInCircle(200, 200, 5)
	assert.Less(t, metrics.SearchVisited.Load(), int64(qt.Size()/4))
}

func TestFindInCircles(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	qt, points := randomTree(rng, universe, 1000)
	circles := make([]Circle, len(points))
	for i, p := range points {
		circles[i] = Circle{Center: p, Radius: 20}
	}

	results, err := qt.FindInCircles(context.Background(), circles, 4)
	require.NoError(t, err)
	require.Len(t, results, len(circles))
	for i, c := range circles {
		assert.Equal(t, qt.FindInCircle(c.Center.X, c.Center.Y, c.Radius), results[i])
		assert.Contains(t, results[i], points[i])
	}
}

func TestFindInCirclesCanceled(t *testing.T) {
	qt := scenarioTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := qt.FindInCircles(ctx, []Circle{{Center: Point{1, 1}, Radius: 1}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
