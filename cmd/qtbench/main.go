// Command qtbench times inserting random points into a point quadtree and querying it
// with random circles.
package main

import (
	"context"
	"flag"
	"math/rand"
	"runtime"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	quadtree "github.com/robert-butts/pointquadtree"
)

func main() {
	var (
		pointsToInsert = flag.Int("points", 1000000, "points to insert")
		queries        = flag.Int("queries", 100, "circle queries to run")
		radius         = flag.Float64("radius", 5.0, "query radius")
		threads        = flag.Int("threads", runtime.NumCPU(), "goroutines running queries")
		seed           = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()
	if *pointsToInsert < 1 {
		log.Fatal("need at least one point")
	}

	rng := rand.New(rand.NewSource(*seed))
	randomPoint := func() quadtree.Point {
		return quadtree.Point{X: rng.Float64()*100.0 + 50.0, Y: rng.Float64()*100.0 + 50.0}
	}

	metrics := &quadtree.BasicMetricsCollector{}
	start := time.Now()
	qt := quadtree.New(randomPoint(), quadtree.NewBoundingBox(50, 50, 150, 150), quadtree.WithMetricsCollector(metrics))
	for i := 1; i < *pointsToInsert; i++ {
		qt.Insert(randomPoint())
	}
	elapsed := time.Since(start)
	log.Info("inserted " + strconv.Itoa(qt.Size()) + " points in " + elapsed.String() + ".")

	circles := make([]quadtree.Circle, *queries)
	for i := range circles {
		circles[i] = quadtree.Circle{Center: randomPoint(), Radius: *radius}
	}
	start = time.Now()
	results, err := qt.FindInCircles(context.Background(), circles, *threads)
	if err != nil {
		log.Fatal(err)
	}
	elapsed = time.Since(start)
	found := 0
	for _, points := range results {
		found += len(points)
	}
	log.Info("queried " + strconv.Itoa(found) + " points via " + strconv.Itoa(*queries) + " queries in " + elapsed.String() + ".")
	log.WithField("avg_visited", metrics.Stats().AvgVisited).Info("nodes visited per query")
}
