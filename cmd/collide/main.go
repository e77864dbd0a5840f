// Command collide runs the blob collision simulation without a display,
// logging the colliders found on every tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	quadtree "github.com/robert-butts/pointquadtree"
	"github.com/robert-butts/pointquadtree/internal/sim"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := sim.DefaultConfig()
	var (
		blobType = flag.String("type", string(rune(cfg.BlobType)), "blob type: b(ouncer) or w(anderer)")
		handler  = flag.String("handler", string(rune(cfg.Handler)), "collision handler: c(olor) or d(estroy)")
		blobs    = flag.Int("blobs", 50, "number of blobs placed at random")
		ticks    = flag.Int("ticks", 100, "ticks to run, 0 runs until interrupted")
		keys     = flag.String("keys", "", "key commands applied before running, as in the interactive version (f, s, r, c, d, b, w)")
		level    = flag.String("log-level", "info", "log level")
		jsonLog  = flag.Bool("log-json", false, "log as JSON")
		stats    = flag.Bool("stats", false, "log quadtree search statistics at exit")
	)
	flag.Float64Var(&cfg.Width, "width", cfg.Width, "world width")
	flag.Float64Var(&cfg.Height, "height", cfg.Height, "world height")
	flag.Float64Var(&cfg.Radius, "radius", cfg.Radius, "blob radius")
	flag.DurationVar(&cfg.Delay, "delay", cfg.Delay, "time between ticks")
	flag.IntVar(&cfg.WanderSteps, "wander-steps", cfg.WanderSteps, "ticks between wanderer turns")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines for collision queries, 0 for no limit")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.Parse()

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if *jsonLog {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if len(*blobType) != 1 || len(*handler) != 1 {
		return fmt.Errorf("-type and -handler take a single character")
	}
	cfg.BlobType = sim.BlobType((*blobType)[0])
	cfg.Handler = sim.Handler((*handler)[0])
	cfg.Logger = log.StandardLogger()

	metrics := &quadtree.BasicMetricsCollector{}
	world, err := sim.NewWorld(cfg, sim.WithMetricsCollector(metrics))
	if err != nil {
		return err
	}
	if err := world.AddRandom(*blobs); err != nil {
		return err
	}
	for i := 0; i != len(*keys); i++ {
		if (*keys)[i] == ' ' {
			continue
		}
		if err := world.HandleKey((*keys)[i]); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	collisions := 0
	err = sim.NewRunner(world).Run(ctx, *ticks, func(tick sim.Tick) {
		collisions += len(tick.Colliders)
		if len(tick.Colliders) == 0 {
			return
		}
		ids := make([]uint64, len(tick.Colliders))
		for i, b := range tick.Colliders {
			ids[i] = b.ID()
		}
		log.WithFields(log.Fields{
			"tick":      tick.Seq,
			"blobs":     tick.Blobs,
			"destroyed": tick.Destroyed,
		}).Infof("colliders: %v", ids)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	log.WithFields(log.Fields{
		"elapsed":    time.Since(start).String(),
		"blobs":      len(world.Blobs()),
		"collisions": collisions,
	}).Info("done")
	if *stats {
		s := metrics.Stats()
		log.WithFields(log.Fields{
			"inserts":     s.InsertCount,
			"avg_insert":  s.AvgInsert.String(),
			"searches":    s.SearchCount,
			"avg_visited": s.AvgVisited,
			"avg_found":   s.AvgFound,
			"avg_search":  s.AvgSearch.String(),
		}).Info("quadtree stats")
	}
	return nil
}
