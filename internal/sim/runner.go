package sim

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Runner steps a world at the world's current delay.
type Runner struct {
	world   *World
	limiter *rate.Limiter
}

func NewRunner(w *World) *Runner {
	return &Runner{
		world:   w,
		limiter: rate.NewLimiter(every(w.Delay()), 1),
	}
}

func every(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Inf
	}
	return rate.Every(d)
}

// Run steps the world ticks times, or until ctx is done if ticks is 0, calling fn after
// each step. Changes to the world's delay take effect on the next tick.
func (r *Runner) Run(ctx context.Context, ticks int, fn func(Tick)) error {
	for i := 0; ticks == 0 || i < ticks; i++ {
		r.limiter.SetLimit(every(r.world.Delay()))
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		tick, err := r.world.Step(ctx)
		if err != nil {
			return err
		}
		if fn != nil {
			fn(tick)
		}
	}
	return nil
}
