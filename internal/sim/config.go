package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownBlobType is returned when adding a blob of a type other than Bouncing or Wandering.
	ErrUnknownBlobType = errors.New("unknown blob type")
	// ErrUnknownHandler is returned for collision handlers other than Color and Destroy.
	ErrUnknownHandler = errors.New("unknown collision handler")
	// ErrInvalidWorld is returned for a world without area.
	ErrInvalidWorld = errors.New("invalid world size")
)

// BlobType selects the motion of blobs created by World.Add.
type BlobType byte

const (
	Bouncing  BlobType = 'b'
	Wandering BlobType = 'w'
)

func (t BlobType) valid() bool {
	return t == Bouncing || t == Wandering
}

// Handler selects what happens to blobs that collide.
type Handler byte

const (
	// Color leaves colliders in place; they are only reported.
	Color Handler = 'c'
	// Destroy removes colliders from the world.
	Destroy Handler = 'd'
)

func (h Handler) valid() bool {
	return h == Color || h == Destroy
}

type Config struct {
	Width  float64
	Height float64

	Radius      float64
	BlobType    BlobType
	Handler     Handler
	WanderSteps int

	// Delay is the time between ticks when run by a Runner.
	Delay time.Duration
	// Workers bounds the goroutines used for collision queries. 0 means no limit.
	Workers int
	Seed    int64

	Logger logrus.FieldLogger
}

func DefaultConfig() Config {
	return Config{
		Width:       800,
		Height:      600,
		Radius:      DefaultRadius,
		BlobType:    Bouncing,
		Handler:     Color,
		WanderSteps: DefaultWanderSteps,
		Delay:       100 * time.Millisecond,
		Seed:        time.Now().UnixNano(),
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidWorld, c.Width, c.Height)
	}
	if c.Radius < 0 {
		return fmt.Errorf("negative blob radius %v", c.Radius)
	}
	if !c.BlobType.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBlobType, rune(c.BlobType))
	}
	if !c.Handler.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownHandler, rune(c.Handler))
	}
	if c.Delay < 0 {
		return fmt.Errorf("negative delay %v", c.Delay)
	}
	return nil
}
