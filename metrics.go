package quadtree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives per-operation measurements from a tree.
// Implementations must be safe for concurrent use when the tree is queried with FindInCircles.
type MetricsCollector interface {
	// RecordInsert is called after each Insert. err is nil if the point was placed.
	RecordInsert(duration time.Duration, err error)

	// RecordSearch is called after each FindInCircle.
	// visited is the number of nodes whose bounds were tested, found the number of points returned.
	RecordSearch(visited, found int, duration time.Duration)
}

// NoopMetricsCollector discards all measurements.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)    {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration) {}

// BasicMetricsCollector keeps running totals in memory.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	SearchCount      atomic.Int64
	SearchVisited    atomic.Int64
	SearchFound      atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(visited, found int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchVisited.Add(int64(visited))
	b.SearchFound.Add(int64(found))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// BasicMetricsStats is a point-in-time copy of a BasicMetricsCollector.
type BasicMetricsStats struct {
	InsertCount  int64
	InsertErrors int64
	AvgInsert    time.Duration
	SearchCount  int64
	AvgVisited   float64
	AvgFound     float64
	AvgSearch    time.Duration
}

// Stats returns averages over everything recorded so far.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	s := BasicMetricsStats{
		InsertCount:  b.InsertCount.Load(),
		InsertErrors: b.InsertErrors.Load(),
		SearchCount:  b.SearchCount.Load(),
	}
	if s.InsertCount > 0 {
		s.AvgInsert = time.Duration(b.InsertTotalNanos.Load() / s.InsertCount)
	}
	if s.SearchCount > 0 {
		s.AvgVisited = float64(b.SearchVisited.Load()) / float64(s.SearchCount)
		s.AvgFound = float64(b.SearchFound.Load()) / float64(s.SearchCount)
		s.AvgSearch = time.Duration(b.SearchTotalNanos.Load() / s.SearchCount)
	}
	return s
}
