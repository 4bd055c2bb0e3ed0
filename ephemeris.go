package sgp4

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const defaultEphemerisWorkers = 4

// EphemerisOptions configures Ephemeris.
type EphemerisOptions struct {
	Workers int        // number of goroutines, defaults to 4
	Logger  log.Logger // defaults to a nop logger
	Metrics *Metrics
}

// Series is the ephemeris of one element set.
type Series struct {
	Index    int // position in the input slice
	Elements MeanElements
	States   []CartesianState
	// Decayed is set when the object re-entered inside the window; States
	// then stops at the last valid sample.
	Decayed bool
	Err     error // non-decay failure, States holds the samples before it
}

type ephemerisJob struct {
	index    int
	elements MeanElements
}

// Ephemeris propagates every element set over [start, stop] at a fixed step
// using a pool of workers. Each element set gets its own propagator. Results
// are returned in input order.
func Ephemeris(ctx context.Context, elements []MeanElements, start, stop time.Time, step time.Duration, opts EphemerisOptions) ([]Series, error) {
	if stop.Before(start) {
		return nil, fmt.Errorf("start time must be before stop time")
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	if len(elements) == 0 {
		return nil, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultEphemerisWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	began := time.Now()
	defer func() { opts.Metrics.observeEphemeris(time.Since(began)) }()

	jobs := make(chan ephemerisJob, workers*2)
	results := make(chan Series, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				series := propagateSeries(ctx, job, start, stop, step, opts.Metrics)
				select {
				case results <- series:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, el := range elements {
			select {
			case jobs <- ephemerisJob{index: i, elements: el}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Series, len(elements))
	var failed, decayed int
	for series := range results {
		switch {
		case series.Err != nil:
			failed++
			level.Warn(logger).Log("msg", "propagation failed", "index", series.Index, "err", series.Err)
		case series.Decayed:
			decayed++
			level.Info(logger).Log("msg", "object decayed", "index", series.Index, "samples", len(series.States))
		}
		out[series.Index] = series
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	level.Debug(logger).Log("msg", "ephemeris generated", "objects", len(elements),
		"failed", failed, "decayed", decayed, "took", time.Since(began))
	return out, nil
}

func propagateSeries(ctx context.Context, job ephemerisJob, start, stop time.Time, step time.Duration, m *Metrics) Series {
	series := Series{Index: job.index, Elements: job.elements}
	prop, err := New(job.elements, WithMetrics(m))
	if err != nil {
		series.Err = err
		return series
	}

	st := prop.Seed()
	for t := start; !t.After(stop); t = t.Add(step) {
		if ctx.Err() != nil {
			return series
		}
		cs, err := prop.PropagateWithState(NewEpoch(t).Sub(prop.Epoch()), &st)
		if errors.Is(err, ErrObjectDecayed) {
			series.Decayed = true
			return series
		}
		if err != nil {
			series.Err = err
			return series
		}
		series.States = append(series.States, cs)
	}
	return series
}
