package lang

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Pinkwolf12321/lovelace-language/log"
)

// mainUnit is the id of the unit evaluating top-level statements.
// Spawned units number upward from it.
const mainUnit = 0

// sink serializes output lines from concurrently running units.
//
// Each write is one whole line: lines from different units interleave,
// but never intermix within a line. The relative order of lines from
// different units is whatever the scheduler produced.
type sink struct {
	mu    sync.Mutex
	write func(string)
}

// writeLine emits one line. Safe for concurrent use.
func (s *sink) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(line)
}

// scheduler runs spawned units, one goroutine each, and tracks them so
// the runtime can wait for every unit to finish.
type scheduler struct {
	wg     sync.WaitGroup
	nextID atomic.Int64
	log    log.Logger

	// failed records whether any unit ended in an error.
	failed atomic.Bool
}

// spawn launches run as a new unit and returns its id without waiting.
// The unit's error, if any, has already been reported by run; spawn
// only records that a failure happened.
func (s *scheduler) spawn(
	ctx context.Context, run func(ctx context.Context, id int64) error,
) int64 {
	id := s.nextID.Add(1)

	s.wg.Add(1)

	s.log.TraceContext(ctx, "unit spawned", slog.Int64("unit", id))

	go func() {
		defer s.wg.Done()

		err := run(ctx, id)
		if err != nil {
			s.failed.Store(true)

			s.log.TraceContext(ctx, "unit exited",
				slog.Int64("unit", id),
				slog.Any("error", err),
			)

			return
		}

		s.log.TraceContext(ctx, "unit exited", slog.Int64("unit", id))
	}()

	return id
}

// wait blocks until every spawned unit has finished.
func (s *scheduler) wait() {
	s.wg.Wait()
}
