// Package search implements the classical CSP backtracking algorithm that
// places every session onto the timeslot grid, consulting the domain
// generator at each step and undoing placements on failure.
package search

import (
	"context"
	"math/rand"
	"sort"

	"github.com/noah-isme/timetable-solver/internal/domain"
	"github.com/noah-isme/timetable-solver/internal/lecture"
	appErrors "github.com/noah-isme/timetable-solver/pkg/errors"

	"github.com/noah-isme/timetable-solver/internal/cost"
	"github.com/noah-isme/timetable-solver/internal/schedule"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Observer receives progress callbacks during the search. Any method may
// be nil. It exists so packages like internal/metrics can count
// recursion depth and backtracks without the search package depending on
// them directly.
type Observer struct {
	OnEnter     func(depth int)
	OnPlace     func()
	OnBacktrack func()
}

// Config governs search behaviour.
type Config struct {
	// Seed controls the deterministic PRNG used to shuffle domain
	// candidates; the same seed always reproduces the same search path.
	Seed int64
	// Shuffle diversifies search paths by shuffling domain candidates.
	// When false, candidates are tried in ascending-id order.
	Shuffle bool
	// Exhaustive, when true, continues searching after a complete
	// schedule is found, keeping the lowest-cost schedule seen, until the
	// search space is exhausted or the context is cancelled.
	Exhaustive bool
	Observer   Observer
}

// Stats summarises one search run for logging/metrics.
type Stats struct {
	BacktrackCount int
	PlacementCount int
}

// Solve runs backtracking search over sessions (already in priority
// order) and returns the first complete schedule found (or, in
// exhaustive mode, the lowest-cost complete schedule seen). It returns
// appErrors.ErrCancelled if ctx is cancelled before a result is produced,
// and appErrors.ErrInfeasible if the search space is exhausted with no
// satisfying schedule.
func Solve(ctx context.Context, sessions []lecture.Session, snap *snapshot.Snapshot, cfg Config) (*schedule.Schedule, Stats, error) {
	var rng *rand.Rand
	if cfg.Shuffle {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	timeslots := orderedTimeslots(snap.Constraints.LunchBreakPeriod)

	s := &solver{
		ctx:       ctx,
		snap:      snap,
		timeslots: timeslots,
		rng:       rng,
		observer:  cfg.Observer,
	}

	sched := schedule.New()
	s.backtrack(sessions, sched, cfg.Exhaustive)
	if s.cancelled && !s.hasBest {
		return nil, s.stats, appErrors.Clone(appErrors.ErrCancelled, "solve cancelled")
	}
	if !s.hasBest {
		return nil, s.stats, appErrors.Clone(appErrors.ErrInfeasible, "no satisfying schedule exists")
	}
	return s.best, s.stats, nil
}

type solver struct {
	ctx       context.Context
	snap      *snapshot.Snapshot
	timeslots []snapshot.Timeslot
	rng       *rand.Rand
	observer  Observer

	cancelled bool
	stats     Stats

	best     *schedule.Schedule
	bestCost int
	hasBest  bool
}

func (s *solver) backtrack(sessions []lecture.Session, sched *schedule.Schedule, exhaustive bool) bool {
	if s.cancelled {
		return s.hasBest
	}
	select {
	case <-s.ctx.Done():
		s.cancelled = true
		return s.hasBest
	default:
	}

	if s.observer.OnEnter != nil {
		s.observer.OnEnter(sched.Len())
	}

	if len(sessions) == 0 {
		c := cost.Evaluate(s.snap, sched)
		if !s.hasBest || c < s.bestCost {
			s.best = snapshotSchedule(sched)
			s.bestCost = c
			s.hasBest = true
		}
		return !exhaustive
	}

	sess := sessions[0]
	rest := sessions[1:]

	for _, ts := range s.timeslots {
		for _, assignment := range domain.Candidates(s.snap, sched, sess, ts, s.rng) {
			sched.Append(schedule.Placement{
				Session:   sess,
				Timeslot:  ts,
				FacultyID: assignment.FacultyID,
				RoomID:    assignment.RoomID,
			})
			if s.observer.OnPlace != nil {
				s.observer.OnPlace()
			}
			s.stats.PlacementCount++

			stop := s.backtrack(rest, sched, exhaustive)

			sched.Pop()
			if !stop {
				if s.observer.OnBacktrack != nil {
					s.observer.OnBacktrack()
				}
				s.stats.BacktrackCount++
			}

			if stop || s.cancelled {
				return stop
			}
		}
	}
	return false
}

// orderedTimeslots returns every timeslot on the grid except the lunch
// period, in deterministic day-major/period-minor order.
func orderedTimeslots(lunchPeriod int) []snapshot.Timeslot {
	all := snapshot.AllTimeslots()
	out := make([]snapshot.Timeslot, 0, len(all))
	for _, ts := range all {
		if ts.Period == lunchPeriod {
			continue
		}
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Period < out[j].Period
	})
	return out
}

// snapshotSchedule deep-copies the placements of sched into a fresh
// Schedule so that later Pop calls on the live sched don't mutate a
// recorded best solution.
func snapshotSchedule(sched *schedule.Schedule) *schedule.Schedule {
	copySched := schedule.New()
	for _, p := range sched.Placements() {
		copySched.Append(p)
	}
	return copySched
}
