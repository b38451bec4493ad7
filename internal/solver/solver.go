// Package solver wires together the snapshot loader, lecture expansion,
// variable ordering, backtracking search, cost evaluation, and formatter
// into the single Generate entry point callers use to produce a weekly
// timetable for one department.
package solver

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-solver/internal/cost"
	"github.com/noah-isme/timetable-solver/internal/format"
	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/metrics"
	"github.com/noah-isme/timetable-solver/internal/ordering"
	"github.com/noah-isme/timetable-solver/internal/search"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
	appErrors "github.com/noah-isme/timetable-solver/pkg/errors"
)

// Status is the terminal outcome of a single Generate run.
type Status string

const (
	StatusSolved    Status = "solved"
	StatusExhausted Status = "exhausted"
)

// State tracks the lifecycle of one in-flight solve.
type State int

const (
	StateFresh State = iota
	StateRunning
	StateSolved
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateRunning:
		return "running"
	case StateSolved:
		return "solved"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Request identifies the department to solve for and the department-scoped
// knobs a caller may override.
type Request struct {
	DepartmentID string `validate:"required"`
	Seed         int64
	Shuffle      bool
	Exhaustive   bool
}

// Result is the driver's success payload.
type Result struct {
	RunID          string          `json:"runId"`
	DepartmentID   string          `json:"departmentId"`
	Status         Status          `json:"status"`
	Timetable      []format.Record `json:"timetable"`
	Cost           int             `json:"cost"`
	BacktrackCount int             `json:"backtrackCount"`
	Elapsed        time.Duration   `json:"elapsedNs"`
}

// Driver owns the loader, logger, validator, and metrics used across runs.
// It holds no per-run mutable state; every Generate call is independent and
// safe to invoke concurrently (see internal/batch for fan-out over many
// departments).
type Driver struct {
	loader    snapshot.Loader
	logger    *zap.Logger
	validator *validator.Validate
	metrics   *metrics.Collector
}

// New builds a Driver. A nil logger defaults to a no-op logger; a nil
// collector disables metrics recording.
func New(loader snapshot.Loader, logger *zap.Logger, collector *metrics.Collector) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		loader:    loader,
		logger:    logger,
		validator: validator.New(),
		metrics:   collector,
	}
}

// Generate runs the full pipeline for one department: Fresh -> Running ->
// (Solved | Exhausted). On success it returns a Result whose Status is
// StatusSolved or (in exhaustive mode with a best-effort schedule)
// StatusExhausted. On failure it returns one of the five error kinds in
// pkg/errors: ErrInvalidInput, ErrMissingInputs, ErrInfeasible,
// ErrCancelled, or ErrInternal.
func (d *Driver) Generate(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	state := StateFresh
	log := d.logger.With(zap.String("runId", runID), zap.String("departmentId", req.DepartmentID))

	if err := d.validator.Struct(req); err != nil {
		log.Warn("rejected request", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "invalid generate request")
	}

	start := time.Now()
	state = StateRunning
	log.Info("solve started", zap.String("state", state.String()))

	snap, err := d.loadSnapshot(ctx, req.DepartmentID)
	if err != nil {
		d.finish(log, start, "failure")
		return nil, err
	}

	sessions := lecture.Expand(snap)
	ordered := ordering.Prioritize(sessions, snap, req.Seed, req.Shuffle)

	sched, stats, err := search.Solve(ctx, ordered, snap, search.Config{
		Seed:       req.Seed,
		Shuffle:    req.Shuffle,
		Exhaustive: req.Exhaustive,
	})
	if err != nil {
		status := "failure"
		switch {
		case appErrors.Is(err, appErrors.ErrCancelled):
			status = "cancelled"
		case appErrors.Is(err, appErrors.ErrInfeasible):
			status = "infeasible"
		}
		d.finish(log, start, status)
		if d.metrics != nil {
			d.metrics.ObserveBacktracks(stats.BacktrackCount)
		}
		return nil, err
	}

	if req.Exhaustive {
		state = StateExhausted
	} else {
		state = StateSolved
	}

	result := &Result{
		RunID:          runID,
		DepartmentID:   req.DepartmentID,
		Status:         Status(state.String()),
		Timetable:      format.Flatten(snap, sched),
		Cost:           cost.Evaluate(snap, sched),
		BacktrackCount: stats.BacktrackCount,
		Elapsed:        time.Since(start),
	}

	log.Info("solve finished",
		zap.String("state", state.String()),
		zap.Int("backtrackCount", stats.BacktrackCount),
		zap.Int("cost", result.Cost),
		zap.Duration("elapsed", result.Elapsed),
	)
	if d.metrics != nil {
		d.metrics.ObserveSolve("success", result.Elapsed)
		d.metrics.ObserveBacktracks(stats.BacktrackCount)
	}

	return result, nil
}

func (d *Driver) finish(log *zap.Logger, start time.Time, status string) {
	log.Info("solve finished", zap.String("state", status), zap.Duration("elapsed", time.Since(start)))
	if d.metrics != nil {
		d.metrics.ObserveSolve(status, time.Since(start))
	}
}

func (d *Driver) loadSnapshot(ctx context.Context, departmentID string) (*snapshot.Snapshot, error) {
	if d.loader == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "no snapshot loader configured")
	}

	subjects, err := d.loader.Subjects(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	faculty, err := d.loader.Faculty(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	rooms, err := d.loader.Rooms(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	batches, err := d.loader.Batches(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batches")
	}

	if len(subjects) == 0 || len(faculty) == 0 || len(rooms) == 0 || len(batches) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMissingInputs, "department is missing one or more of subjects, faculty, rooms, or batches")
	}

	constraints, err := d.loader.Constraints(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraints")
	}

	snap, err := snapshot.New(subjects, faculty, rooms, batches, constraints)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
