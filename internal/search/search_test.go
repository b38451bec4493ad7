package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/ordering"
	"github.com/noah-isme/timetable-solver/internal/search"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
	appErrors "github.com/noah-isme/timetable-solver/pkg/errors"
)

func feasibleSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	subjects := []snapshot.Subject{
		{ID: 1, Name: "Data Structures", Credits: 2, Type: snapshot.Theory},
	}
	faculty := []snapshot.Faculty{
		{ID: 1, Name: "Dr. Rao", Expertise: map[int]struct{}{1: {}}},
	}
	rooms := []snapshot.Room{
		{ID: 1, Name: "LT-1", Capacity: 80, Type: snapshot.Theory},
	}
	batches := []snapshot.Batch{
		{ID: 1, Name: "CS-A", Strength: 60, Subjects: map[int]struct{}{1: {}}},
	}
	snap, err := snapshot.New(subjects, faculty, rooms, batches, snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	require.NoError(t, err)
	return snap
}

func TestSolveFindsCompleteSchedule(t *testing.T) {
	snap := feasibleSnapshot(t)
	sessions := ordering.Prioritize(lecture.Expand(snap), snap, 1, false)

	sched, stats, err := search.Solve(context.Background(), sessions, snap, search.Config{Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, len(sessions), sched.Len())
	assert.GreaterOrEqual(t, stats.PlacementCount, sched.Len())
}

func TestSolveReturnsInfeasibleWhenNoFacultyQualifies(t *testing.T) {
	subjects := []snapshot.Subject{{ID: 1, Name: "X", Credits: 1, Type: snapshot.Theory}}
	faculty := []snapshot.Faculty{{ID: 1, Name: "F", Expertise: map[int]struct{}{}}}
	rooms := []snapshot.Room{{ID: 1, Name: "R", Capacity: 10, Type: snapshot.Theory}}
	batches := []snapshot.Batch{{ID: 1, Name: "B", Strength: 5, Subjects: map[int]struct{}{1: {}}}}
	snap, err := snapshot.New(subjects, faculty, rooms, batches, snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	require.NoError(t, err)

	sessions := lecture.Expand(snap)
	_, _, err = search.Solve(context.Background(), sessions, snap, search.Config{Seed: 1})

	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInfeasible))
}

func TestSolveHonoursCancellation(t *testing.T) {
	snap := feasibleSnapshot(t)
	sessions := ordering.Prioritize(lecture.Expand(snap), snap, 1, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	time.Sleep(time.Millisecond)

	_, _, err := search.Solve(ctx, sessions, snap, search.Config{Seed: 1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCancelled))
}
