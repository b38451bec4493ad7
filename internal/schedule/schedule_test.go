package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/schedule"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

func TestAppendUpdatesBusyIndexes(t *testing.T) {
	sched := schedule.New()
	ts := snapshot.Timeslot{Day: 1, Period: 1}

	sched.Append(schedule.Placement{
		Session:   lecture.Session{BatchID: 1, SubjectID: 1},
		Timeslot:  ts,
		FacultyID: 1,
		RoomID:    1,
	})

	assert.True(t, sched.BatchBusy(ts, 1))
	assert.True(t, sched.FacultyBusy(ts, 1))
	assert.True(t, sched.RoomBusy(ts, 1))
	assert.False(t, sched.BatchBusy(ts, 2))
	assert.Equal(t, 1, sched.FacultyDailyCount(1, 1))
	assert.Equal(t, 1, sched.Len())
}

func TestPopReversesAppend(t *testing.T) {
	sched := schedule.New()
	ts := snapshot.Timeslot{Day: 1, Period: 1}
	placement := schedule.Placement{
		Session:   lecture.Session{BatchID: 1, SubjectID: 1},
		Timeslot:  ts,
		FacultyID: 1,
		RoomID:    1,
	}

	sched.Append(placement)
	sched.Pop()

	assert.False(t, sched.BatchBusy(ts, 1))
	assert.False(t, sched.FacultyBusy(ts, 1))
	assert.False(t, sched.RoomBusy(ts, 1))
	assert.Equal(t, 0, sched.FacultyDailyCount(1, 1))
	assert.Equal(t, 0, sched.Len())
}

func TestAtReturnsPlacementsForTimeslot(t *testing.T) {
	sched := schedule.New()
	ts1 := snapshot.Timeslot{Day: 1, Period: 1}
	ts2 := snapshot.Timeslot{Day: 1, Period: 2}

	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 1, SubjectID: 1}, Timeslot: ts1, FacultyID: 1, RoomID: 1})
	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 2, SubjectID: 1}, Timeslot: ts1, FacultyID: 2, RoomID: 2})
	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 1, SubjectID: 2}, Timeslot: ts2, FacultyID: 1, RoomID: 1})

	require.Len(t, sched.At(ts1), 2)
	require.Len(t, sched.At(ts2), 1)
	assert.Len(t, sched.Placements(), 3)
}

func TestFacultyDailyCountAcrossPeriods(t *testing.T) {
	sched := schedule.New()
	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 1, SubjectID: 1}, Timeslot: snapshot.Timeslot{Day: 1, Period: 1}, FacultyID: 1, RoomID: 1})
	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 1, SubjectID: 2}, Timeslot: snapshot.Timeslot{Day: 1, Period: 2}, FacultyID: 1, RoomID: 1})
	sched.Append(schedule.Placement{Session: lecture.Session{BatchID: 1, SubjectID: 1}, Timeslot: snapshot.Timeslot{Day: 2, Period: 1}, FacultyID: 1, RoomID: 1})

	assert.Equal(t, 2, sched.FacultyDailyCount(1, 1))
	assert.Equal(t, 1, sched.FacultyDailyCount(1, 2))
}
