package lecture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

func TestExpandEmitsOneSessionPerCredit(t *testing.T) {
	subjects := []snapshot.Subject{
		{ID: 1, Name: "Data Structures", Credits: 3, Type: snapshot.Theory},
		{ID: 2, Name: "DS Lab", Credits: 2, Type: snapshot.Lab},
	}
	faculty := []snapshot.Faculty{
		{ID: 1, Name: "Dr. Rao", Expertise: map[int]struct{}{1: {}, 2: {}}},
	}
	rooms := []snapshot.Room{
		{ID: 1, Name: "LT-1", Capacity: 80, Type: snapshot.Theory},
		{ID: 2, Name: "Lab-1", Capacity: 40, Type: snapshot.Lab},
	}
	batches := []snapshot.Batch{
		{ID: 1, Name: "CS-A", Strength: 60, Subjects: map[int]struct{}{1: {}, 2: {}}},
	}
	snap, err := snapshot.New(subjects, faculty, rooms, batches, snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	require.NoError(t, err)

	sessions := lecture.Expand(snap)
	require.Len(t, sessions, 5)

	subjectOneCount, subjectTwoCount := 0, 0
	for _, s := range sessions {
		assert.Equal(t, 1, s.BatchID)
		switch s.SubjectID {
		case 1:
			subjectOneCount++
		case 2:
			subjectTwoCount++
		}
	}
	assert.Equal(t, 3, subjectOneCount)
	assert.Equal(t, 2, subjectTwoCount)
}

func TestExpandSkipsBatchesWithNoSubjects(t *testing.T) {
	subjects := []snapshot.Subject{{ID: 1, Name: "X", Credits: 2, Type: snapshot.Theory}}
	faculty := []snapshot.Faculty{{ID: 1, Name: "F", Expertise: map[int]struct{}{1: {}}}}
	rooms := []snapshot.Room{{ID: 1, Name: "R", Capacity: 10, Type: snapshot.Theory}}
	batches := []snapshot.Batch{{ID: 1, Name: "B", Strength: 5, Subjects: map[int]struct{}{}}}

	snap, err := snapshot.New(subjects, faculty, rooms, batches, snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	require.NoError(t, err)

	sessions := lecture.Expand(snap)
	assert.Empty(t, sessions)
}
