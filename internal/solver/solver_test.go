package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
	"github.com/noah-isme/timetable-solver/internal/snapshot/fixture"
	"github.com/noah-isme/timetable-solver/internal/solver"
)

func seededLoader() *fixture.Loader {
	loader := fixture.New(snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	loader.Seed("dept-cs", fixture.Department{
		Subjects: []snapshot.Subject{
			{ID: 1, Name: "Data Structures", Credits: 2, Type: snapshot.Theory},
		},
		Faculty: []snapshot.Faculty{
			{ID: 1, Name: "Dr. Rao", Expertise: map[int]struct{}{1: {}}},
		},
		Rooms: []snapshot.Room{
			{ID: 1, Name: "LT-1", Capacity: 80, Type: snapshot.Theory},
		},
		Batches: []snapshot.Batch{
			{ID: 1, Name: "CS-A", Strength: 60, Subjects: map[int]struct{}{1: {}}},
		},
	})
	return loader
}

func TestGenerateProducesTimetable(t *testing.T) {
	driver := solver.New(seededLoader(), nil, nil)

	result, err := driver.Generate(context.Background(), solver.Request{DepartmentID: "dept-cs", Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, solver.StatusSolved, result.Status)
	assert.Len(t, result.Timetable, 2)
	assert.NotEmpty(t, result.RunID)
}

func TestGenerateRejectsMissingDepartmentID(t *testing.T) {
	driver := solver.New(seededLoader(), nil, nil)

	_, err := driver.Generate(context.Background(), solver.Request{})
	require.Error(t, err)
}

func TestGenerateReportsMissingInputsForUnknownDepartment(t *testing.T) {
	driver := solver.New(seededLoader(), nil, nil)

	_, err := driver.Generate(context.Background(), solver.Request{DepartmentID: "dept-unknown"})
	require.Error(t, err)
}
