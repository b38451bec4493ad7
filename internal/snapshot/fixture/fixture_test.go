package fixture_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
	"github.com/noah-isme/timetable-solver/internal/snapshot/fixture"
)

func TestLoaderServesSeededDepartment(t *testing.T) {
	loader := fixture.New(snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
	loader.Seed("dept-cs", fixture.Department{
		Subjects: []snapshot.Subject{{ID: 1, Name: "X", Credits: 1, Type: snapshot.Theory}},
	})

	subjects, err := loader.Subjects(context.Background(), "dept-cs")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "X", subjects[0].Name)

	constraints, err := loader.Constraints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, constraints.LunchBreakPeriod)
}

func TestLoaderReturnsEmptyForUnseededDepartment(t *testing.T) {
	loader := fixture.New(snapshot.Constraints{})
	subjects, err := loader.Subjects(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, subjects)
}
