package sqlstore

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStoreSubjects(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := New(db)

	rows := sqlmock.NewRows([]string{"id", "name", "credits", "type"}).
		AddRow(1, "Data Structures", 3, "Theory")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, credits, type FROM subjects WHERE department_id = $1 ORDER BY id`)).
		WithArgs("dept-cs").
		WillReturnRows(rows)

	subjects, err := store.Subjects(context.Background(), "dept-cs")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, snapshot.Theory, subjects[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFacultyGroupsExpertiseByFaculty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := New(db)

	rows := sqlmock.NewRows([]string{"id", "name", "subject_id"}).
		AddRow(1, "Dr. Rao", 1).
		AddRow(1, "Dr. Rao", 2)
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT f.id AS id, f.name AS name, e.subject_id AS subject_id
		FROM faculty f
		JOIN faculty_expertise e ON e.faculty_id = f.id
		WHERE f.department_id = $1
		ORDER BY f.id`)).
		WithArgs("dept-cs").
		WillReturnRows(rows)

	faculty, err := store.Faculty(context.Background(), "dept-cs")
	require.NoError(t, err)
	require.Len(t, faculty, 1)
	assert.True(t, faculty[0].Teaches(1))
	assert.True(t, faculty[0].Teaches(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreConstraints(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := New(db)

	rows := sqlmock.NewRows([]string{"lunch_break_period", "max_lectures_per_day_faculty"}).
		AddRow(4, 4)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT lunch_break_period, max_lectures_per_day_faculty FROM scheduling_constraints LIMIT 1`)).
		WillReturnRows(rows)

	constraints, err := store.Constraints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, constraints.LunchBreakPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}
