// Package sqlstore implements snapshot.Loader over a read-only Postgres
// schema. It never writes: every query is a SELECT scoped by department
// id, reflecting that the persistent CRUD store for these entities is
// someone else's concern.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Store reads department snapshots from Postgres.
type Store struct {
	db *sqlx.DB
}

// New builds a Store.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type subjectRow struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	Credits int    `db:"credits"`
	Type    string `db:"type"`
}

// Subjects returns every subject offered by departmentID.
func (s *Store) Subjects(ctx context.Context, departmentID string) ([]snapshot.Subject, error) {
	const query = `SELECT id, name, credits, type FROM subjects WHERE department_id = $1 ORDER BY id`
	var rows []subjectRow
	if err := s.db.SelectContext(ctx, &rows, query, departmentID); err != nil {
		return nil, fmt.Errorf("list subjects for department %s: %w", departmentID, err)
	}
	subjects := make([]snapshot.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, snapshot.Subject{
			ID:      r.ID,
			Name:    r.Name,
			Credits: r.Credits,
			Type:    snapshot.SubjectType(r.Type),
		})
	}
	return subjects, nil
}

type facultyRow struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	SubjectID   int    `db:"subject_id"`
}

// Faculty returns every faculty member in departmentID along with the
// subjects they are qualified to teach, flattened one row per (faculty,
// subject) pair and regrouped here. A faculty member with no expertise
// rows is not returned.
func (s *Store) Faculty(ctx context.Context, departmentID string) ([]snapshot.Faculty, error) {
	const query = `
		SELECT f.id AS id, f.name AS name, e.subject_id AS subject_id
		FROM faculty f
		JOIN faculty_expertise e ON e.faculty_id = f.id
		WHERE f.department_id = $1
		ORDER BY f.id`
	var rows []facultyRow
	if err := s.db.SelectContext(ctx, &rows, query, departmentID); err != nil {
		return nil, fmt.Errorf("list faculty for department %s: %w", departmentID, err)
	}

	byID := make(map[int]*snapshot.Faculty)
	order := make([]int, 0)
	for _, r := range rows {
		f, ok := byID[r.ID]
		if !ok {
			f = &snapshot.Faculty{ID: r.ID, Name: r.Name, Expertise: map[int]struct{}{}}
			byID[r.ID] = f
			order = append(order, r.ID)
		}
		f.Expertise[r.SubjectID] = struct{}{}
	}

	faculty := make([]snapshot.Faculty, 0, len(order))
	for _, id := range order {
		faculty = append(faculty, *byID[id])
	}
	return faculty, nil
}

type roomRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Type     string `db:"type"`
}

// Rooms returns every room in departmentID.
func (s *Store) Rooms(ctx context.Context, departmentID string) ([]snapshot.Room, error) {
	const query = `SELECT id, name, capacity, type FROM rooms WHERE department_id = $1 ORDER BY id`
	var rows []roomRow
	if err := s.db.SelectContext(ctx, &rows, query, departmentID); err != nil {
		return nil, fmt.Errorf("list rooms for department %s: %w", departmentID, err)
	}
	rooms := make([]snapshot.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, snapshot.Room{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
			Type:     snapshot.SubjectType(r.Type),
		})
	}
	return rooms, nil
}

type batchRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Strength int    `db:"strength"`
	SubjectID int   `db:"subject_id"`
}

// Batches returns every batch in departmentID along with its enrolled
// subjects, flattened one row per (batch, subject) pair and regrouped here.
// A batch with no enrolled subjects is not returned.
func (s *Store) Batches(ctx context.Context, departmentID string) ([]snapshot.Batch, error) {
	const query = `
		SELECT b.id AS id, b.name AS name, b.strength AS strength, e.subject_id AS subject_id
		FROM batches b
		JOIN batch_subjects e ON e.batch_id = b.id
		WHERE b.department_id = $1
		ORDER BY b.id`
	var rows []batchRow
	if err := s.db.SelectContext(ctx, &rows, query, departmentID); err != nil {
		return nil, fmt.Errorf("list batches for department %s: %w", departmentID, err)
	}

	byID := make(map[int]*snapshot.Batch)
	order := make([]int, 0)
	for _, r := range rows {
		b, ok := byID[r.ID]
		if !ok {
			b = &snapshot.Batch{ID: r.ID, Name: r.Name, Strength: r.Strength, Subjects: map[int]struct{}{}}
			byID[r.ID] = b
			order = append(order, r.ID)
		}
		b.Subjects[r.SubjectID] = struct{}{}
	}

	batches := make([]snapshot.Batch, 0, len(order))
	for _, id := range order {
		batches = append(batches, *byID[id])
	}
	return batches, nil
}

// Constraints returns the single global constraints row. Departments share
// one constraints configuration in this schema.
func (s *Store) Constraints(ctx context.Context) (snapshot.Constraints, error) {
	const query = `SELECT lunch_break_period, max_lectures_per_day_faculty FROM scheduling_constraints LIMIT 1`
	var c snapshot.Constraints
	if err := s.db.GetContext(ctx, &c, query); err != nil {
		return snapshot.Constraints{}, fmt.Errorf("load scheduling constraints: %w", err)
	}
	return c, nil
}
