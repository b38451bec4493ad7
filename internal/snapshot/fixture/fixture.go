// Package fixture is an in-memory snapshot.Loader keyed by department id,
// useful for tests and local demos where no database is wired up.
package fixture

import (
	"context"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Department holds one department's catalog for the fixture loader.
type Department struct {
	Subjects []snapshot.Subject
	Faculty  []snapshot.Faculty
	Rooms    []snapshot.Room
	Batches  []snapshot.Batch
}

// Loader serves Department values held entirely in memory.
type Loader struct {
	departments map[string]Department
	constraints snapshot.Constraints
}

// New builds a Loader. constraints apply to every department served.
func New(constraints snapshot.Constraints) *Loader {
	return &Loader{departments: make(map[string]Department), constraints: constraints}
}

// Seed registers departmentID's catalog, overwriting any previous entry.
func (l *Loader) Seed(departmentID string, dept Department) {
	l.departments[departmentID] = dept
}

func (l *Loader) Subjects(_ context.Context, departmentID string) ([]snapshot.Subject, error) {
	return l.departments[departmentID].Subjects, nil
}

func (l *Loader) Faculty(_ context.Context, departmentID string) ([]snapshot.Faculty, error) {
	return l.departments[departmentID].Faculty, nil
}

func (l *Loader) Rooms(_ context.Context, departmentID string) ([]snapshot.Room, error) {
	return l.departments[departmentID].Rooms, nil
}

func (l *Loader) Batches(_ context.Context, departmentID string) ([]snapshot.Batch, error) {
	return l.departments[departmentID].Batches, nil
}

func (l *Loader) Constraints(_ context.Context) (snapshot.Constraints, error) {
	return l.constraints, nil
}
