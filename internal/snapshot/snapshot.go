package snapshot

import (
	"context"
	"fmt"
	"sort"

	appErrors "github.com/noah-isme/timetable-solver/pkg/errors"
)

// Snapshot is an immutable, id-indexed view of a department's catalog plus
// its scheduling rules. It never mutates once constructed; the solver
// looks up every entity by id in constant time.
type Snapshot struct {
	subjects map[int]Subject
	faculty  map[int]Faculty
	rooms    map[int]Room
	batches  map[int]Batch

	subjectIDs []int
	facultyIDs []int
	roomIDs    []int
	batchIDs   []int

	Constraints Constraints
}

// New validates and indexes the given entities. It fails with InvalidInput
// when any credits < 1, any batch or faculty references an unknown
// subject, or the set of batches is empty.
func New(subjects []Subject, faculty []Faculty, rooms []Room, batches []Batch, constraints Constraints) (*Snapshot, error) {
	if len(batches) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "at least one batch is required")
	}

	subjectIndex := make(map[int]Subject, len(subjects))
	subjectIDs := make([]int, 0, len(subjects))
	for _, s := range subjects {
		if s.Credits < 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf("subject %d: credits must be >= 1", s.ID))
		}
		subjectIndex[s.ID] = s
		subjectIDs = append(subjectIDs, s.ID)
	}

	facultyIndex := make(map[int]Faculty, len(faculty))
	facultyIDs := make([]int, 0, len(faculty))
	for _, f := range faculty {
		for subjectID := range f.Expertise {
			if _, ok := subjectIndex[subjectID]; !ok {
				return nil, appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf("faculty %d: expertise references unknown subject %d", f.ID, subjectID))
			}
		}
		facultyIndex[f.ID] = f
		facultyIDs = append(facultyIDs, f.ID)
	}

	roomIndex := make(map[int]Room, len(rooms))
	roomIDs := make([]int, 0, len(rooms))
	for _, r := range rooms {
		roomIndex[r.ID] = r
		roomIDs = append(roomIDs, r.ID)
	}

	batchIndex := make(map[int]Batch, len(batches))
	batchIDs := make([]int, 0, len(batches))
	for _, b := range batches {
		for subjectID := range b.Subjects {
			if _, ok := subjectIndex[subjectID]; !ok {
				return nil, appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf("batch %d: subjects references unknown subject %d", b.ID, subjectID))
			}
		}
		batchIndex[b.ID] = b
		batchIDs = append(batchIDs, b.ID)
	}

	sort.Ints(subjectIDs)
	sort.Ints(facultyIDs)
	sort.Ints(roomIDs)
	sort.Ints(batchIDs)

	return &Snapshot{
		subjects:    subjectIndex,
		faculty:     facultyIndex,
		rooms:       roomIndex,
		batches:     batchIndex,
		subjectIDs:  subjectIDs,
		facultyIDs:  facultyIDs,
		roomIDs:     roomIDs,
		batchIDs:    batchIDs,
		Constraints: constraints,
	}, nil
}

// Subject looks up a subject by id.
func (s *Snapshot) Subject(id int) (Subject, bool) {
	v, ok := s.subjects[id]
	return v, ok
}

// Faculty looks up a faculty member by id.
func (s *Snapshot) Faculty(id int) (Faculty, bool) {
	v, ok := s.faculty[id]
	return v, ok
}

// Room looks up a room by id.
func (s *Snapshot) Room(id int) (Room, bool) {
	v, ok := s.rooms[id]
	return v, ok
}

// Batch looks up a batch by id.
func (s *Snapshot) Batch(id int) (Batch, bool) {
	v, ok := s.batches[id]
	return v, ok
}

// BatchIDs returns every batch id in ascending order.
func (s *Snapshot) BatchIDs() []int { return append([]int(nil), s.batchIDs...) }

// FacultyIDs returns every faculty id in ascending order.
func (s *Snapshot) FacultyIDs() []int { return append([]int(nil), s.facultyIDs...) }

// RoomIDs returns every room id in ascending order.
func (s *Snapshot) RoomIDs() []int { return append([]int(nil), s.roomIDs...) }

// SubjectIDs returns every subject id in ascending order.
func (s *Snapshot) SubjectIDs() []int { return append([]int(nil), s.subjectIDs...) }

// Loader exposes the four department-scoped lookups plus the
// department-independent constraints lookup the driver needs to build a
// Snapshot. Fixtures and production stores both satisfy this contract;
// the core never assumes a particular backing store.
type Loader interface {
	Subjects(ctx context.Context, departmentID string) ([]Subject, error)
	Faculty(ctx context.Context, departmentID string) ([]Faculty, error)
	Rooms(ctx context.Context, departmentID string) ([]Room, error)
	Batches(ctx context.Context, departmentID string) ([]Batch, error)
	Constraints(ctx context.Context) (Constraints, error)
}
