// Package schedule holds the incremental, append/pop schedule value the
// backtracking search builds up and tears down during recursion, plus the
// constant-time occupancy indices the domain generator needs.
package schedule

import (
	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Placement is a Session with concrete timeslot, faculty, and room assignments.
type Placement struct {
	Session   lecture.Session
	Timeslot  snapshot.Timeslot
	FacultyID int
	RoomID    int
}

// Schedule is the Timeslot -> {Placement} mapping built during search. It
// is owned by the current recursive frame: Append/Pop are explicit and no
// reference to it escapes outside the frame that mutated it.
type Schedule struct {
	byTimeslot  map[snapshot.Timeslot][]Placement
	batchAt     map[snapshot.Timeslot]map[int]bool
	facultyAt   map[snapshot.Timeslot]map[int]bool
	roomAt      map[snapshot.Timeslot]map[int]bool
	facultyDay  map[int]map[int]int // facultyID -> day -> count
	placements  []Placement
}

// New builds an empty schedule.
func New() *Schedule {
	return &Schedule{
		byTimeslot: make(map[snapshot.Timeslot][]Placement),
		batchAt:    make(map[snapshot.Timeslot]map[int]bool),
		facultyAt:  make(map[snapshot.Timeslot]map[int]bool),
		roomAt:     make(map[snapshot.Timeslot]map[int]bool),
		facultyDay: make(map[int]map[int]int),
	}
}

// At returns the placements occupying a timeslot.
func (s *Schedule) At(ts snapshot.Timeslot) []Placement {
	return s.byTimeslot[ts]
}

// BatchBusy reports whether the batch already has a placement at ts.
func (s *Schedule) BatchBusy(ts snapshot.Timeslot, batchID int) bool {
	return s.batchAt[ts] != nil && s.batchAt[ts][batchID]
}

// FacultyBusy reports whether the faculty member already has a placement at ts.
func (s *Schedule) FacultyBusy(ts snapshot.Timeslot, facultyID int) bool {
	return s.facultyAt[ts] != nil && s.facultyAt[ts][facultyID]
}

// RoomBusy reports whether the room is already occupied at ts (invariant:
// at most one batch per room per timeslot, conservative per spec's open
// question on shared Theory rooms).
func (s *Schedule) RoomBusy(ts snapshot.Timeslot, roomID int) bool {
	return s.roomAt[ts] != nil && s.roomAt[ts][roomID]
}

// FacultyDailyCount returns how many placements a faculty member has on the given day.
func (s *Schedule) FacultyDailyCount(facultyID, day int) int {
	if s.facultyDay[facultyID] == nil {
		return 0
	}
	return s.facultyDay[facultyID][day]
}

// Append adds a placement to the schedule, updating all occupancy indices.
func (s *Schedule) Append(p Placement) {
	s.byTimeslot[p.Timeslot] = append(s.byTimeslot[p.Timeslot], p)
	s.placements = append(s.placements, p)

	if s.batchAt[p.Timeslot] == nil {
		s.batchAt[p.Timeslot] = make(map[int]bool)
	}
	s.batchAt[p.Timeslot][p.Session.BatchID] = true

	if s.facultyAt[p.Timeslot] == nil {
		s.facultyAt[p.Timeslot] = make(map[int]bool)
	}
	s.facultyAt[p.Timeslot][p.FacultyID] = true

	if s.roomAt[p.Timeslot] == nil {
		s.roomAt[p.Timeslot] = make(map[int]bool)
	}
	s.roomAt[p.Timeslot][p.RoomID] = true

	if s.facultyDay[p.FacultyID] == nil {
		s.facultyDay[p.FacultyID] = make(map[int]int)
	}
	s.facultyDay[p.FacultyID][p.Timeslot.Day]++
}

// Pop removes the most recently appended placement, undoing Append's index
// updates. The caller is responsible for only popping what it appended
// (classic append-then-pop recursion discipline).
func (s *Schedule) Pop() {
	n := len(s.placements)
	if n == 0 {
		return
	}
	p := s.placements[n-1]
	s.placements = s.placements[:n-1]

	slots := s.byTimeslot[p.Timeslot]
	s.byTimeslot[p.Timeslot] = slots[:len(slots)-1]

	delete(s.batchAt[p.Timeslot], p.Session.BatchID)
	delete(s.facultyAt[p.Timeslot], p.FacultyID)
	delete(s.roomAt[p.Timeslot], p.RoomID)

	s.facultyDay[p.FacultyID][p.Timeslot.Day]--
}

// Placements returns every placement made so far, in append order.
func (s *Schedule) Placements() []Placement {
	return append([]Placement(nil), s.placements...)
}

// Len reports how many placements the schedule currently holds.
func (s *Schedule) Len() int {
	return len(s.placements)
}
