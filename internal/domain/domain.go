// Package domain enumerates, for a (session, timeslot, partial schedule)
// triple, every (faculty, room) pair that still satisfies the hard
// invariants of the data model if appended to the schedule.
package domain

import (
	"math/rand"

	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/schedule"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Assignment is one candidate (faculty, room) pair for a session at a timeslot.
type Assignment struct {
	FacultyID int
	RoomID    int
}

// Candidates returns every admissible (faculty, room) pair for placing
// sess at ts given the current sched, honoring invariants 2-7:
//
//	(a) the lunch period is never assignable (handled by the caller, which
//	    must not invoke Candidates for the lunch timeslot)
//	(b) a batch already placed at ts yields no candidates
//	(c) candidate faculty must teach the subject, be free at ts, and be
//	    under the daily cap
//	(d) candidate rooms must match the subject's type, have capacity for
//	    the batch, and be free at ts
//
// If rng is non-nil the faculty and room orderings are shuffled
// (deterministically, given a seeded rng) to diversify search paths;
// a nil rng yields ascending-id order.
func Candidates(snap *snapshot.Snapshot, sched *schedule.Schedule, sess lecture.Session, ts snapshot.Timeslot, rng *rand.Rand) []Assignment {
	if sched.BatchBusy(ts, sess.BatchID) {
		return nil
	}

	batch, ok := snap.Batch(sess.BatchID)
	if !ok {
		return nil
	}
	subject, ok := snap.Subject(sess.SubjectID)
	if !ok {
		return nil
	}

	facultyIDs := snap.FacultyIDs()
	candidateFaculty := make([]int, 0, len(facultyIDs))
	for _, facultyID := range facultyIDs {
		f, _ := snap.Faculty(facultyID)
		if !f.Teaches(sess.SubjectID) {
			continue
		}
		if sched.FacultyBusy(ts, facultyID) {
			continue
		}
		if sched.FacultyDailyCount(facultyID, ts.Day) >= snap.Constraints.MaxLecturesPerDayFaculty {
			continue
		}
		candidateFaculty = append(candidateFaculty, facultyID)
	}
	if len(candidateFaculty) == 0 {
		return nil
	}

	roomIDs := snap.RoomIDs()
	candidateRooms := make([]int, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		r, _ := snap.Room(roomID)
		if r.Type != subject.Type {
			continue
		}
		if r.Capacity < batch.Strength {
			continue
		}
		if sched.RoomBusy(ts, roomID) {
			continue
		}
		candidateRooms = append(candidateRooms, roomID)
	}
	if len(candidateRooms) == 0 {
		return nil
	}

	if rng != nil {
		rng.Shuffle(len(candidateFaculty), func(i, j int) { candidateFaculty[i], candidateFaculty[j] = candidateFaculty[j], candidateFaculty[i] })
		rng.Shuffle(len(candidateRooms), func(i, j int) { candidateRooms[i], candidateRooms[j] = candidateRooms[j], candidateRooms[i] })
	}

	assignments := make([]Assignment, 0, len(candidateFaculty)*len(candidateRooms))
	for _, facultyID := range candidateFaculty {
		for _, roomID := range candidateRooms {
			assignments = append(assignments, Assignment{FacultyID: facultyID, RoomID: roomID})
		}
	}
	return assignments
}
