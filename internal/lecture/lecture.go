// Package lecture expands a department's batch/subject catalog into the
// flat queue of individual one-hour sessions the solver must place.
package lecture

import (
	"sort"

	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Session is one lecture-hour of a subject attended by one batch — the
// placement unit the solver assigns a timeslot, faculty, and room to.
type Session struct {
	BatchID   int
	SubjectID int
}

// Expand emits, for every batch and every subject it enrolls, one Session
// per credit the subject carries. No randomness is introduced here; the
// returned order is batch-id-major, subject-id-minor so that downstream
// ordering heuristics receive a deterministic base sequence to reorder.
func Expand(snap *snapshot.Snapshot) []Session {
	var sessions []Session
	for _, batchID := range snap.BatchIDs() {
		batch, _ := snap.Batch(batchID)
		subjectIDs := make([]int, 0, len(batch.Subjects))
		for subjectID := range batch.Subjects {
			subjectIDs = append(subjectIDs, subjectID)
		}
		sort.Ints(subjectIDs)
		for _, subjectID := range subjectIDs {
			subject, ok := snap.Subject(subjectID)
			if !ok {
				continue
			}
			for i := 0; i < subject.Credits; i++ {
				sessions = append(sessions, Session{BatchID: batchID, SubjectID: subjectID})
			}
		}
	}
	return sessions
}
