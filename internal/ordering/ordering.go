// Package ordering assigns each lecture session a scheduling priority
// using a most-constrained-variable heuristic: sessions whose subject has
// fewer qualified faculty are placed first.
package ordering

import (
	"math/rand"
	"sort"

	"github.com/noah-isme/timetable-solver/internal/lecture"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Prioritize returns sessions ordered by ascending faculty count for their
// subject (most constrained first). Ties break deterministically by
// subject id then batch id unless shuffleTies is set, in which case a
// seeded PRNG shuffles within each tied priority bucket so the same seed
// always reproduces the same order.
func Prioritize(sessions []lecture.Session, snap *snapshot.Snapshot, seed int64, shuffleTies bool) []lecture.Session {
	priority := facultyCountBySubject(snap)

	ordered := make([]lecture.Session, len(sessions))
	copy(ordered, sessions)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := priority[ordered[i].SubjectID], priority[ordered[j].SubjectID]
		if pi != pj {
			return pi < pj
		}
		if ordered[i].SubjectID != ordered[j].SubjectID {
			return ordered[i].SubjectID < ordered[j].SubjectID
		}
		return ordered[i].BatchID < ordered[j].BatchID
	})

	if shuffleTies {
		shuffleWithinTies(ordered, priority, rand.New(rand.NewSource(seed)))
	}

	return ordered
}

func facultyCountBySubject(snap *snapshot.Snapshot) map[int]int {
	counts := make(map[int]int, len(snap.SubjectIDs()))
	for _, subjectID := range snap.SubjectIDs() {
		counts[subjectID] = 0
	}
	for _, facultyID := range snap.FacultyIDs() {
		f, _ := snap.Faculty(facultyID)
		for subjectID := range f.Expertise {
			counts[subjectID]++
		}
	}
	return counts
}

// shuffleWithinTies performs a Fisher-Yates shuffle restricted to
// contiguous runs of sessions sharing the same priority, preserving the
// relative order of priority buckets themselves.
func shuffleWithinTies(sessions []lecture.Session, priority map[int]int, rng *rand.Rand) {
	start := 0
	for start < len(sessions) {
		end := start + 1
		for end < len(sessions) && priority[sessions[end].SubjectID] == priority[sessions[start].SubjectID] {
			end++
		}
		bucket := sessions[start:end]
		rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
		start = end
	}
}
