// Package cost scores a complete schedule against the soft constraints:
// gaps and long streaks within a faculty member's or batch's day. Lower
// is better; the function is pure and side-effect-free.
package cost

import (
	"sort"

	"github.com/noah-isme/timetable-solver/internal/schedule"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Evaluate returns the total soft-constraint cost of sched, summed across
// every (faculty, day) and (batch, day) pair.
func Evaluate(snap *snapshot.Snapshot, sched *schedule.Schedule) int {
	facultyPeriods := make(map[[2]int][]int) // [facultyID, day] -> periods
	batchPeriods := make(map[[2]int][]int)   // [batchID, day] -> periods

	for _, p := range sched.Placements() {
		fKey := [2]int{p.FacultyID, p.Timeslot.Day}
		facultyPeriods[fKey] = append(facultyPeriods[fKey], p.Timeslot.Period)

		bKey := [2]int{p.Session.BatchID, p.Timeslot.Day}
		batchPeriods[bKey] = append(batchPeriods[bKey], p.Timeslot.Period)
	}

	total := 0
	for _, periods := range facultyPeriods {
		total += dayPenalty(periods)
	}
	for _, periods := range batchPeriods {
		total += dayPenalty(periods)
	}
	return total
}

// dayPenalty scores one day's worth of periods for a single faculty
// member or batch: gap penalty plus long-streak penalty.
func dayPenalty(periods []int) int {
	if len(periods) < 2 {
		return 0
	}
	sorted := append([]int(nil), periods...)
	sort.Ints(sorted)

	penalty := 0

	// Gap penalty: for each consecutive pair with difference g > 1, add g-1.
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1] - sorted[i]
		if gap > 1 {
			penalty += gap - 1
		}
	}

	// Long-streak penalty: for any run of k > 2 truly-consecutive periods
	// (difference exactly 1), add 2*(k-2).
	streak := 1
	for i := 1; i <= len(sorted); i++ {
		consecutive := i < len(sorted) && sorted[i]-sorted[i-1] == 1
		if consecutive {
			streak++
			continue
		}
		if streak > 2 {
			penalty += 2 * (streak - 2)
		}
		streak = 1
	}

	return penalty
}
