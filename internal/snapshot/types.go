// Package snapshot packages a single department's catalog of subjects,
// faculty, rooms, and batches plus its scheduling rules into an
// immutable, id-indexed view consumed by the solver.
package snapshot

// SubjectType distinguishes theory lectures from lab sessions; it governs
// room compatibility (invariant 3 of the data model).
type SubjectType string

const (
	Theory SubjectType = "Theory"
	Lab    SubjectType = "Lab"
)

// Subject is one academic subject taught to one or more batches.
// Credits is the number of one-hour sessions required per week.
type Subject struct {
	ID      int
	Name    string
	Credits int
	Type    SubjectType
}

// Faculty is a teaching staff member and the set of subjects they can teach.
type Faculty struct {
	ID        int
	Name      string
	Expertise map[int]struct{}
}

// Teaches reports whether the faculty member may teach the given subject.
func (f Faculty) Teaches(subjectID int) bool {
	_, ok := f.Expertise[subjectID]
	return ok
}

// Room is a physical teaching space.
type Room struct {
	ID       int
	Name     string
	Capacity int
	Type     SubjectType
}

// Batch is a group of students attending a fixed set of subjects together.
type Batch struct {
	ID       int
	Name     string
	Strength int
	Subjects map[int]struct{}
}

// Enrolls reports whether the batch attends the given subject.
func (b Batch) Enrolls(subjectID int) bool {
	_, ok := b.Subjects[subjectID]
	return ok
}

// Constraints carries the department-independent scheduling rules. The db
// tags let sqlstore scan it directly from a query row; nothing elsewhere
// in the core depends on that being possible.
type Constraints struct {
	LunchBreakPeriod         int `db:"lunch_break_period" json:"lunchBreakPeriod"`
	MaxLecturesPerDayFaculty int `db:"max_lectures_per_day_faculty" json:"maxLecturesPerDayFaculty"`
}

// Timeslot grid, fixed for the core (spec §6). Day is 1=Monday..5=Friday,
// Period is 1..7 indexing into PeriodLabels.
const (
	Days        = 5
	PeriodCount = 7
)

// PeriodLabels gives the human-readable hour range for each period index
// (1-based; PeriodLabels[i-1] is period i).
var PeriodLabels = [PeriodCount]string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
}

// DayNames gives the human-readable name for each day index (1-based).
var DayNames = [Days]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Timeslot is a (day, period) coordinate on the fixed weekly grid.
type Timeslot struct {
	Day    int
	Period int
}

// Label renders the timeslot using DayNames/PeriodLabels.
func (t Timeslot) Label() string {
	day := "?"
	if t.Day >= 1 && t.Day <= Days {
		day = DayNames[t.Day-1]
	}
	period := "?"
	if t.Period >= 1 && t.Period <= PeriodCount {
		period = PeriodLabels[t.Period-1]
	}
	return day + " " + period
}

// AllTimeslots returns every (day, period) coordinate on the grid, in
// deterministic day-major, period-minor order.
func AllTimeslots() []Timeslot {
	slots := make([]Timeslot, 0, Days*PeriodCount)
	for day := 1; day <= Days; day++ {
		for period := 1; period <= PeriodCount; period++ {
			slots = append(slots, Timeslot{Day: day, Period: period})
		}
	}
	return slots
}
