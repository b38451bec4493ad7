// Package format projects the internal schedule into the flat record
// sequence the driver returns to its caller, plus a CSV rendering of the
// same records for human consumption.
package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/noah-isme/timetable-solver/internal/schedule"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Record is one placed session, flattened for presentation.
type Record struct {
	Day         int    `json:"day"`
	Period      int    `json:"period"`
	Timeslot    string `json:"timeslot"`
	BatchName   string `json:"batch"`
	SubjectName string `json:"subject"`
	FacultyName string `json:"faculty"`
	RoomName    string `json:"room"`
}

// Flatten converts sched's Timeslot -> {Placement} mapping into a flat
// sequence of Records. Order is not part of the contract; callers that
// need a stable presentation should sort by (Day, Period).
func Flatten(snap *snapshot.Snapshot, sched *schedule.Schedule) []Record {
	placements := sched.Placements()
	records := make([]Record, 0, len(placements))
	for _, p := range placements {
		batch, _ := snap.Batch(p.Session.BatchID)
		subject, _ := snap.Subject(p.Session.SubjectID)
		faculty, _ := snap.Faculty(p.FacultyID)
		room, _ := snap.Room(p.RoomID)

		records = append(records, Record{
			Day:         p.Timeslot.Day,
			Period:      p.Timeslot.Period,
			Timeslot:    p.Timeslot.Label(),
			BatchName:   batch.Name,
			SubjectName: subject.Name,
			FacultyName: faculty.Name,
			RoomName:    room.Name,
		})
	}
	return records
}

// CSV renders records as CSV bytes with a header row. It writes with
// encoding/csv directly, with no dataset abstraction or generic exporter,
// because a timetable's columns never vary.
func CSV(records []Record) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{"day", "period", "timeslot", "batch", "subject", "faculty", "room"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			fmt.Sprintf("%d", r.Day),
			fmt.Sprintf("%d", r.Period),
			r.Timeslot,
			r.BatchName,
			r.SubjectName,
			r.FacultyName,
			r.RoomName,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
