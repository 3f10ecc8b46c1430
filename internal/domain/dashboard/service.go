// Package dashboard computes the landing-page numbers and the recent
// appointments table.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
)

// Stats are the three headline counters. Upcoming counts only
// appointments strictly in the future, regardless of status.
type Stats struct {
	Patients int `json:"patients"`
	Doctors  int `json:"doctors"`
	Upcoming int `json:"upcoming"`
}

// Row is a recent-appointments table row with register names resolved.
type Row struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Datetime    time.Time `json:"datetime"`
	Status      string    `json:"status"`
}

// recentLimit caps the dashboard table.
const recentLimit = 6

type Service struct {
	st  *state.State
	now func() time.Time
}

func NewService(st *state.State) *Service {
	return &Service{st: st, now: time.Now}
}

// Stats also restores the sample data on an empty register, since the
// dashboard is the first thing loaded.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if err := s.st.SeedIfEmpty(ctx); err != nil {
		return Stats{}, err
	}
	var out Stats
	now := s.now()
	s.st.View(func(doc *state.Document) {
		out.Patients = len(doc.Patients)
		out.Doctors = len(doc.Doctors)
		for _, a := range doc.Appts {
			if a.Datetime.After(now) {
				out.Upcoming++
			}
		}
	})
	return out, nil
}

// Recent returns the latest appointments, newest first, capped at six.
func (s *Service) Recent(ctx context.Context) []Row {
	var out []Row
	s.st.View(func(doc *state.Document) {
		patients := make(map[string]string, len(doc.Patients))
		for _, p := range doc.Patients {
			patients[p.ID] = p.Name
		}
		doctors := make(map[string]string, len(doc.Doctors))
		for _, d := range doc.Doctors {
			doctors[d.ID] = d.Name
		}

		appts := make([]state.Appointment, len(doc.Appts))
		copy(appts, doc.Appts)
		sort.SliceStable(appts, func(i, j int) bool {
			return appts[i].Datetime.After(appts[j].Datetime)
		})
		if len(appts) > recentLimit {
			appts = appts[:recentLimit]
		}

		out = make([]Row, 0, len(appts))
		for _, a := range appts {
			pname, ok := patients[a.PatientID]
			if !ok {
				pname = "—"
			}
			dname, ok := doctors[a.DoctorID]
			if !ok {
				dname = "—"
			}
			out = append(out, Row{
				ID:          a.ID,
				PatientName: pname,
				DoctorName:  dname,
				Datetime:    a.Datetime,
				Status:      a.Status,
			})
		}
	})
	return out
}
