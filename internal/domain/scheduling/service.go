// Package scheduling manages appointments: booking against the
// patient and doctor registers and filtering the schedule by doctor
// and day.
package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
	"github.com/healcare/clinic/pkg/shortid"
)

// AppointmentInput carries the booking form fields. Datetime arrives
// as text from a datetime-local control.
type AppointmentInput struct {
	PatientID string `json:"patientId" form:"patientId"`
	DoctorID  string `json:"doctorId" form:"doctorId"`
	Datetime  string `json:"datetime" form:"datetime"`
	Status    string `json:"status" form:"status"`
}

// Filter narrows the schedule. Both fields are optional and combine
// with AND when given.
type Filter struct {
	DoctorID string
	Date     string // calendar day, 2006-01-02
}

// Row is an appointment joined with the names behind its references.
// A reference whose register entry has since vanished renders as a
// dash.
type Row struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	DoctorID    string    `json:"doctorId"`
	DoctorName  string    `json:"doctorName"`
	Datetime    time.Time `json:"datetime"`
	Status      string    `json:"status"`
}

type Service struct {
	st  *state.State
	now func() time.Time
}

func NewService(st *state.State) *Service {
	return &Service{st: st, now: time.Now}
}

var validStatuses = map[string]bool{
	state.ApptScheduled: true,
	state.ApptCompleted: true,
	state.ApptCancelled: true,
}

// datetime-local submits without a zone; RFC 3339 covers API clients.
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (s *Service) parseDatetime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return s.now()
}

func normalizeStatus(raw string) string {
	if validStatuses[raw] {
		return raw
	}
	return state.ApptScheduled
}

func (s *Service) Create(ctx context.Context, in AppointmentInput) (state.Appointment, error) {
	a := state.Appointment{
		ID:        shortid.New("a"),
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Datetime:  s.parseDatetime(in.Datetime),
		Status:    normalizeStatus(in.Status),
	}
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Appts = append(doc.Appts, a)
	})
	return a, err
}

func (s *Service) Update(ctx context.Context, id string, in AppointmentInput) (state.Appointment, bool, error) {
	var updated state.Appointment
	found := false
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		for i := range doc.Appts {
			if doc.Appts[i].ID != id {
				continue
			}
			doc.Appts[i].PatientID = in.PatientID
			doc.Appts[i].DoctorID = in.DoctorID
			doc.Appts[i].Datetime = s.parseDatetime(in.Datetime)
			doc.Appts[i].Status = normalizeStatus(in.Status)
			updated = doc.Appts[i]
			found = true
			return
		}
	})
	return updated, found, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.st.Mutate(ctx, func(doc *state.Document) {
		kept := doc.Appts[:0]
		for _, a := range doc.Appts {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		doc.Appts = kept
	})
}

// List returns appointment rows matching the filter. Day comparison
// is in UTC so a given date means the same slice of the schedule no
// matter where the server runs.
func (s *Service) List(ctx context.Context, f Filter) []Row {
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

		out = make([]Row, 0, len(doc.Appts))
		for _, a := range doc.Appts {
			if f.DoctorID != "" && a.DoctorID != f.DoctorID {
				continue
			}
			if f.Date != "" && a.Datetime.UTC().Format("2006-01-02") != f.Date {
				continue
			}
			out = append(out, toRow(a, patients, doctors))
		}
	})
	return out
}

func toRow(a state.Appointment, patients, doctors map[string]string) Row {
	pname, ok := patients[a.PatientID]
	if !ok {
		pname = "—"
	}
	dname, ok := doctors[a.DoctorID]
	if !ok {
		dname = "—"
	}
	return Row{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: pname,
		DoctorID:    a.DoctorID,
		DoctorName:  dname,
		Datetime:    a.Datetime,
		Status:      a.Status,
	}
}
