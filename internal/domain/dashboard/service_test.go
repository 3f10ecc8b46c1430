package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := state.Open(context.Background(), state.NewMemStore())
	if err != nil {
		t.Fatalf("opening state: %v", err)
	}
	svc := NewService(st)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestStats_Counts(t *testing.T) {
	svc := newTestService(t)
	svc.st.Mutate(context.Background(), func(doc *state.Document) {
		doc.Patients = append(doc.Patients,
			state.Patient{ID: "p1"}, state.Patient{ID: "p2"}, state.Patient{ID: "p3"})
		doc.Doctors = append(doc.Doctors, state.Doctor{ID: "d1"})
		doc.Appts = append(doc.Appts,
			state.Appointment{ID: "a1", Datetime: testNow.Add(time.Hour)},
			state.Appointment{ID: "a2", Datetime: testNow.Add(-time.Hour)},
			state.Appointment{ID: "a3", Datetime: testNow.Add(48 * time.Hour), Status: state.ApptCancelled},
		)
	})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Patients != 3 || stats.Doctors != 1 {
		t.Errorf("unexpected register counts: %+v", stats)
	}
	// Future appointments count whatever their status is.
	if stats.Upcoming != 2 {
		t.Errorf("expected 2 upcoming, got %d", stats.Upcoming)
	}
}

func TestStats_SeedsWhenEmpty(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Patients == 0 {
		t.Error("expected sample data on empty register")
	}
}

func TestRecent_NewestFirstCapped(t *testing.T) {
	svc := newTestService(t)
	svc.st.Mutate(context.Background(), func(doc *state.Document) {
		doc.Patients = append(doc.Patients, state.Patient{ID: "p1", Name: "Ravi"})
		doc.Doctors = append(doc.Doctors, state.Doctor{ID: "d1", Name: "Dr. Nair"})
		for i := 0; i < 8; i++ {
			doc.Appts = append(doc.Appts, state.Appointment{
				ID:        fmt.Sprintf("a%d", i),
				PatientID: "p1",
				DoctorID:  "d1",
				Datetime:  testNow.Add(time.Duration(i) * time.Hour),
				Status:    state.ApptScheduled,
			})
		}
	})

	rows := svc.Recent(context.Background())
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[0].ID != "a7" {
		t.Errorf("expected newest appointment first, got %s", rows[0].ID)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Datetime.After(rows[i-1].Datetime) {
			t.Errorf("expected descending order at index %d", i)
		}
	}
	if rows[0].PatientName != "Ravi" || rows[0].DoctorName != "Dr. Nair" {
		t.Errorf("unexpected joined names: %+v", rows[0])
	}
}

func TestRecent_DanglingReferences(t *testing.T) {
	svc := newTestService(t)
	svc.st.Mutate(context.Background(), func(doc *state.Document) {
		doc.Appts = append(doc.Appts, state.Appointment{
			ID: "a1", PatientID: "gone", DoctorID: "gone", Datetime: testNow,
		})
	})

	rows := svc.Recent(context.Background())
	if rows[0].PatientName != "—" || rows[0].DoctorName != "—" {
		t.Errorf("expected dashes, got %+v", rows[0])
	}
}
