package state

import (
	"context"
	"time"

	"github.com/healcare/clinic/pkg/shortid"
)

// SeedIfEmpty populates the document with a small example dataset and
// persists it. It is a no-op whenever any patient exists. The gate is the
// patient register itself, not a separate seeded flag, so deleting every
// patient brings the samples back on the next load.
func (s *State) SeedIfEmpty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.Patients) > 0 {
		return nil
	}

	now := time.Now()
	s.doc.Patients = []Patient{
		{ID: shortid.New("p"), Name: "Ravi Kumar", Phone: "9876543210", Age: 36, Sex: "M"},
		{ID: shortid.New("p"), Name: "Meena Iyer", Phone: "9123456780", Age: 29, Sex: "F"},
	}
	s.doc.Doctors = []Doctor{
		{ID: shortid.New("d"), Name: "Dr. Ajay Nair", Specialty: "Cardiology", Phone: "9001112223"},
		{ID: shortid.New("d"), Name: "Dr. Sima Rao", Specialty: "General Physician", Phone: "9001113334"},
	}
	s.doc.Appts = []Appointment{
		{
			ID:        shortid.New("a"),
			PatientID: s.doc.Patients[0].ID,
			DoctorID:  s.doc.Doctors[0].ID,
			Datetime:  now.Add(24 * time.Hour),
			Status:    ApptScheduled,
		},
		{
			ID:        shortid.New("a"),
			PatientID: s.doc.Patients[1].ID,
			DoctorID:  s.doc.Doctors[1].ID,
			Datetime:  now,
			Status:    ApptCompleted,
		},
	}
	s.doc.Billing = []BillingRecord{
		{ID: shortid.New("b"), PatientID: s.doc.Patients[0].ID, Amount: 3200, Date: now, Status: BillingPaid},
	}
	s.doc.Inventory = []InventoryItem{
		{ID: shortid.New("i"), Item: "Paracetamol 500mg", Qty: 120, Expiry: "2026-02-01"},
	}

	return s.flush(ctx)
}
