// Package registry manages the patient and doctor registers and the
// cross-register search used by the top navigation.
package registry

import (
	"context"
	"strconv"
	"strings"

	"github.com/healcare/clinic/internal/platform/state"
	"github.com/healcare/clinic/pkg/shortid"
)

// PatientInput carries the raw form fields for a patient. Age arrives
// as text and is coerced on save.
type PatientInput struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
	Age   string `json:"age" form:"age"`
	Sex   string `json:"sex" form:"sex"`
}

type DoctorInput struct {
	Name      string `json:"name" form:"name"`
	Specialty string `json:"specialty" form:"specialty"`
	Phone     string `json:"phone" form:"phone"`
}

// DoctorOption is the compact shape used to populate appointment
// doctor selectors.
type DoctorOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SearchResult groups matches across the registers for a single query.
type SearchResult struct {
	Patients  []state.Patient       `json:"patients"`
	Doctors   []state.Doctor        `json:"doctors"`
	Inventory []state.InventoryItem `json:"inventory"`
}

type Service struct {
	st *state.State
}

func NewService(st *state.State) *Service {
	return &Service{st: st}
}

// parseAge coerces the age field. Garbage and negatives collapse to 0
// rather than rejecting the submission.
func parseAge(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Service) CreatePatient(ctx context.Context, in PatientInput) (state.Patient, error) {
	p := state.Patient{
		ID:    shortid.New("p"),
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Age:   parseAge(in.Age),
		Sex:   in.Sex,
	}
	if p.Name == "" {
		p.Name = "Unknown"
	}
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Patients = append(doc.Patients, p)
	})
	return p, err
}

// UpdatePatient rewrites the patient with the given id. A missing id
// is not an error: the document is left untouched and found is false.
// Edits store the submitted fields as-is; the placeholder names apply
// on create only.
func (s *Service) UpdatePatient(ctx context.Context, id string, in PatientInput) (state.Patient, bool, error) {
	var updated state.Patient
	found := false
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		for i := range doc.Patients {
			if doc.Patients[i].ID != id {
				continue
			}
			doc.Patients[i].Name = strings.TrimSpace(in.Name)
			doc.Patients[i].Phone = strings.TrimSpace(in.Phone)
			doc.Patients[i].Age = parseAge(in.Age)
			doc.Patients[i].Sex = in.Sex
			updated = doc.Patients[i]
			found = true
			return
		}
	})
	return updated, found, err
}

// DeletePatient removes the patient and everything referencing them:
// their appointments and their billing records.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.st.Mutate(ctx, func(doc *state.Document) {
		kept := doc.Patients[:0]
		for _, p := range doc.Patients {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		doc.Patients = kept

		appts := doc.Appts[:0]
		for _, a := range doc.Appts {
			if a.PatientID != id {
				appts = append(appts, a)
			}
		}
		doc.Appts = appts

		bills := doc.Billing[:0]
		for _, b := range doc.Billing {
			if b.PatientID != id {
				bills = append(bills, b)
			}
		}
		doc.Billing = bills
	})
}

// ListPatients returns patients whose name or phone contains the
// query, case-insensitively. An empty query returns everyone. Listing
// also restores the sample data when the register is empty, so a
// freshly wiped clinic is never a blank screen.
func (s *Service) ListPatients(ctx context.Context, query string) ([]state.Patient, error) {
	if err := s.st.SeedIfEmpty(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []state.Patient
	s.st.View(func(doc *state.Document) {
		out = make([]state.Patient, 0, len(doc.Patients))
		for _, p := range doc.Patients {
			if q == "" || strings.Contains(strings.ToLower(p.Name+p.Phone), q) {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (s *Service) CreateDoctor(ctx context.Context, in DoctorInput) (state.Doctor, error) {
	d := state.Doctor{
		ID:        shortid.New("d"),
		Name:      strings.TrimSpace(in.Name),
		Specialty: strings.TrimSpace(in.Specialty),
		Phone:     strings.TrimSpace(in.Phone),
	}
	if d.Name == "" {
		d.Name = "Dr. Unknown"
	}
	if d.Specialty == "" {
		d.Specialty = "General"
	}
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Doctors = append(doc.Doctors, d)
	})
	return d, err
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, in DoctorInput) (state.Doctor, bool, error) {
	var updated state.Doctor
	found := false
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		for i := range doc.Doctors {
			if doc.Doctors[i].ID != id {
				continue
			}
			doc.Doctors[i].Name = strings.TrimSpace(in.Name)
			doc.Doctors[i].Specialty = strings.TrimSpace(in.Specialty)
			doc.Doctors[i].Phone = strings.TrimSpace(in.Phone)
			updated = doc.Doctors[i]
			found = true
			return
		}
	})
	return updated, found, err
}

// DeleteDoctor removes the doctor and their appointments. Billing is
// left alone since it never references doctors.
func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.st.Mutate(ctx, func(doc *state.Document) {
		kept := doc.Doctors[:0]
		for _, d := range doc.Doctors {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		doc.Doctors = kept

		appts := doc.Appts[:0]
		for _, a := range doc.Appts {
			if a.DoctorID != id {
				appts = append(appts, a)
			}
		}
		doc.Appts = appts
	})
}

func (s *Service) ListDoctors(ctx context.Context, query string) []state.Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []state.Doctor
	s.st.View(func(doc *state.Document) {
		out = make([]state.Doctor, 0, len(doc.Doctors))
		for _, d := range doc.Doctors {
			if q == "" || strings.Contains(strings.ToLower(d.Name+d.Specialty+d.Phone), q) {
				out = append(out, d)
			}
		}
	})
	return out
}

// DoctorOptions renders each doctor as "Name (Specialty)" for select
// boxes.
func (s *Service) DoctorOptions(ctx context.Context) []DoctorOption {
	var out []DoctorOption
	s.st.View(func(doc *state.Document) {
		out = make([]DoctorOption, 0, len(doc.Doctors))
		for _, d := range doc.Doctors {
			out = append(out, DoctorOption{ID: d.ID, Label: d.Name + " (" + d.Specialty + ")"})
		}
	})
	return out
}

// Search matches the query against patients, doctors and inventory in
// one pass.
func (s *Service) Search(ctx context.Context, query string) SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	res := SearchResult{
		Patients:  []state.Patient{},
		Doctors:   []state.Doctor{},
		Inventory: []state.InventoryItem{},
	}
	if q == "" {
		return res
	}
	s.st.View(func(doc *state.Document) {
		for _, p := range doc.Patients {
			if strings.Contains(strings.ToLower(p.Name+p.Phone), q) {
				res.Patients = append(res.Patients, p)
			}
		}
		for _, d := range doc.Doctors {
			if strings.Contains(strings.ToLower(d.Name+d.Specialty), q) {
				res.Doctors = append(res.Doctors, d)
			}
		}
		for _, it := range doc.Inventory {
			if strings.Contains(strings.ToLower(it.Item), q) {
				res.Inventory = append(res.Inventory, it)
			}
		}
	})
	return res
}
