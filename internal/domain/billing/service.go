// Package billing manages payment records and renders them with
// patient names and the configured currency.
package billing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
	"github.com/healcare/clinic/pkg/shortid"
)

// RecordInput carries the billing form fields. Amount arrives as text
// and is coerced on save.
type RecordInput struct {
	PatientID string `json:"patientId" form:"patientId"`
	Amount    string `json:"amount" form:"amount"`
	Date      string `json:"date" form:"date"`
	Status    string `json:"status" form:"status"`
}

// Row is a billing record joined with its patient's name and the
// clinic currency.
type Row struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
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
	state.BillingPaid:   true,
	state.BillingUnpaid: true,
}

func parseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func (s *Service) parseDate(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(raw)); err == nil {
		return t
	}
	return s.now()
}

func normalizeStatus(raw string) string {
	if validStatuses[raw] {
		return raw
	}
	return state.BillingUnpaid
}

func (s *Service) Create(ctx context.Context, in RecordInput) (state.BillingRecord, error) {
	b := state.BillingRecord{
		ID:        shortid.New("b"),
		PatientID: in.PatientID,
		Amount:    parseAmount(in.Amount),
		Date:      s.parseDate(in.Date),
		Status:    normalizeStatus(in.Status),
	}
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Billing = append(doc.Billing, b)
	})
	return b, err
}

func (s *Service) Update(ctx context.Context, id string, in RecordInput) (state.BillingRecord, bool, error) {
	var updated state.BillingRecord
	found := false
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		for i := range doc.Billing {
			if doc.Billing[i].ID != id {
				continue
			}
			doc.Billing[i].PatientID = in.PatientID
			doc.Billing[i].Amount = parseAmount(in.Amount)
			doc.Billing[i].Date = s.parseDate(in.Date)
			doc.Billing[i].Status = normalizeStatus(in.Status)
			updated = doc.Billing[i]
			found = true
			return
		}
	})
	return updated, found, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.st.Mutate(ctx, func(doc *state.Document) {
		kept := doc.Billing[:0]
		for _, b := range doc.Billing {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		doc.Billing = kept
	})
}

// List returns every billing row with names resolved. A record whose
// patient has been deleted should not appear here (deletes cascade),
// but a dash guards against any dangling reference in old data.
func (s *Service) List(ctx context.Context) []Row {
	var out []Row
	s.st.View(func(doc *state.Document) {
		patients := make(map[string]string, len(doc.Patients))
		for _, p := range doc.Patients {
			patients[p.ID] = p.Name
		}

		out = make([]Row, 0, len(doc.Billing))
		for _, b := range doc.Billing {
			name, ok := patients[b.PatientID]
			if !ok {
				name = "—"
			}
			out = append(out, Row{
				ID:          b.ID,
				PatientID:   b.PatientID,
				PatientName: name,
				Amount:      b.Amount,
				Currency:    doc.Settings.Currency,
				Date:        b.Date,
				Status:      b.Status,
			})
		}
	})
	return out
}
