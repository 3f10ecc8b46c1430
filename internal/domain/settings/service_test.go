package settings

import (
	"context"
	"testing"

	"github.com/healcare/clinic/internal/platform/state"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := state.Open(context.Background(), state.NewMemStore())
	if err != nil {
		t.Fatalf("opening state: %v", err)
	}
	return NewService(st)
}

func TestGet_Defaults(t *testing.T) {
	svc := newTestService(t)

	got := svc.Get(context.Background())
	if got.Name != "HealCare Clinic" || got.Currency != "INR" {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestSave_BothFields(t *testing.T) {
	svc := newTestService(t)

	got, saved, err := svc.Save(context.Background(), Input{Name: "City Clinic", Currency: "USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Fatal("expected save to succeed")
	}
	if got.Name != "City Clinic" || got.Currency != "USD" {
		t.Errorf("unexpected saved settings: %+v", got)
	}
	if again := svc.Get(context.Background()); again != got {
		t.Errorf("expected persisted settings, got %+v", again)
	}
}

func TestSave_PartialIsRejected(t *testing.T) {
	svc := newTestService(t)

	_, saved, err := svc.Save(context.Background(), Input{Name: "City Clinic", Currency: "  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved {
		t.Error("expected partial submission not to save")
	}
	if got := svc.Get(context.Background()); got.Name != "HealCare Clinic" {
		t.Errorf("expected stored settings untouched, got %+v", got)
	}
}
