package state

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestOpen_MissingSlotWritesDefault(t *testing.T) {
	store := NewMemStore()
	st, err := Open(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st.View(func(doc *Document) {
		if len(doc.Patients) != 0 {
			t.Errorf("expected empty patients, got %d", len(doc.Patients))
		}
		if doc.Settings.Name != "HealCare Clinic" {
			t.Errorf("expected default clinic name, got %s", doc.Settings.Name)
		}
		if doc.Settings.Currency != "INR" {
			t.Errorf("expected default currency INR, got %s", doc.Settings.Currency)
		}
	})

	// The default must have been persisted so the next load sees it.
	if _, ok, _ := store.Read(context.Background(), SlotState); !ok {
		t.Error("expected default document to be written back")
	}
}

func TestOpen_CorruptSlotSelfHeals(t *testing.T) {
	store := NewMemStore()
	store.Write(context.Background(), SlotState, []byte(`{"patients": not json`))

	st, err := Open(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.View(func(doc *Document) {
		if len(doc.Patients) != 0 {
			t.Errorf("expected corrupt slot replaced with defaults, got %d patients", len(doc.Patients))
		}
	})

	raw, ok, _ := store.Read(context.Background(), SlotState)
	if !ok {
		t.Fatal("expected healed document to be persisted")
	}
	var healed Document
	if err := json.Unmarshal(raw, &healed); err != nil {
		t.Fatalf("healed slot is not valid JSON: %v", err)
	}
	if healed.Settings.Currency != "INR" {
		t.Errorf("expected default currency in healed slot, got %s", healed.Settings.Currency)
	}
}

func TestOpen_RoundTrip(t *testing.T) {
	store := NewMemStore()
	st, _ := Open(context.Background(), store)

	err := st.Mutate(context.Background(), func(doc *Document) {
		doc.Patients = append(doc.Patients, Patient{ID: "p1", Name: "A", Phone: "123", Age: 30, Sex: "M"})
		doc.Appts = append(doc.Appts, Appointment{
			ID: "a1", PatientID: "p1", DoctorID: "d1",
			Datetime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Status:   ApptScheduled,
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := Open(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded.View(func(doc *Document) {
		if len(doc.Patients) != 1 || doc.Patients[0].Name != "A" {
			t.Error("expected patient to survive reload")
		}
		if len(doc.Appts) != 1 || !doc.Appts[0].Datetime.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
			t.Error("expected appointment datetime to survive reload")
		}
	})
}

func TestMutate_PersistsEveryTime(t *testing.T) {
	store := NewMemStore()
	st, _ := Open(context.Background(), store)

	st.Mutate(context.Background(), func(doc *Document) {
		doc.Inventory = append(doc.Inventory, InventoryItem{ID: "i1", Item: "Bandage", Qty: 5})
	})

	raw, _, _ := store.Read(context.Background(), SlotState)
	var doc Document
	json.Unmarshal(raw, &doc)
	if len(doc.Inventory) != 1 {
		t.Fatalf("expected inventory write to be flushed, got %d items", len(doc.Inventory))
	}
}

func TestProfiles_MissingSlotIsEmpty(t *testing.T) {
	store := NewMemStore()
	st, _ := Open(context.Background(), store)

	profiles, err := st.Profiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no profiles, got %d", len(profiles))
	}
}

func TestProfiles_CorruptSlotIsEmpty(t *testing.T) {
	store := NewMemStore()
	store.Write(context.Background(), SlotProfiles, []byte(`{{`))
	st, _ := Open(context.Background(), store)

	profiles, err := st.Profiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected corrupt profiles to degrade to empty, got %d", len(profiles))
	}
}

func TestFeedback_SaveAndReload(t *testing.T) {
	store := NewMemStore()
	st, _ := Open(context.Background(), store)

	entries := []Feedback{{User: "ravi", Text: "great service", Date: "2026-01-05"}}
	if err := st.SaveFeedback(context.Background(), entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := st.Feedback(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "great service" {
		t.Errorf("unexpected feedback roundtrip: %+v", got)
	}
}
