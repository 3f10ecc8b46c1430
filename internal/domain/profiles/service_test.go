package profiles

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
)

func newTestService(t *testing.T) (*Service, *state.MemStore) {
	t.Helper()
	store := state.NewMemStore()
	st, err := state.Open(context.Background(), store)
	if err != nil {
		t.Fatalf("opening state: %v", err)
	}
	svc := NewService(st)
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }
	return svc, store
}

func writeProfiles(t *testing.T, store *state.MemStore, profiles []state.Profile) {
	t.Helper()
	data, _ := json.Marshal(profiles)
	if err := store.Write(context.Background(), state.SlotProfiles, data); err != nil {
		t.Fatalf("writing profiles: %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	svc, store := newTestService(t)
	writeProfiles(t, store, []state.Profile{
		{Name: "Ravi Kumar", Mobile: "9876500001", District: "Chennai"},
		{Name: "Meena Iyer", Mobile: "9876500002", District: "Madurai"},
		{Name: "Ravi Shankar", Mobile: "9876500003", District: "Madurai"},
	})

	got, err := svc.List(context.Background(), Filter{Name: "ravi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 name matches, got %d", len(got))
	}

	got, _ = svc.List(context.Background(), Filter{Name: "ravi", District: "madurai"})
	if len(got) != 1 || got[0].Name != "Ravi Shankar" {
		t.Errorf("expected combined filter to match one, got %+v", got)
	}

	got, _ = svc.List(context.Background(), Filter{Mobile: "00002"})
	if len(got) != 1 || got[0].Name != "Meena Iyer" {
		t.Errorf("expected mobile substring match, got %+v", got)
	}
}

func TestList_SingleQueryMatchesAnyField(t *testing.T) {
	svc, store := newTestService(t)
	writeProfiles(t, store, []state.Profile{
		{Name: "Ravi Kumar", Mobile: "9876500001", District: "Chennai"},
		{Name: "Meena Iyer", Mobile: "9876500002", District: "Madurai"},
	})

	// One search-box string matches name, mobile, or district.
	got, err := svc.List(context.Background(), Filter{Query: "chennai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ravi Kumar" {
		t.Errorf("expected district match via query, got %+v", got)
	}

	got, _ = svc.List(context.Background(), Filter{Query: "meena"})
	if len(got) != 1 || got[0].Name != "Meena Iyer" {
		t.Errorf("expected name match via query, got %+v", got)
	}

	got, _ = svc.List(context.Background(), Filter{Query: "00001"})
	if len(got) != 1 || got[0].Name != "Ravi Kumar" {
		t.Errorf("expected mobile match via query, got %+v", got)
	}

	got, _ = svc.List(context.Background(), Filter{Query: "nowhere"})
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestList_MissingSlot(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d", len(got))
	}
}

func TestAddFeedback_StampsDate(t *testing.T) {
	svc, _ := newTestService(t)

	added, err := svc.AddFeedback(context.Background(), "ravi", "great service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected feedback to be added")
	}

	entries, _ := svc.ListFeedback(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2026-01-15" {
		t.Errorf("expected stamped date, got %s", entries[0].Date)
	}
	if entries[0].Index != 0 {
		t.Errorf("expected index 0, got %d", entries[0].Index)
	}
}

func TestAddFeedback_EmptyTextDropped(t *testing.T) {
	svc, _ := newTestService(t)

	added, err := svc.AddFeedback(context.Background(), "ravi", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Error("expected empty text to be dropped")
	}
}

func TestAddFeedback_AnonymousUser(t *testing.T) {
	svc, _ := newTestService(t)

	svc.AddFeedback(context.Background(), "", "hello")
	entries, _ := svc.ListFeedback(context.Background())
	if entries[0].User != "Anonymous" {
		t.Errorf("expected Anonymous, got %s", entries[0].User)
	}
}

func TestDeleteFeedback_ByIndex(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddFeedback(context.Background(), "a", "first")
	svc.AddFeedback(context.Background(), "b", "second")
	svc.AddFeedback(context.Background(), "c", "third")

	if err := svc.DeleteFeedback(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := svc.ListFeedback(context.Background())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first" || entries[1].Text != "third" {
		t.Errorf("unexpected remaining entries: %+v", entries)
	}
	// Positions shift down after the removal.
	if entries[1].Index != 1 {
		t.Errorf("expected reindexed entries, got %+v", entries)
	}
}

func TestDeleteFeedback_OutOfRangeIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddFeedback(context.Background(), "a", "only")

	if err := svc.DeleteFeedback(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteFeedback(context.Background(), -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := svc.ListFeedback(context.Background())
	if len(entries) != 1 {
		t.Errorf("expected entry untouched, got %d", len(entries))
	}
}
