package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// State owns the in-memory document. All reads and writes go through one
// mutex, so the document only ever sees a single writer at a time. Every
// mutation is synchronously followed by a full write of the document slot.
type State struct {
	mu    sync.Mutex
	doc   *Document
	slots SlotStore
}

// Open loads the document slot. A missing or unparsable slot self-heals: the
// default document is written back and returned, silently discarding any
// malformed prior data. Only a store-level failure (for example an
// unreachable database) is returned as an error.
func Open(ctx context.Context, slots SlotStore) (*State, error) {
	s := &State{slots: slots}

	raw, ok, err := slots.Read(ctx, SlotState)
	if err != nil {
		return nil, err
	}

	healed := !ok
	doc := DefaultDocument()
	if ok {
		var parsed Document
		if jsonErr := json.Unmarshal(raw, &parsed); jsonErr == nil {
			doc = &parsed
			normalize(doc)
		} else {
			healed = true
		}
	}
	s.doc = doc

	// Persist the healed (or brand new) document so the next load sees it.
	if healed {
		if err := s.flush(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func normalize(doc *Document) {
	if doc.Patients == nil {
		doc.Patients = []Patient{}
	}
	if doc.Doctors == nil {
		doc.Doctors = []Doctor{}
	}
	if doc.Appts == nil {
		doc.Appts = []Appointment{}
	}
	if doc.Billing == nil {
		doc.Billing = []BillingRecord{}
	}
	if doc.Inventory == nil {
		doc.Inventory = []InventoryItem{}
	}
	if doc.Settings.Name == "" && doc.Settings.Currency == "" {
		doc.Settings = DefaultDocument().Settings
	}
}

func (s *State) flush(ctx context.Context) error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return s.slots.Write(ctx, SlotState, data)
}

// View runs fn with read access to the document. fn must not retain or
// mutate the document.
func (s *State) View(fn func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// Mutate runs fn with write access to the document and persists the full
// document afterwards.
func (s *State) Mutate(ctx context.Context, fn func(doc *Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
	return s.flush(ctx)
}

// Profiles reads the patient-profile slot fresh on every call; a missing or
// corrupt slot degrades to an empty list.
func (s *State) Profiles(ctx context.Context) ([]Profile, error) {
	raw, ok, err := s.slots.Read(ctx, SlotProfiles)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Profile{}, nil
	}
	var profiles []Profile
	if json.Unmarshal(raw, &profiles) != nil || profiles == nil {
		return []Profile{}, nil
	}
	return profiles, nil
}

// Feedback reads the feedback slot fresh on every call; a missing or corrupt
// slot degrades to an empty list.
func (s *State) Feedback(ctx context.Context) ([]Feedback, error) {
	raw, ok, err := s.slots.Read(ctx, SlotFeedback)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Feedback{}, nil
	}
	var entries []Feedback
	if json.Unmarshal(raw, &entries) != nil || entries == nil {
		return []Feedback{}, nil
	}
	return entries, nil
}

// SaveFeedback overwrites the feedback slot.
func (s *State) SaveFeedback(ctx context.Context, entries []Feedback) error {
	if entries == nil {
		entries = []Feedback{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	return s.slots.Write(ctx, SlotFeedback, data)
}
