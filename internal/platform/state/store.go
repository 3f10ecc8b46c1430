// Package state holds the clinic's persisted document model: the root
// document with every domain collection, the slot stores that serialize it,
// and the State wrapper that guards in-memory access and flushes a full
// document write after every mutation.
package state

import "context"

// Slot keys. Each slot is an independently persisted JSON value.
const (
	SlotState    = "hc_state"
	SlotProfiles = "patient_profiles"
	SlotFeedback = "feedbacks"
)

// SlotStore reads and writes raw slot payloads. Read reports ok=false when
// the slot has never been written; Write overwrites the previous value
// unconditionally.
type SlotStore interface {
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)
	Write(ctx context.Context, key string, data []byte) error
}
