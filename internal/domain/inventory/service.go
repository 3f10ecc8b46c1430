// Package inventory manages the clinic stock list.
package inventory

import (
	"context"
	"strconv"
	"strings"

	"github.com/healcare/clinic/internal/platform/state"
	"github.com/healcare/clinic/pkg/shortid"
)

// ItemInput carries the stock form fields. Qty arrives as text and is
// coerced on save; expiry is an optional plain date string.
type ItemInput struct {
	Item   string `json:"item" form:"item"`
	Qty    string `json:"qty" form:"qty"`
	Expiry string `json:"expiry" form:"expiry"`
}

type Service struct {
	st *state.State
}

func NewService(st *state.State) *Service {
	return &Service{st: st}
}

func parseQty(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Service) Create(ctx context.Context, in ItemInput) (state.InventoryItem, error) {
	it := state.InventoryItem{
		ID:     shortid.New("i"),
		Item:   strings.TrimSpace(in.Item),
		Qty:    parseQty(in.Qty),
		Expiry: strings.TrimSpace(in.Expiry),
	}
	if it.Item == "" {
		it.Item = "Item"
	}
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Inventory = append(doc.Inventory, it)
	})
	return it, err
}

func (s *Service) Update(ctx context.Context, id string, in ItemInput) (state.InventoryItem, bool, error) {
	var updated state.InventoryItem
	found := false
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		for i := range doc.Inventory {
			if doc.Inventory[i].ID != id {
				continue
			}
			doc.Inventory[i].Item = strings.TrimSpace(in.Item)
			doc.Inventory[i].Qty = parseQty(in.Qty)
			doc.Inventory[i].Expiry = strings.TrimSpace(in.Expiry)
			updated = doc.Inventory[i]
			found = true
			return
		}
	})
	return updated, found, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.st.Mutate(ctx, func(doc *state.Document) {
		kept := doc.Inventory[:0]
		for _, it := range doc.Inventory {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		doc.Inventory = kept
	})
}

// List returns items whose name contains the query,
// case-insensitively.
func (s *Service) List(ctx context.Context, query string) []state.InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []state.InventoryItem
	s.st.View(func(doc *state.Document) {
		out = make([]state.InventoryItem, 0, len(doc.Inventory))
		for _, it := range doc.Inventory {
			if q == "" || strings.Contains(strings.ToLower(it.Item), q) {
				out = append(out, it)
			}
		}
	})
	return out
}
