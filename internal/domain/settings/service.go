// Package settings manages the clinic name and billing currency.
package settings

import (
	"context"
	"strings"

	"github.com/healcare/clinic/internal/platform/state"
)

// Input carries the settings form fields.
type Input struct {
	Name     string `json:"name" form:"name"`
	Currency string `json:"currency" form:"currency"`
}

type Service struct {
	st *state.State
}

func NewService(st *state.State) *Service {
	return &Service{st: st}
}

func (s *Service) Get(ctx context.Context) state.Settings {
	var out state.Settings
	s.st.View(func(doc *state.Document) {
		out = doc.Settings
	})
	return out
}

// Save stores the settings only when both fields are filled in. A
// partial submission leaves the stored settings untouched and saved
// is false.
func (s *Service) Save(ctx context.Context, in Input) (state.Settings, bool, error) {
	name := strings.TrimSpace(in.Name)
	currency := strings.TrimSpace(in.Currency)
	if name == "" || currency == "" {
		return s.Get(ctx), false, nil
	}

	var out state.Settings
	err := s.st.Mutate(ctx, func(doc *state.Document) {
		doc.Settings = state.Settings{Name: name, Currency: currency}
		out = doc.Settings
	})
	return out, true, err
}
