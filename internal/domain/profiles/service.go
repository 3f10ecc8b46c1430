// Package profiles serves the self-registered patient profiles and
// the feedback inbox. Both live in their own storage slots, written
// by the public-facing site, so reads always go back to the store
// rather than the in-memory document.
package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/healcare/clinic/internal/platform/state"
)

// Filter narrows the profile list. Query is the search-box input and
// matches a case-insensitive substring of name, mobile, or district;
// the per-field filters combine with AND on top of it.
type Filter struct {
	Query    string
	Name     string
	Mobile   string
	District string
}

// FeedbackEntry is a feedback item with its position in the list. The
// position is the delete handle since entries carry no id.
type FeedbackEntry struct {
	Index int    `json:"index"`
	User  string `json:"user"`
	Text  string `json:"text"`
	Date  string `json:"date"`
}

type Service struct {
	st  *state.State
	now func() time.Time
}

func NewService(st *state.State) *Service {
	return &Service{st: st, now: time.Now}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Service) List(ctx context.Context, f Filter) ([]state.Profile, error) {
	all, err := s.st.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]state.Profile, 0, len(all))
	for _, p := range all {
		if f.Query != "" &&
			!contains(p.Name, f.Query) &&
			!contains(p.Mobile, f.Query) &&
			!contains(p.District, f.Query) {
			continue
		}
		if f.Name != "" && !contains(p.Name, f.Name) {
			continue
		}
		if f.Mobile != "" && !contains(p.Mobile, f.Mobile) {
			continue
		}
		if f.District != "" && !contains(p.District, f.District) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) ListFeedback(ctx context.Context) ([]FeedbackEntry, error) {
	all, err := s.st.Feedback(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FeedbackEntry, 0, len(all))
	for i, fb := range all {
		out = append(out, FeedbackEntry{Index: i, User: fb.User, Text: fb.Text, Date: fb.Date})
	}
	return out, nil
}

// AddFeedback appends an entry stamped with today's date. Empty text
// is dropped without an error.
func (s *Service) AddFeedback(ctx context.Context, user, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	if user = strings.TrimSpace(user); user == "" {
		user = "Anonymous"
	}
	all, err := s.st.Feedback(ctx)
	if err != nil {
		return false, err
	}
	all = append(all, state.Feedback{
		User: user,
		Text: text,
		Date: s.now().Format("2006-01-02"),
	})
	if err := s.st.SaveFeedback(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteFeedback removes the entry at the given position. An
// out-of-range index is a no-op.
func (s *Service) DeleteFeedback(ctx context.Context, index int) error {
	all, err := s.st.Feedback(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(all) {
		return nil
	}
	all = append(all[:index], all[index+1:]...)
	return s.st.SaveFeedback(ctx, all)
}
