package communication

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Predicate is a conjunction of optional filters. Zero-valued fields match everything.
type Predicate struct {
	Title    string   `json:"title"`
	Channel  Channel  `json:"channel"`
	Status   Status   `json:"status"`
	Audience Audience `json:"audience"`
}

// Active reports whether any filter is set.
func (p Predicate) Active() bool {
	return strings.TrimSpace(p.Title) != "" || p.Channel != "" || p.Status != "" || p.Audience != ""
}

// Filter returns the entries matching every active filter, in their original order.
// The result is never nil.
func Filter(entries []Entry, p Predicate) []Entry {
	out := make([]Entry, 0, len(entries))
	if !p.Active() {
		return append(out, entries...)
	}

	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(p.Title))
	for _, e := range entries {
		if term != "" && !strings.Contains(fold.String(e.Title), term) {
			continue
		}
		if p.Channel != "" && e.Channel != p.Channel {
			continue
		}
		if p.Status != "" && e.Status != p.Status {
			continue
		}
		if p.Audience != "" && e.Audience != p.Audience {
			continue
		}
		out = append(out, e)
	}
	return out
}

// InMonth returns the entries dated within the given month, in their original order.
func InMonth(entries []Entry, year int, month time.Month) []Entry {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := make([]Entry, 0)
	for _, e := range entries {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}
