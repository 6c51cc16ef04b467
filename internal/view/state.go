// Package view turns a normalized result dataset and the viewer's UI state
// into renderer-neutral tables.
package view

import (
	"strings"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

// State is everything the viewer can change between renders. The dataset
// itself never changes; each event handler below only edits State and the
// caller rebuilds with Build.
type State struct {
	SortField     string
	SortDir       results.Direction
	Search        string
	Compact       bool
	DetailSubject string
	DetailRow     string
}

// NewState returns the initial view: roll ascending, compact, no detail.
func NewState() State {
	return State{
		SortField: results.FieldRoll,
		SortDir:   results.Asc,
		Compact:   true,
	}
}

// SortToken is the "field|dir" form used by the sort menu.
func (s State) SortToken() string { return results.SortToken(s.SortField, s.SortDir) }

// SetSort applies a "field|dir" token. Missing parts keep their value.
func (s *State) SetSort(token string) {
	s.SortField, s.SortDir = results.ParseSortToken(token, s.SortField, s.SortDir)
}

func (s *State) SetSearch(q string) { s.Search = strings.TrimSpace(q) }

// SetCompact switches compact mode and drops any detail toggle.
func (s *State) SetCompact(on bool) {
	s.Compact = on
	s.DetailSubject = ""
	s.DetailRow = ""
}

// ToggleSubject opens the detail columns of one subject, or closes them if
// already open. Opening clears the row detail.
func (s *State) ToggleSubject(subject string) {
	if s.DetailSubject == subject {
		s.DetailSubject = ""
		return
	}
	s.DetailSubject = subject
	s.DetailRow = ""
}

// ToggleRow opens the detail cells of one student, or closes them if
// already open. Opening clears the subject detail.
func (s *State) ToggleRow(roll string) {
	if s.DetailRow == roll {
		s.DetailRow = ""
		return
	}
	s.DetailRow = roll
	s.DetailSubject = ""
}

// subjectExpanded reports whether the subject's header shows sub-columns.
func (s State) subjectExpanded(subject string) bool {
	return !s.Compact || s.DetailSubject == subject
}

// cellExpanded reports whether one student's subject cell shows every mark.
func (s State) cellExpanded(subject, roll string) bool {
	return !s.Compact || s.DetailSubject == subject || s.DetailRow == roll
}
