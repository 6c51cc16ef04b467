package results

import (
	"sort"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Desc for "desc" and Asc for anything else.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// ParseSortToken splits a "field|direction" token. Missing parts keep the
// values passed in as defaults.
func ParseSortToken(token, field string, dir Direction) (string, Direction) {
	f, d, found := strings.Cut(token, "|")
	if f = strings.TrimSpace(f); f != "" {
		field = f
	}
	if found && strings.TrimSpace(d) != "" {
		dir = ParseDirection(d)
	}
	return field, dir
}

// SortToken formats field and dir as a "field|direction" token.
func SortToken(field string, dir Direction) string { return field + "|" + string(dir) }

// Sorter orders records using a field registry.
type Sorter struct {
	Fields FieldRegistry
}

// NewSorter returns a Sorter with the built-in fields.
func NewSorter() *Sorter { return &Sorter{Fields: DefaultFields()} }

// Sort returns a new, stably ordered slice. Null keys always go last,
// whatever the direction. For any field other than roll and name, absent
// and not-qualified students are treated as null. An unknown field leaves
// the input order unchanged.
func (s *Sorter) Sort(records []*Record, field string, dir Direction, subjects []string) []*Record {
	out := make([]*Record, len(records))
	copy(out, records)

	f, ok := s.Fields.Lookup(field, subjects)
	if !ok {
		return out
	}

	keys := make([]Key, len(out))
	for i, r := range out {
		keys[i] = sortKey(f, r)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		switch {
		case a.Null() && b.Null():
			return false
		case a.Null():
			return false
		case b.Null():
			return true
		}
		c := Compare(a, b, f.Kind)
		if dir == Desc {
			c = -c
		}
		return c < 0
	})

	sorted := make([]*Record, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

func sortKey(f Field, r *Record) Key {
	if !f.Identity && (r.Status == StatusAbsent || r.Status == StatusNotQualified) {
		return Key{}
	}
	return Classify(f.Value(r), f.Kind)
}

// Sort orders records with the built-in fields.
func Sort(records []*Record, field string, dir Direction, subjects []string) []*Record {
	return NewSorter().Sort(records, field, dir, subjects)
}
