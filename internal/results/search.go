package results

import "strings"

// Filter returns the records whose roll or name contains query,
// case-insensitively. A blank query matches everything.
func Filter(ds *Dataset, query string) []*Record {
	q := strings.ToLower(strings.TrimSpace(query))
	all := ds.All()
	if q == "" {
		return all
	}
	out := make([]*Record, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Key), q) ||
			(r.Name != "" && strings.Contains(strings.ToLower(r.Name), q)) {
			out = append(out, r)
		}
	}
	return out
}
