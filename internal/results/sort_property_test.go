package results_test

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

// buildRecords turns generated ints into records with frequent GPA ties,
// some missing GPAs and some non-attended students.
func buildRecords(vals []int) []*results.Record {
	out := make([]*results.Record, len(vals))
	for i, v := range vals {
		status := results.StatusQualified
		switch v % 7 {
		case 5:
			status = results.StatusAbsent
		case 6:
			status = results.StatusNotQualified
		}
		var gpa *float64
		if v%11 != 0 {
			gpa = fp(float64(v % 6))
		}
		out[i] = rec(strconv.Itoa(i), status, gpa)
	}
	return out
}

func sortKeyOf(r *results.Record) (float64, bool) {
	if r.Status != results.StatusQualified || r.GPA == nil {
		return 0, false
	}
	return *r.GPA, true
}

// TestSortDirectionSymmetry checks that descending order is ascending order
// reversed for the ranked part, while the bottom block is identical and in
// input order for both directions.
func TestSortDirectionSymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("desc mirrors asc except for the stable bottom block", prop.ForAll(
		func(vals []int) bool {
			in := buildRecords(vals)
			asc := results.Sort(in, "gpa", results.Asc, nil)
			desc := results.Sort(in, "gpa", results.Desc, nil)

			ranked := 0
			var bottom []*results.Record
			for _, r := range in {
				if _, ok := sortKeyOf(r); ok {
					ranked++
				} else {
					bottom = append(bottom, r)
				}
			}

			for i := 0; i < ranked; i++ {
				a, _ := sortKeyOf(asc[ranked-1-i])
				d, _ := sortKeyOf(desc[i])
				if a != d {
					return false
				}
			}
			for i, r := range bottom {
				if asc[ranked+i] != r || desc[ranked+i] != r {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 60)),
	))

	properties.Property("sorting never drops or duplicates records", prop.ForAll(
		func(vals []int) bool {
			in := buildRecords(vals)
			seen := map[*results.Record]int{}
			for _, r := range results.Sort(in, "gpa", results.Desc, nil) {
				seen[r]++
			}
			if len(seen) != len(in) {
				return false
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 60)),
	))

	properties.TestingRun(t)
}
