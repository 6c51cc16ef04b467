package results_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

const sampleJSON = `[
  {"roll": 1001, "name": "Rahim", "Section": "A", "status": "qualified",
   "gpa": 5, "gpaWithoutAdditional": 4.83, "totalMark": "1,010", "url": "https://t/1001.pdf",
   "Ranking": {"global": 3, "section": 1}, "optionalSubject": "Biology",
   "Physics": {"cq": "40", "mcq": "20", "practical": "25", "termTotal": 85, "grade": "A+", "gp": "5.00"},
   "Botany": {"cq": "", "mcq": "", "practical": "", "termTotal": "", "gp": null}},
  {"roll": "1002", "name": "Karim", "Section": "B", "status": "absent",
   "Chemistry": {"termTotal": null, "grade": null}},
  {"roll": 1003, "gpa": 0, "gpaWithoutAdditional": "", "totalMark": "-",
   "Ranking": {"global": "N/A"},
   "Physics": {"termTotal": "33", "grade": "F"}, "extra": {"note": "no termTotal"}}
]`

func mustDecode(t *testing.T, s string) *results.Dataset {
	t.Helper()
	ds, err := results.Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return ds
}

func TestDecode_IsIdempotent(t *testing.T) {
	a := mustDecode(t, sampleJSON)
	b := mustDecode(t, sampleJSON)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("normalizing twice differs (-a +b):\n%s", diff)
	}
}

func TestDecode_SubjectDiscovery(t *testing.T) {
	ds := mustDecode(t, sampleJSON)
	want := []string{"Physics", "Botany", "Chemistry"}
	if diff := cmp.Diff(want, ds.Subjects); diff != "" {
		t.Fatalf("subjects (-want +got):\n%s", diff)
	}
	for _, r := range ds.All() {
		for k := range r.Subjects {
			if !ds.IsSubject(k) {
				t.Fatalf("record %s has undiscovered subject %q", r.Key, k)
			}
		}
	}
	if ds.IsSubject("extra") || ds.IsSubject("Ranking") {
		t.Fatalf("non-subject objects must not be discovered")
	}
}

func TestDecode_Fields(t *testing.T) {
	ds := mustDecode(t, sampleJSON)

	r := ds.Records["1001"]
	if r == nil {
		t.Fatalf("missing record 1001")
	}
	if r.Section != "A" || r.Status != results.StatusQualified || r.URL == "" {
		t.Fatalf("unexpected scalar fields: %+v", r)
	}
	if r.GPA == nil || *r.GPA != 5 || r.TotalMark != nil {
		// "1,010" is not strict numeric text
		t.Fatalf("gpa/totalMark: %v %v", r.GPA, r.TotalMark)
	}
	if r.Ranking.Global == nil || *r.Ranking.Global != 3 || *r.Ranking.Section != 1 {
		t.Fatalf("ranking: %+v", r.Ranking)
	}
	if r.OptionalSubject == nil || *r.OptionalSubject != "Biology" {
		t.Fatalf("optional subject: %v", r.OptionalSubject)
	}
	ph := r.Subjects["Physics"]
	if ph.TermTotal != "85" || ph.Grade != "A+" || ph.GP == nil || *ph.GP != 5 {
		t.Fatalf("physics: %+v", ph)
	}
	if bo := r.Subjects["Botany"]; bo.Grade != "F" || bo.GP != nil || bo.TermTotal != "" {
		t.Fatalf("botany defaults: %+v", bo)
	}

	k := ds.Records["1002"]
	if k.Status != results.StatusAbsent || k.Subjects["Chemistry"].Grade != "F" {
		t.Fatalf("record 1002: %+v", k)
	}

	z := ds.Records["1003"]
	if z.Status != results.StatusQualified {
		t.Fatalf("missing status must default to qualified, got %q", z.Status)
	}
	if z.GPA == nil || *z.GPA != 0 {
		t.Fatalf("gpa 0 must stay 0, got %v", z.GPA)
	}
	if z.GPAWithoutAdditional != nil || z.TotalMark != nil || z.Ranking.Global != nil || z.Ranking.Section != nil {
		t.Fatalf("empty and sentinel numerics must be nil: %+v", z)
	}
	if z.Name != "" || z.Section != "" {
		t.Fatalf("missing strings must be empty: %+v", z)
	}
}

func TestNormalize_IterationOrder(t *testing.T) {
	ds := results.Normalize([]results.RawRecord{
		{"roll": "10"},
		{"roll": "abc"},
		{"roll": "2"},
		{"name": "no roll"},
		{"roll": "007"},
		{"roll": "2", "name": "second two"},
	})
	want := []string{"2", "10", "abc", "row-4", "007"}
	if diff := cmp.Diff(want, ds.Order); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if ds.Records["2"].Name != "second two" {
		t.Fatalf("duplicate roll should keep the later values")
	}
	if ds.Records["row-4"].Roll != nil {
		t.Fatalf("synthetic key must keep a nil roll")
	}
}

func TestNormalize_StatusVariants(t *testing.T) {
	for raw, want := range map[string]results.Status{
		"":              results.StatusQualified,
		"Qualified":     results.StatusQualified,
		"absent":        results.StatusAbsent,
		"not qualified": results.StatusNotQualified,
		"not-qualified": results.StatusNotQualified,
		"withheld":      results.StatusNotQualified,
	} {
		if got := results.ParseStatus(raw); got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDecode_NotAnArray(t *testing.T) {
	for _, in := range []string{`{"roll": 1}`, `null`, `"x"`} {
		if _, err := results.Decode(strings.NewReader(in)); !errors.Is(err, results.ErrNoData) {
			t.Fatalf("Decode(%s) err = %v, want ErrNoData", in, err)
		}
	}
	if _, err := results.Decode(strings.NewReader(`[{"roll": 1,`)); err == nil {
		t.Fatalf("truncated payload should fail")
	}
}

func TestDecode_SkipsNonObjects(t *testing.T) {
	ds := mustDecode(t, `[1, "x", {"roll": 5}, [1,2], null]`)
	if len(ds.Order) != 1 || ds.Order[0] != "5" {
		t.Fatalf("order = %v", ds.Order)
	}
}
