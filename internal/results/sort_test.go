package results_test

import (
	"testing"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

func fp(f float64) *float64 { return &f }

func keys(rs []*results.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Key
	}
	return out
}

func sameKeys(t *testing.T, got []*results.Record, want ...string) {
	t.Helper()
	g := keys(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func rec(key string, status results.Status, gpa *float64) *results.Record {
	return &results.Record{Key: key, Roll: key, Name: "n" + key, Status: status, GPA: gpa, Subjects: map[string]results.SubjectScore{}}
}

func TestSort_ZeroRanksAboveNull(t *testing.T) {
	ds := results.Normalize([]results.RawRecord{
		{"roll": "1"},
		{"roll": "2", "gpa": 0.0},
		{"roll": "3", "gpa": 3.5},
	})
	got := results.Sort(ds.All(), "gpa", results.Asc, ds.Subjects)
	sameKeys(t, got, "2", "3", "1")
	got = results.Sort(ds.All(), "gpa", results.Desc, ds.Subjects)
	sameKeys(t, got, "3", "2", "1")
}

func TestSort_NonAttendedGoToBottom(t *testing.T) {
	in := []*results.Record{
		rec("1", results.StatusAbsent, fp(5)),
		rec("2", results.StatusQualified, fp(1)),
		rec("3", results.StatusNotQualified, fp(4)),
		rec("4", results.StatusQualified, fp(2)),
	}
	for _, dir := range []results.Direction{results.Asc, results.Desc} {
		got := results.Sort(in, "gpa", dir, nil)
		for i, r := range got[:2] {
			if r.Status != results.StatusQualified {
				t.Fatalf("%s: position %d holds %s (%s)", dir, i, r.Key, r.Status)
			}
		}
		// bottom keeps original relative order
		sameKeys(t, got[2:], "1", "3")
	}
}

func TestSort_RollAndNameIgnoreStatus(t *testing.T) {
	in := []*results.Record{
		rec("3", results.StatusQualified, nil),
		rec("1", results.StatusAbsent, nil),
		rec("2", results.StatusNotQualified, nil),
	}
	sameKeys(t, results.Sort(in, "roll", results.Asc, nil), "1", "2", "3")
	sameKeys(t, results.Sort(in, "roll", results.Desc, nil), "3", "2", "1")
	sameKeys(t, results.Sort(in, "name", results.Asc, nil), "1", "2", "3")
}

func TestSort_NumericRollNotLexical(t *testing.T) {
	in := []*results.Record{
		rec("10", results.StatusQualified, nil),
		rec("9", results.StatusQualified, nil),
		rec("100", results.StatusQualified, nil),
	}
	sameKeys(t, results.Sort(in, "roll", results.Asc, nil), "9", "10", "100")
}

func TestSort_BySubjectTermTotal(t *testing.T) {
	ds := mustDecode(t, `[
		{"roll": 1, "Physics": {"termTotal": "70"}},
		{"roll": 2, "Physics": {"termTotal": "A"}},
		{"roll": 3, "Physics": {"termTotal": 91}},
		{"roll": 4},
		{"roll": 5, "Physics": {"termTotal": "8"}}
	]`)
	got := results.Sort(ds.All(), "Physics", results.Desc, ds.Subjects)
	sameKeys(t, got, "3", "1", "5", "2", "4")
}

func TestSort_UnknownFieldIsStableNoop(t *testing.T) {
	in := []*results.Record{
		rec("2", results.StatusQualified, fp(1)),
		rec("1", results.StatusAbsent, fp(2)),
		rec("3", results.StatusQualified, fp(3)),
	}
	sameKeys(t, results.Sort(in, "shoeSize", results.Desc, nil), "2", "1", "3")
	// input is never reordered in place
	sameKeys(t, in, "2", "1", "3")
}

func TestSort_CustomField(t *testing.T) {
	s := results.NewSorter()
	s.Fields.Register(results.Field{
		Name: "url",
		Kind: results.Textual,
		Value: func(r *results.Record) any { return r.URL },
	})
	in := []*results.Record{
		{Key: "1", URL: "b", Status: results.StatusQualified},
		{Key: "2", URL: "", Status: results.StatusQualified},
		{Key: "3", URL: "a", Status: results.StatusQualified},
	}
	sameKeys(t, s.Sort(in, "url", results.Asc, nil), "3", "1", "2")
}

func TestParseSortToken(t *testing.T) {
	cases := []struct {
		token     string
		wantField string
		wantDir   results.Direction
	}{
		{"gpa|desc", "gpa", results.Desc},
		{"name|asc", "name", results.Asc},
		{"totalMark", "totalMark", results.Desc},
		{"|asc", "roll", results.Asc},
		{"", "roll", results.Desc},
	}
	for _, tc := range cases {
		f, d := results.ParseSortToken(tc.token, "roll", results.Desc)
		if f != tc.wantField || d != tc.wantDir {
			t.Fatalf("ParseSortToken(%q) = %s,%s", tc.token, f, d)
		}
	}
	if results.SortToken("gpa", results.Desc) != "gpa|desc" {
		t.Fatalf("SortToken round trip")
	}
}

func TestEndToEnd(t *testing.T) {
	ds := mustDecode(t, `[
		{"roll":1,"name":"X","status":"qualified","gpa":5.0,"gpaWithoutAdditional":5.0,"totalMark":500,
		 "Ranking":{"global":1,"section":1},"Physics":{"termTotal":95,"grade":"A+"}},
		{"roll":2,"name":"Y","status":"absent"}
	]`)
	sameKeys(t, results.Sort(ds.All(), "gpa", results.Asc, ds.Subjects), "1", "2")
	if n := results.GradeCount(ds.All(), results.GradeAPlus); n != 1 {
		t.Fatalf("GradeCount(A+) = %d, want 1", n)
	}
}
