package results_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

func TestClassify_SentinelsAreNull(t *testing.T) {
	for _, raw := range []string{"N/A", "n/a", "-", "—", "–", "−", "absent", "ABSENT", " Absent ", "Not Qualified", "NA", "none", "NULL", "undefined", "", "   "} {
		for _, kind := range []results.Kind{results.Numeric, results.Textual} {
			if k := results.Classify(raw, kind); !k.Null() {
				t.Fatalf("Classify(%q, %v) = %+v, want null", raw, kind, k)
			}
		}
	}
}

func TestClassify_Numeric(t *testing.T) {
	cases := []struct {
		raw  any
		want float64
	}{
		{"1,234", 1234},
		{"87%", 87},
		{" 4.50 ", 4.5},
		{"12 marks", 12},
		{json.Number("3.25"), 3.25},
		{5, 5},
		{0.0, 0},
	}
	for _, tc := range cases {
		k := results.Classify(tc.raw, results.Numeric)
		if k.Null() || k.Num != tc.want {
			t.Fatalf("Classify(%v) = %+v, want %v", tc.raw, k, tc.want)
		}
	}
}

func TestClassify_NumericUnparsableIsNull(t *testing.T) {
	for _, raw := range []any{"abc", "A", "%", math.NaN(), math.Inf(1), nil} {
		if k := results.Classify(raw, results.Numeric); !k.Null() {
			t.Fatalf("Classify(%v) = %+v, want null", raw, k)
		}
	}
	var missing *float64
	if k := results.Classify(missing, results.Numeric); !k.Null() {
		t.Fatalf("nil pointer should classify as null")
	}
}

func TestClassify_TextualLowercases(t *testing.T) {
	k := results.Classify("  Rahim Uddin ", results.Textual)
	if k.Null() || k.Text != "rahim uddin" {
		t.Fatalf("got %+v", k)
	}
	k = results.Classify(json.Number("42"), results.Textual)
	if k.Null() || k.Text != "42" {
		t.Fatalf("number as text: got %+v", k)
	}
}

func TestCompare(t *testing.T) {
	a := results.Classify("2", results.Numeric)
	b := results.Classify("10", results.Numeric)
	if results.Compare(a, b, results.Numeric) >= 0 {
		t.Fatalf("numeric 2 should sort before 10")
	}
	x := results.Classify("2", results.Textual)
	y := results.Classify("10", results.Textual)
	if results.Compare(x, y, results.Textual) <= 0 {
		t.Fatalf("textual \"2\" should sort after \"10\"")
	}
}
