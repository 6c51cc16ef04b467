package view

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SubjectName is the display form of a subject key: first letter upper-cased,
// the rest untouched ("physics_1st" -> "Physics_1st").
func SubjectName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

// ExamTitle splits a result identifier such as "test.2025.hsc.science.2024-2025"
// into a heading ("Test") and a subtitle ("2025 | Hsc | Science | 2024-2025").
func ExamTitle(id string) (title, subtitle string) {
	id = strings.TrimSuffix(id, ".json")
	parts := strings.Split(id, ".")
	titler := cases.Title(language.Und, cases.NoLower)
	for i, p := range parts {
		parts[i] = titler.String(p)
	}
	return parts[0], strings.Join(parts[1:], " | ")
}

// Option is one entry of the sort menu. Disabled entries are separators.
type Option struct {
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Label    string `json:"label" yaml:"label"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

var baseOptions = []Option{
	{Value: "roll|asc", Label: "Sort by Roll (Ascending)"},
	{Value: "roll|desc", Label: "Sort by Roll (Descending)"},
	{Value: "name|asc", Label: "Sort by Name (A-Z)"},
	{Value: "name|desc", Label: "Sort by Name (Z-A)"},
	{Value: "gpa|desc", Label: "Sort by GPA (with optional) (High to Low)"},
	{Value: "gpa|asc", Label: "Sort by GPA (with optional) (Low to High)"},
	{Value: "gpaWithoutAdditional|desc", Label: "Sort by GPA (High to Low)"},
	{Value: "gpaWithoutAdditional|asc", Label: "Sort by GPA (Low to High)"},
	{Value: "totalMark|desc", Label: "Sort by Total Marks (High to Low)"},
	{Value: "totalMark|asc", Label: "Sort by Total Marks (Low to High)"},
	{Value: "global|asc", Label: "Sort by Overall Rank (Best to Worst)"},
	{Value: "global|desc", Label: "Sort by Overall Rank (Worst to Best)"},
	{Value: "section|asc", Label: "Sort by Section Rank (Best to Worst)"},
	{Value: "section|desc", Label: "Sort by Section Rank (Worst to Best)"},
}

// SortOptions builds the sort menu: the fixed fields, then a separator and
// a high-to-low and low-to-high entry per subject.
func SortOptions(subjects []string) []Option {
	out := make([]Option, 0, len(baseOptions)+1+2*len(subjects))
	out = append(out, baseOptions...)
	if len(subjects) == 0 {
		return out
	}
	out = append(out, Option{Label: "Subjects", Disabled: true})
	for _, s := range subjects {
		name := SubjectName(s)
		out = append(out,
			Option{Value: s + "|desc", Label: "Sort by " + name + " (High to Low)"},
			Option{Value: s + "|asc", Label: "Sort by " + name + " (Low to High)"},
		)
	}
	return out
}
