package results

import (
	"math"
	"strings"
)

// Letter grades, best first.
const (
	GradeAPlus  = "A+"
	GradeA      = "A"
	GradeAMinus = "A-"
	GradeB      = "B"
	GradeC      = "C"
	GradeD      = "D"
	GradeF      = "F"
)

// Grades lists every overall letter grade in display order.
var Grades = []string{GradeAPlus, GradeA, GradeAMinus, GradeB, GradeC, GradeD, GradeF}

// GPAToGrade maps a GPA onto a letter grade.
func GPAToGrade(gpa float64) string {
	switch {
	case gpa >= 5.0:
		return GradeAPlus
	case gpa >= 4.0:
		return GradeA
	case gpa >= 3.5:
		return GradeAMinus
	case gpa >= 3.0:
		return GradeB
	case gpa >= 2.0:
		return GradeC
	case gpa >= 1.0:
		return GradeD
	}
	return GradeF
}

// AnalyticsGPA is the GPA used for every aggregate statistic: the GPA
// without the additional subject, 0 when missing.
func AnalyticsGPA(r *Record) float64 {
	if r.GPAWithoutAdditional == nil {
		return 0
	}
	return *r.GPAWithoutAdditional
}

// Counts is the population breakdown of a set of records.
type Counts struct {
	Total           int `json:"total" yaml:"total"`
	RosterQualified int `json:"qualified" yaml:"qualified"`
	NotQualified    int `json:"notQualified" yaml:"notQualified"`
	Attended        int `json:"attended" yaml:"attended"`
	NotAttended     int `json:"notAttended" yaml:"notAttended"`
}

// Count computes the population counts.
func Count(records []*Record) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		if r.RosterQualified() {
			c.RosterQualified++
		}
		if r.Attended() {
			c.Attended++
		}
	}
	c.NotQualified = c.Total - c.RosterQualified
	c.NotAttended = c.RosterQualified - c.Attended
	return c
}

// GradeCount counts attended students whose analytics GPA maps to grade.
func GradeCount(records []*Record, grade string) int {
	n := 0
	for _, r := range records {
		if r.Attended() && GPAToGrade(AnalyticsGPA(r)) == grade {
			n++
		}
	}
	return n
}

// SubjectGradeCount counts attended students with the given grade in subject.
func SubjectGradeCount(records []*Record, subject, grade string) int {
	n := 0
	for _, r := range records {
		if !r.Attended() {
			continue
		}
		if s, ok := r.Subjects[subject]; ok && s.Grade == grade {
			n++
		}
	}
	return n
}

// OptionalSubjects returns the student's subject keys that are excluded
// from fail counting. "biology" expands to every botany and zoology key;
// any other name matches subject keys containing it.
func OptionalSubjects(r *Record) []string {
	if r.OptionalSubject == nil {
		return nil
	}
	opt := strings.ToLower(*r.OptionalSubject)
	var out []string
	for key := range r.Subjects {
		k := strings.ToLower(key)
		var match bool
		if opt == "biology" {
			match = strings.Contains(k, "botany") || strings.Contains(k, "zoology")
		} else {
			match = strings.Contains(k, opt)
		}
		if match {
			out = append(out, key)
		}
	}
	return out
}

// FailedSubjects counts the F grades of an attended student, leaving out
// the optional subject. Students who did not attend have no failures.
func FailedSubjects(r *Record) int {
	if !r.Attended() {
		return 0
	}
	excluded := map[string]bool{}
	for _, k := range OptionalSubjects(r) {
		excluded[k] = true
	}
	n := 0
	for key, s := range r.Subjects {
		if s.Grade == GradeF && !excluded[key] {
			n++
		}
	}
	return n
}

// FailedCount counts attended students failing exactly n subjects.
func FailedCount(records []*Record, n int) int {
	c := 0
	for _, r := range records {
		if r.Attended() && FailedSubjects(r) == n {
			c++
		}
	}
	return c
}

// FailBuckets counts attended students by number of failed subjects.
type FailBuckets struct {
	One        int `json:"one" yaml:"one"`
	Two        int `json:"two" yaml:"two"`
	Three      int `json:"three" yaml:"three"`
	FourOrMore int `json:"fourOrMore" yaml:"fourOrMore"`
}

// CountFailBuckets fills the 1, 2, 3 and 4-or-more failure buckets.
func CountFailBuckets(records []*Record) FailBuckets {
	var b FailBuckets
	for _, r := range records {
		if !r.Attended() {
			continue
		}
		switch n := FailedSubjects(r); {
		case n == 1:
			b.One++
		case n == 2:
			b.Two++
		case n == 3:
			b.Three++
		case n >= 4:
			b.FourOrMore++
		}
	}
	return b
}

// SubjectStats summarises one subject.
type SubjectStats struct {
	Subject   string         `json:"subject" yaml:"subject"`
	Qualified int            `json:"qualified" yaml:"qualified"`
	Attended  int            `json:"attended" yaml:"attended"`
	Passed    int            `json:"passed" yaml:"passed"`
	Failed    int            `json:"failed" yaml:"failed"`
	PassRate  float64        `json:"passRate" yaml:"passRate"`
	Grades    map[string]int `json:"grades" yaml:"grades"`
}

// CardGrades are the per-subject grades shown on a subject card.
var CardGrades = []string{GradeAPlus, GradeA, GradeAMinus, GradeB}

// ComputeSubjectStats computes the card for subject.
func ComputeSubjectStats(records []*Record, subject string) SubjectStats {
	st := SubjectStats{Subject: subject, Grades: map[string]int{}}
	for _, r := range records {
		s, ok := r.Subjects[subject]
		if !ok {
			continue
		}
		if r.RosterQualified() {
			st.Qualified++
		}
		if r.Attended() {
			st.Attended++
			if s.Grade != GradeF {
				st.Passed++
			}
		}
	}
	st.Failed = st.Attended - st.Passed
	st.PassRate = Rate(st.Passed, st.Attended)
	for _, g := range CardGrades {
		st.Grades[g] = SubjectGradeCount(records, subject, g)
	}
	return st
}

// AllSubjectStats computes a card for every subject key in order.
func AllSubjectStats(ds *Dataset) []SubjectStats {
	all := ds.All()
	out := make([]SubjectStats, 0, len(ds.Subjects))
	for _, s := range ds.Subjects {
		out = append(out, ComputeSubjectStats(all, s))
	}
	return out
}

// Rate returns part/whole as a percentage, 0 when whole is 0.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round1 rounds a percentage to one decimal place.
func Round1(f float64) float64 { return math.Round(f*10) / 10 }

// OverallGroup is the label of the group covering every record.
const OverallGroup = "Overall"

// Group is a labelled subset of the records.
type Group struct {
	Label   string
	Records []*Record
}

// Groups returns the Overall group followed by one group per distinct
// non-empty section, in first-seen order.
func Groups(ds *Dataset) []Group {
	all := ds.All()
	groups := []Group{{Label: OverallGroup, Records: all}}
	index := map[string]int{}
	for _, r := range all {
		if strings.TrimSpace(r.Section) == "" {
			continue
		}
		i, ok := index[r.Section]
		if !ok {
			i = len(groups)
			index[r.Section] = i
			groups = append(groups, Group{Label: r.Section})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// InSection returns the records whose section equals label.
func InSection(records []*Record, label string) []*Record {
	var out []*Record
	for _, r := range records {
		if r.Section == label {
			out = append(out, r)
		}
	}
	return out
}

// Stat is a count optionally paired with its share of attended students.
type Stat struct {
	Count   int      `json:"count" yaml:"count"`
	Percent *float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// SummaryRow is one line of the section summary.
type SummaryRow struct {
	Label  string          `json:"label" yaml:"label"`
	Counts Counts          `json:"counts" yaml:"counts"`
	Passed Stat            `json:"passed" yaml:"passed"`
	Failed Stat            `json:"failed" yaml:"failed"`
	Grades map[string]Stat `json:"grades" yaml:"grades"`
	Fails  []Stat          `json:"fails" yaml:"fails"` // exactly 1, 2, 3 and 4 or more
}

// SummaryGrades are the grade columns of the section summary.
var SummaryGrades = []string{GradeAPlus, GradeA, GradeAMinus, GradeB, GradeC, GradeD}

// Summarize builds the summary row for one group.
func Summarize(g Group) SummaryRow {
	c := Count(g.Records)
	stat := func(n int) Stat {
		s := Stat{Count: n}
		if c.Attended > 0 {
			p := Round1(Rate(n, c.Attended))
			s.Percent = &p
		}
		return s
	}

	failed := GradeCount(g.Records, GradeF)
	row := SummaryRow{
		Label:  g.Label,
		Counts: c,
		Passed: stat(c.Attended - failed),
		Failed: stat(failed),
		Grades: map[string]Stat{},
	}
	for _, grade := range SummaryGrades {
		row.Grades[grade] = stat(GradeCount(g.Records, grade))
	}
	b := CountFailBuckets(g.Records)
	row.Fails = []Stat{stat(b.One), stat(b.Two), stat(b.Three), stat(b.FourOrMore)}
	return row
}

// SectionSummary builds the Overall row followed by one row per section.
func SectionSummary(ds *Dataset) []SummaryRow {
	groups := Groups(ds)
	rows := make([]SummaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, Summarize(g))
	}
	return rows
}
