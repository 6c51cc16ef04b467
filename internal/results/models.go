package results

import "strings"

// Status is the exam status of a student.
type Status string

const (
	StatusQualified    Status = "qualified"
	StatusAbsent       Status = "absent"
	StatusNotQualified Status = "not qualified"
)

// ParseStatus maps raw status text onto a Status. Missing text means qualified.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "qualified":
		return StatusQualified
	case "absent":
		return StatusAbsent
	default:
		// "not qualified", "not-qualified" and anything unrecognised
		return StatusNotQualified
	}
}

type Ranking struct {
	Global  *float64 `json:"global"`
	Section *float64 `json:"section"`
}

// SubjectScore holds one subject's marks. Mark fields are display strings
// exactly as they came in ("" when missing, "A" for an absent CQ).
type SubjectScore struct {
	CQ        string   `json:"cq" yaml:"cq"`
	MCQ       string   `json:"mcq" yaml:"mcq"`
	Practical string   `json:"practical" yaml:"practical"`
	TermTotal string   `json:"termTotal" yaml:"termTotal"`
	Grade     string   `json:"grade" yaml:"grade"`
	GP        *float64 `json:"gp" yaml:"gp"`
}

// Record is the canonical form of one student's result.
type Record struct {
	Key                  string                  `json:"-" yaml:"-"`
	Roll                 any                     `json:"roll" yaml:"roll"`
	Name                 string                  `json:"name" yaml:"name"`
	Section              string                  `json:"section" yaml:"section"`
	Status               Status                  `json:"status" yaml:"status"`
	GPA                  *float64                `json:"gpa" yaml:"gpa"`
	GPAWithoutAdditional *float64                `json:"gpaWithoutAdditional" yaml:"gpaWithoutAdditional"`
	TotalMark            *float64                `json:"totalMark" yaml:"totalMark"`
	Ranking              Ranking                 `json:"ranking" yaml:"ranking"`
	Subjects             map[string]SubjectScore `json:"subjects" yaml:"subjects"`
	OptionalSubject      *string                 `json:"optionalSubject" yaml:"optionalSubject"`
	URL                  string                  `json:"url" yaml:"url"`
}

// Attended reports whether the student sat the exam and has scores.
func (r *Record) Attended() bool { return r.Status == StatusQualified }

// RosterQualified reports whether the student was on the exam roster,
// i.e. qualified to sit, whether or not they turned up.
func (r *Record) RosterQualified() bool {
	return r.Status == StatusQualified || r.Status == StatusAbsent
}

// HasSubject reports whether the student has a score for subject.
func (r *Record) HasSubject(subject string) bool {
	_, ok := r.Subjects[subject]
	return ok
}

// Dataset is the normalized result of one data load. It is never mutated
// after Normalize returns.
type Dataset struct {
	Records  map[string]*Record
	Order    []string // iteration order of Records
	Subjects []string // subject keys in order of first discovery
}

// All returns the records in iteration order.
func (d *Dataset) All() []*Record {
	out := make([]*Record, 0, len(d.Order))
	for _, k := range d.Order {
		out = append(out, d.Records[k])
	}
	return out
}

// IsSubject reports whether key is one of the discovered subject keys.
func (d *Dataset) IsSubject(key string) bool {
	for _, s := range d.Subjects {
		if s == key {
			return true
		}
	}
	return false
}
