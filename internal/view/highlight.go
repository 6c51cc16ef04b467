package view

import (
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

// Class is a renderer-neutral cell highlight.
type Class string

const (
	ClassNone         Class = ""
	ClassGood         Class = "good"
	ClassDanger       Class = "danger"
	ClassWarning      Class = "warning"
	ClassAbsent       Class = "absent"
	ClassNotQualified Class = "not-qualified"
	ClassMuted        Class = "muted"
)

// subMarkBase is the full mark of one CQ component; MCQ and practical
// thresholds are derived from a quarter of it.
const subMarkBase = 20.0

// GPAClass highlights failing (0) and perfect (5) GPAs.
func GPAClass(gpa float64) Class {
	switch gpa {
	case 0:
		return ClassDanger
	case 5:
		return ClassGood
	}
	return ClassNone
}

// GradeClass highlights a subject total by its letter grade.
func GradeClass(grade string) Class {
	switch grade {
	case results.GradeF:
		return ClassDanger
	case results.GradeAPlus:
		return ClassGood
	}
	return ClassNone
}

// CQClass highlights a creative-question mark. "A" marks an absent paper.
func CQClass(mark string) Class {
	if mark == "A" {
		return ClassWarning
	}
	return threshold(mark, subMarkBase/2, subMarkBase*0.8)
}

// SubMarkClass highlights an MCQ or practical mark.
func SubMarkClass(mark string) Class {
	q := subMarkBase / 4
	return threshold(mark, q/2, q*0.8)
}

func threshold(mark string, low, high float64) Class {
	k := results.Classify(mark, results.Numeric)
	switch {
	case k.Null():
		return ClassNone
	case k.Num < low:
		return ClassDanger
	case k.Num > high:
		return ClassGood
	}
	return ClassNone
}
