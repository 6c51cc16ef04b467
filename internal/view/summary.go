package view

import (
	"fmt"
	"strconv"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

// SummaryHeaders label the section summary columns.
var SummaryHeaders = []string{
	"Section", "Total", "Qualified", "Not Qualified", "Attended", "Not Attended",
	"Passed", "Failed", "A+", "A", "A-", "B", "C", "D",
	"Failed 1", "Failed 2", "Failed 3", "Failed 4+",
}

// SummaryTable lays out the section summary: Overall first, then one row
// per section in first-seen order.
func SummaryTable(ds *results.Dataset) Table {
	t := Table{}
	for _, h := range SummaryHeaders {
		t.Columns = append(t.Columns, Column{Key: h, Label: h})
	}
	for _, s := range results.SectionSummary(ds) {
		t.Rows = append(t.Rows, summaryRow(s))
	}
	t.Matched = len(t.Rows)
	return t
}

func summaryRow(s results.SummaryRow) Row {
	count := func(n int, c Class) Cell { return Cell{Text: strconv.Itoa(n), Class: c} }
	stat := func(st results.Stat, c Class) Cell {
		cell := Cell{Text: strconv.Itoa(st.Count)}
		if st.Percent != nil {
			cell.Text = fmt.Sprintf("%d (%.1f%%)", st.Count, *st.Percent)
			cell.Class = c
		}
		return cell
	}

	cells := []Cell{
		{Text: s.Label},
		count(s.Counts.Total, ClassNone),
		count(s.Counts.RosterQualified, ClassNone),
		count(s.Counts.NotQualified, ClassWarning),
		count(s.Counts.Attended, ClassNone),
		count(s.Counts.NotAttended, ClassWarning),
		stat(s.Passed, ClassGood),
		stat(s.Failed, ClassDanger),
	}
	for _, g := range results.SummaryGrades {
		cells = append(cells, stat(s.Grades[g], ClassGood))
	}
	for _, f := range s.Fails {
		cells = append(cells, stat(f, ClassDanger))
	}
	return Row{Key: s.Label, Cells: cells}
}

// Card is one subject statistics card.
type Card struct {
	Subject  string `json:"subject" yaml:"subject"`
	Title    string `json:"title" yaml:"title"`
	PassRate string `json:"passRate" yaml:"passRate"`
	Lines    []Line `json:"lines" yaml:"lines"`
}

// Line is a label/value pair on a card.
type Line struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// SubjectCards builds one card per subject key, in discovery order.
func SubjectCards(ds *results.Dataset) []Card {
	stats := results.AllSubjectStats(ds)
	out := make([]Card, 0, len(stats))
	for _, st := range stats {
		c := Card{
			Subject:  st.Subject,
			Title:    SubjectName(st.Subject),
			PassRate: passRateText(st),
			Lines: []Line{
				{"Qualified", st.Qualified},
				{"Attended", st.Attended},
				{"Passed", st.Passed},
				{"Failed", st.Failed},
			},
		}
		for _, g := range results.CardGrades {
			c.Lines = append(c.Lines, Line{g, st.Grades[g]})
		}
		out = append(out, c)
	}
	return out
}

// passRateText prints the rate with one decimal, halves rounded up, and
// "0%" when nobody attended.
func passRateText(st results.SubjectStats) string {
	if st.Attended == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", results.Round1(st.PassRate))
}
