package view

import (
	"fmt"
	"strconv"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
)

// MinRows is the minimum number of body rows; shorter tables are padded
// with blank rows so the layout does not collapse.
const MinRows = 8

// Placeholder is shown for missing values.
const Placeholder = "-"

// Column keys of the fixed part of the table.
const (
	ColToggle     = "toggle"
	ColRoll       = "roll"
	ColName       = "name"
	ColGlobal     = "global"
	ColSection    = "section"
	ColGPA        = "gpaWithoutAdditional"
	ColGPAWithOpt = "gpa"
	ColTotal      = "totalMark"
	ColTranscript = "transcript"
)

// SubMarkLabels name the parts of an expanded subject cell.
var SubMarkLabels = []string{"CQ", "MCQ", "Prac", "Total"}

// Column is one header cell. Subject columns carry the subject key and
// whether they currently show the four sub-marks.
type Column struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Subject  bool   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Expanded bool   `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// Cell is one body cell. Expanded subject cells hold their sub-marks in
// Parts; a status cell spans several columns.
type Cell struct {
	Text  string `json:"text" yaml:"text"`
	Class Class  `json:"class,omitempty" yaml:"class,omitempty"`
	Span  int    `json:"span,omitempty" yaml:"span,omitempty"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
	Parts []Cell `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// Row is one table row. Blank rows are padding.
type Row struct {
	Key    string         `json:"key,omitempty" yaml:"key,omitempty"`
	Status results.Status `json:"status,omitempty" yaml:"status,omitempty"`
	Open   bool           `json:"open,omitempty" yaml:"open,omitempty"`
	Blank  bool           `json:"blank,omitempty" yaml:"blank,omitempty"`
	Cells  []Cell         `json:"cells" yaml:"cells"`
}

// Table is the rendered result sheet.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	// Matched is the number of records after filtering, before padding.
	Matched int `json:"matched" yaml:"matched"`
}

// Build filters, sorts and lays out the dataset for the given state. It
// never modifies ds.
func Build(ds *results.Dataset, st State) Table {
	records := results.Filter(ds, st.Search)
	records = results.Sort(records, st.SortField, st.SortDir, ds.Subjects)

	t := Table{Columns: header(ds.Subjects, st), Matched: len(records)}
	for _, r := range records {
		t.Rows = append(t.Rows, row(r, ds.Subjects, st))
	}
	for len(t.Rows) < MinRows {
		t.Rows = append(t.Rows, blankRow(len(t.Columns)))
	}
	return t
}

func header(subjects []string, st State) []Column {
	cols := []Column{
		{Key: ColToggle},
		{Key: ColRoll, Label: "Roll"},
		{Key: ColName, Label: "Name"},
		{Key: ColGlobal, Label: "Overall Rank"},
		{Key: ColSection, Label: "Section Rank"},
		{Key: ColGPA, Label: "GPA"},
		{Key: ColGPAWithOpt, Label: "GPA (with optional)"},
		{Key: ColTotal, Label: "Total"},
	}
	for _, s := range subjects {
		cols = append(cols, Column{Key: s, Label: SubjectName(s), Subject: true, Expanded: st.subjectExpanded(s)})
	}
	return append(cols, Column{Key: ColTranscript, Label: "Transcript"})
}

func row(r *results.Record, subjects []string, st State) Row {
	open := st.DetailRow != "" && st.DetailRow == r.Key
	toggle := "+"
	if open {
		toggle = "-"
	}
	out := Row{Key: r.Key, Status: r.Status, Open: open}
	out.Cells = append(out.Cells, Cell{Text: toggle}, Cell{Text: rollText(r)}, Cell{Text: r.Name})

	if !r.Attended() {
		status := Cell{Text: "NOT QUALIFIED", Class: ClassNotQualified, Span: len(subjects) + 5}
		if r.Status == results.StatusAbsent {
			status.Text, status.Class = "ABSENT", ClassAbsent
		}
		out.Cells = append(out.Cells, status, transcript(r))
		return out
	}

	gpa := results.AnalyticsGPA(r)
	gpaOpt := 0.0
	if r.GPA != nil {
		gpaOpt = *r.GPA
	}
	out.Cells = append(out.Cells,
		Cell{Text: numberText(r.Ranking.Global)},
		Cell{Text: sectionRankText(r)},
		Cell{Text: fmt.Sprintf("%.2f", gpa), Class: GPAClass(gpa)},
		Cell{Text: fmt.Sprintf("%.2f", gpaOpt), Class: GPAClass(gpaOpt)},
		Cell{Text: totalText(r.TotalMark)},
	)
	for _, s := range subjects {
		out.Cells = append(out.Cells, subjectCell(r, s, st))
	}
	out.Cells = append(out.Cells, transcript(r))
	return out
}

func subjectCell(r *results.Record, subject string, st State) Cell {
	sc, ok := r.Subjects[subject]
	if !ok {
		return Cell{Text: Placeholder, Class: ClassMuted}
	}
	if !st.cellExpanded(subject, r.Key) {
		return Cell{Text: orPlaceholder(sc.TermTotal), Class: GradeClass(sc.Grade)}
	}
	return Cell{
		Text: orPlaceholder(sc.TermTotal),
		Parts: []Cell{
			{Text: orPlaceholder(sc.CQ), Class: CQClass(sc.CQ)},
			{Text: orPlaceholder(sc.MCQ), Class: SubMarkClass(sc.MCQ)},
			{Text: orPlaceholder(sc.Practical), Class: SubMarkClass(sc.Practical)},
			{Text: orPlaceholder(sc.TermTotal), Class: GradeClass(sc.Grade)},
		},
	}
}

func transcript(r *results.Record) Cell {
	if r.URL == "" {
		return Cell{}
	}
	return Cell{Text: "View", Link: r.URL}
}

func blankRow(n int) Row {
	return Row{Blank: true, Cells: make([]Cell, n)}
}

func rollText(r *results.Record) string {
	if r.Roll == nil {
		return ""
	}
	return r.Key
}

func sectionRankText(r *results.Record) string {
	if r.Ranking.Section == nil || r.Section == "" {
		return Placeholder
	}
	return fmt.Sprintf("%s (%s)", formatFloat(*r.Ranking.Section), r.Section)
}

func numberText(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return formatFloat(*p)
}

func totalText(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*p, 'f', 0, 64)
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
