package view_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

const sheet = `[
  {"roll": 101, "name": "Rahim", "Section": "A", "gpa": 5, "gpaWithoutAdditional": 5, "totalMark": 1120.4,
   "Ranking": {"global": 1, "section": 1}, "url": "https://t/101.pdf",
   "physics": {"cq": "18", "mcq": "4.5", "practical": "2", "termTotal": "95", "grade": "A+"},
   "chemistry": {"cq": "A", "mcq": "", "practical": "", "termTotal": "30", "grade": "F"}},
  {"roll": 102, "name": "Karim", "Section": "B", "status": "absent",
   "physics": {"termTotal": ""}},
  {"roll": 103, "name": "Jamal", "gpaWithoutAdditional": 3.2,
   "physics": {"cq": "9", "termTotal": "52", "grade": "B"}}
]`

func load(t *testing.T) *results.Dataset {
	t.Helper()
	ds, err := results.Decode(strings.NewReader(sheet))
	require.NoError(t, err)
	return ds
}

func TestState_TogglesAreExclusive(t *testing.T) {
	st := view.NewState()
	assert.Equal(t, "roll|asc", st.SortToken())
	assert.True(t, st.Compact)

	st.ToggleSubject("physics")
	st.ToggleRow("101")
	assert.Equal(t, "", st.DetailSubject)
	assert.Equal(t, "101", st.DetailRow)

	st.ToggleSubject("physics")
	assert.Equal(t, "physics", st.DetailSubject)
	assert.Equal(t, "", st.DetailRow)

	st.ToggleSubject("physics")
	assert.Equal(t, "", st.DetailSubject)

	st.ToggleRow("101")
	st.SetCompact(false)
	assert.Equal(t, "", st.DetailRow)
	assert.False(t, st.Compact)
}

func TestState_SetSortKeepsMissingParts(t *testing.T) {
	st := view.NewState()
	st.SetSort("gpa|desc")
	assert.Equal(t, "gpa|desc", st.SortToken())
	st.SetSort("|asc")
	assert.Equal(t, "gpa|asc", st.SortToken())
	st.SetSort("physics")
	assert.Equal(t, "physics|asc", st.SortToken())
}

func TestBuild_LayoutAndPadding(t *testing.T) {
	ds := load(t)
	tbl := view.Build(ds, view.NewState())

	var labels []string
	for _, c := range tbl.Columns {
		labels = append(labels, c.Label)
	}
	want := []string{"", "Roll", "Name", "Overall Rank", "Section Rank", "GPA", "GPA (with optional)", "Total", "Physics", "Chemistry", "Transcript"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("header (-want +got):\n%s", diff)
	}

	require.Len(t, tbl.Rows, view.MinRows)
	assert.Equal(t, 3, tbl.Matched)
	for _, r := range tbl.Rows[3:] {
		assert.True(t, r.Blank)
		assert.Len(t, r.Cells, len(tbl.Columns))
	}

	top := tbl.Rows[0]
	assert.Equal(t, "101", top.Key)
	texts := make([]string, len(top.Cells))
	for i, c := range top.Cells {
		texts[i] = c.Text
	}
	assert.Equal(t, []string{"+", "101", "Rahim", "1", "1 (A)", "5.00", "5.00", "1120", "95", "30", "View"}, texts)
	assert.Equal(t, view.ClassGood, top.Cells[5].Class)
	assert.Equal(t, view.ClassGood, top.Cells[8].Class)
	assert.Equal(t, view.ClassDanger, top.Cells[9].Class)
	assert.Equal(t, "https://t/101.pdf", top.Cells[10].Link)
}

func TestBuild_NonAttendedCollapsed(t *testing.T) {
	tbl := view.Build(load(t), view.NewState())
	absent := tbl.Rows[1]
	require.Equal(t, "102", absent.Key)
	require.Len(t, absent.Cells, 5)
	status := absent.Cells[3]
	assert.Equal(t, "ABSENT", status.Text)
	assert.Equal(t, view.ClassAbsent, status.Class)
	assert.Equal(t, 2+5, status.Span)
}

func TestBuild_MissingValues(t *testing.T) {
	tbl := view.Build(load(t), view.NewState())
	r := tbl.Rows[2]
	require.Equal(t, "103", r.Key)
	assert.Equal(t, "-", r.Cells[3].Text, "global rank")
	assert.Equal(t, "-", r.Cells[4].Text, "section rank without section")
	assert.Equal(t, "3.20", r.Cells[5].Text)
	assert.Equal(t, "0.00", r.Cells[6].Text)
	assert.Equal(t, view.ClassDanger, r.Cells[6].Class)
	assert.Equal(t, "-", r.Cells[7].Text, "total mark")
	assert.Equal(t, view.ClassMuted, r.Cells[9].Class, "no chemistry entry")
	assert.Equal(t, "", r.Cells[10].Text)
}

func TestBuild_DetailSubject(t *testing.T) {
	st := view.NewState()
	st.ToggleSubject("physics")
	tbl := view.Build(load(t), st)

	assert.True(t, tbl.Columns[8].Expanded)
	assert.False(t, tbl.Columns[9].Expanded)

	parts := tbl.Rows[0].Cells[8].Parts
	require.Len(t, parts, len(view.SubMarkLabels))
	assert.Equal(t, view.ClassGood, parts[0].Class, "cq 18")
	assert.Equal(t, view.ClassGood, parts[1].Class, "mcq 4.5")
	assert.Equal(t, view.ClassDanger, parts[2].Class, "practical 2")
	assert.Equal(t, view.ClassGood, parts[3].Class)
	assert.Empty(t, tbl.Rows[0].Cells[9].Parts)

	low := tbl.Rows[2].Cells[8].Parts
	assert.Equal(t, view.ClassDanger, low[0].Class, "cq 9")
	assert.Equal(t, "-", low[1].Text)
}

func TestBuild_DetailRow(t *testing.T) {
	st := view.NewState()
	st.ToggleRow("101")
	tbl := view.Build(load(t), st)
	assert.True(t, tbl.Rows[0].Open)
	assert.Equal(t, "-", tbl.Rows[0].Cells[0].Text)
	chem := tbl.Rows[0].Cells[9].Parts
	require.Len(t, chem, 4)
	assert.Equal(t, view.ClassWarning, chem[0].Class)
	assert.Empty(t, tbl.Rows[2].Cells[8].Parts, "other rows stay compact")
}

func TestBuild_SearchAndSort(t *testing.T) {
	st := view.NewState()
	st.SetSort("gpaWithoutAdditional|desc")
	tbl := view.Build(load(t), st)
	assert.Equal(t, []string{"101", "103", "102"}, []string{tbl.Rows[0].Key, tbl.Rows[1].Key, tbl.Rows[2].Key})

	st.SetSearch("  KAR ")
	tbl = view.Build(load(t), st)
	assert.Equal(t, 1, tbl.Matched)
	assert.Equal(t, "102", tbl.Rows[0].Key)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, view.ClassNone, view.CQClass("12"))
	assert.Equal(t, view.ClassNone, view.CQClass(""))
	assert.Equal(t, view.ClassNone, view.CQClass("-"))
	assert.Equal(t, view.ClassDanger, view.CQClass("9.5"))
	assert.Equal(t, view.ClassGood, view.CQClass("16.5"))
	assert.Equal(t, view.ClassNone, view.SubMarkClass("3"))
	assert.Equal(t, view.ClassGood, view.SubMarkClass("5"))
	assert.Equal(t, view.ClassNone, view.GPAClass(4.5))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Physics_1st", view.SubjectName("physics_1st"))
	assert.Equal(t, "", view.SubjectName(""))

	title, sub := view.ExamTitle("test.2025.hsc.science.2024-2025")
	assert.Equal(t, "Test", title)
	assert.Equal(t, "2025 | Hsc | Science | 2024-2025", sub)

	opts := view.SortOptions([]string{"physics"})
	require.Len(t, opts, 14+3)
	assert.True(t, opts[14].Disabled)
	assert.Equal(t, "physics|desc", opts[15].Value)
	assert.Equal(t, "Sort by Physics (Low to High)", opts[16].Label)
	assert.Len(t, view.SortOptions(nil), 14)
}

func TestSummaryTableAndCards(t *testing.T) {
	ds := load(t)
	tbl := view.SummaryTable(ds)
	require.Len(t, tbl.Rows, 3)
	overall := tbl.Rows[0]
	assert.Equal(t, "Overall", overall.Cells[0].Text)
	assert.Equal(t, "3", overall.Cells[1].Text)
	assert.Equal(t, "1", overall.Cells[5].Text, "not attended")
	assert.Equal(t, view.ClassWarning, overall.Cells[5].Class)
	assert.Equal(t, "2 (100.0%)", overall.Cells[6].Text, "passed")
	assert.Equal(t, "0 (0.0%)", overall.Cells[7].Text, "failed")
	assert.Len(t, overall.Cells, len(view.SummaryHeaders))

	sectionB := tbl.Rows[2]
	assert.Equal(t, "B", sectionB.Cells[0].Text)
	assert.Equal(t, "0", sectionB.Cells[6].Text, "no percentage without attendees")
	assert.Equal(t, view.ClassNone, sectionB.Cells[6].Class)

	cards := view.SubjectCards(ds)
	require.Len(t, cards, 2)
	assert.Equal(t, "Physics", cards[0].Title)
	assert.Equal(t, "100.0%", cards[0].PassRate)
	assert.Equal(t, view.Line{Label: "Qualified", Value: 3}, cards[0].Lines[0])
	assert.Equal(t, "0.0%", cards[1].PassRate)
}

func TestSubjectCards_PassRateRoundsHalfUp(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 1; i <= 16; i++ {
		grade := "F"
		if i == 1 {
			grade = "A"
		}
		if i > 1 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"roll":%d,"physics":{"termTotal":"50","grade":%q}}`, i, grade)
	}
	sb.WriteString("]")
	ds, err := results.Decode(strings.NewReader(sb.String()))
	require.NoError(t, err)

	cards := view.SubjectCards(ds)
	require.Len(t, cards, 1)
	assert.Equal(t, "6.3%", cards[0].PassRate, "1 of 16 is 6.25%")
}

func TestBuild_ZeroTermTotalShown(t *testing.T) {
	ds, err := results.Decode(strings.NewReader(`[{"roll":1,"physics":{"cq":"0","mcq":"0","practical":"0","termTotal":0,"grade":"F"}}]`))
	require.NoError(t, err)
	st := view.NewState()
	st.SetCompact(false)

	cell := view.Build(ds, st).Rows[0].Cells[8]
	assert.Equal(t, "0", cell.Text)
	require.Len(t, cell.Parts, len(view.SubMarkLabels))
	assert.Equal(t, "0", cell.Parts[3].Text)
	assert.Equal(t, view.ClassDanger, cell.Parts[3].Class)
}
