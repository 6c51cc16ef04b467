// Package render draws view tables for the terminal and encodes them as
// JSON or YAML.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

// Heading renders the exam title and subtitle of a result identifier.
func Heading(id string, st Styles) string {
	title, sub := view.ExamTitle(id)
	return st.Title.Render(title) + "\n" + st.Subtitle.Render(sub) + "\n"
}

// Table lays the table out in aligned columns. A status cell spanning
// several columns is drawn in the first of them.
func Table(t view.Table, st Styles) string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = headerText(c)
	}

	grid := make([][]string, len(t.Rows))
	classes := make([][]view.Class, len(t.Rows))
	for i, r := range t.Rows {
		grid[i], classes[i] = expandRow(r, len(t.Columns), st)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range grid {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // padding
	}

	var sb strings.Builder
	sep := st.Divider.Render("|")
	for i, h := range headers {
		sb.WriteString(st.Header.Width(widths[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")

	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(st.Divider.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for r, row := range grid {
		for i, cell := range row {
			style := st.Cell.Inherit(st.class(classes[r][i]))
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func headerText(c view.Column) string {
	if c.Subject && c.Expanded {
		return c.Label + " [" + strings.Join(view.SubMarkLabels, " ") + "]"
	}
	if c.Key == view.ColToggle {
		return " "
	}
	return c.Label
}

// expandRow flattens a row into exactly n cells, styling sub-marks inline.
func expandRow(r view.Row, n int, st Styles) ([]string, []view.Class) {
	cells := make([]string, 0, n)
	classes := make([]view.Class, 0, n)
	for _, c := range r.Cells {
		text := c.Text
		if len(c.Parts) > 0 {
			parts := make([]string, len(c.Parts))
			for i, p := range c.Parts {
				parts[i] = st.class(p.Class).Render(p.Text)
			}
			text = strings.Join(parts, " ")
		}
		cells = append(cells, text)
		if len(c.Parts) > 0 {
			classes = append(classes, view.ClassNone)
		} else {
			classes = append(classes, c.Class)
		}
		for i := 1; i < c.Span; i++ {
			cells = append(cells, "")
			classes = append(classes, view.ClassNone)
		}
	}
	for len(cells) < n {
		cells = append(cells, "")
		classes = append(classes, view.ClassNone)
	}
	return cells[:n], classes[:n]
}

// Flatten returns the row as exactly n unstyled cell strings.
func Flatten(r view.Row, n int) []string {
	cells, _ := expandRow(r, n, Plain())
	return cells
}
