package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

// Cards draws subject cards side by side, perRow to a line.
func Cards(cards []view.Card, st Styles, perRow int) string {
	if perRow <= 0 {
		perRow = 4
	}
	var lines []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		boxes := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			boxes = append(boxes, card(c, st))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return strings.Join(lines, "\n")
}

func card(c view.Card, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(c.Title) + "  " + st.Good.Render(c.PassRate) + "\n")
	for i, l := range c.Lines {
		sb.WriteString(fmt.Sprintf("%-10s %d", l.Label+":", l.Value))
		if i < len(c.Lines)-1 {
			sb.WriteString("\n")
		}
	}
	return st.Card.Render(sb.String())
}
