package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// minDescriptionWidth keeps the last column readable on narrow terminals.
const minDescriptionWidth = 20

// Table renders rows as aligned columns. The last column wraps to fit the
// terminal width.
type Table struct {
	styles  *Styles
	width   int
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(styles *Styles, termWidth int, headers ...string) *Table {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &Table{styles: styles, width: termWidth, headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render returns the formatted table.
func (t *Table) Render() string {
	cols := len(t.headers)
	widths := make([]int, cols)
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	used := 0
	for _, w := range widths[:cols-1] {
		used += w + 2
	}
	widths[cols-1] = max(minDescriptionWidth, min(widths[cols-1], t.width-used))

	var builder strings.Builder
	builder.WriteString(t.line(t.headers, widths, t.styles.TableHeader))
	builder.WriteString(t.styles.TableBorder.Render(strings.Repeat("-", min(t.width, used+widths[cols-1]))) + "\n")
	for _, row := range t.rows {
		builder.WriteString(t.line(row, widths, lipgloss.NewStyle()))
	}
	return builder.String()
}

func (t *Table) line(cells []string, widths []int, style lipgloss.Style) string {
	rendered := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		cellStyle := style.Width(w)
		if i < len(widths)-1 {
			cellStyle = cellStyle.MarginRight(2)
		}
		rendered[i] = cellStyle.Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}
