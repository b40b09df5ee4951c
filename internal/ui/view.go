package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go.klb.dev/clipqueue/internal/history"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Faint(true)
)

func (m Model) View() string {
	var b strings.Builder

	mode := inactiveStyle.Render("INACTIVE")
	if m.active {
		mode = activeStyle.Render("ACTIVE")
	}
	b.WriteString(titleStyle.Render("Clipboard History"))
	b.WriteString("  " + mode + dimStyle.Render(fmt.Sprintf("  %d items", len(m.items))))
	b.WriteString("\n\n")

	listHeight := m.height - 5
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("  (history is empty, copy something)"))
		b.WriteString("\n")
	} else {
		for _, row := range visibleRows(len(m.items), m.selected, listHeight) {
			line := fmt.Sprintf("%3d  %s", row+1, oneLine(m.items[row], m.width-7))
			if row == m.selected {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ select · enter copy · p paste oldest · t toggle · q quit"))
	return b.String()
}

// visibleRows windows the list around the selection so long histories
// scroll instead of overflowing the terminal.
func visibleRows(n, selected, height int) []int {
	if n <= height {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	start := 0
	if selected > history.NoSelection {
		start = selected - height/2
	}
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	rows := make([]int, height)
	for i := range rows {
		rows[i] = start + i
	}
	return rows
}

// oneLine flattens an entry to a single display line of at most width runes.
func oneLine(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", "⏎")
	s = strings.ReplaceAll(s, "\t", " ")
	r := []rune(s)
	if width > 0 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}
