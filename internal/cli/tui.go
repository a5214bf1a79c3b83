package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// cellListModel - Interactive cell browser
// =============================================================================

// cellListModel is the bubbletea model for browsing the cell library.
type cellListModel struct {
	Cells    []cellItem
	Cursor   int
	Selected *cellItem
	Height   int
	Offset   int
}

// newCellListModel creates a new cell list model.
func newCellListModel(cells []cellItem) cellListModel {
	return cellListModel{
		Cells:  cells,
		Height: 15,
	}
}

func (m cellListModel) Init() tea.Cmd {
	return nil
}

func (m cellListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Cells)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Cells[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m cellListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cell Library"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Cells) {
		end = len(m.Cells)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Cells[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		defaults := formatDefaults(c.Defaults)
		if defaults == "" {
			defaults = "—"
		}
		rows = append(rows, []string{cursor, c.Name, fmt.Sprintf("%d", len(c.Defaults)), defaults})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Cell", "Params", "Defaults").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				if col == 3 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Cells))))

	return b.String()
}
