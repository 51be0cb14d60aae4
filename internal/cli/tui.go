package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/archexport/pkg/export"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// FormatListModel - Interactive format selection
// =============================================================================

// FormatListModel is the bubbletea model for interactive export format
// selection. Reserved formats are listed but cannot be picked.
type FormatListModel struct {
	Formats  []export.FormatInfo
	Cursor   int
	Selected *export.FormatInfo
}

// NewFormatListModel creates a format list with the cursor on current.
func NewFormatListModel(formats []export.FormatInfo, current export.Format) FormatListModel {
	m := FormatListModel{Formats: formats}
	for i, info := range formats {
		if info.Format == current {
			m.Cursor = i
		}
	}
	return m
}

func (m FormatListModel) Init() tea.Cmd {
	return nil
}

func (m FormatListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Formats)-1 {
			m.Cursor++
		}
	case "enter":
		info := m.Formats[m.Cursor]
		if !info.Implemented {
			return m, nil
		}
		m.Selected = &info
		return m, tea.Quit
	}
	return m, nil
}

func (m FormatListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Export Format"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Formats))
	for i, info := range m.Formats {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, string(info.Format), info.Description, info.Extension, formatStatus(info)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Format", "Description", "File", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if row < 0 || row >= len(m.Formats) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.Formats[row].Implemented {
				base = base.Foreground(colorDim)
			} else if col == 1 {
				base = base.Foreground(colorGreen)
			}
			if row == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Formats))))

	return b.String()
}

// pickFormat runs the interactive picker. It returns false when the user
// quits without choosing.
func pickFormat(current export.Format) (export.Format, bool, error) {
	final, err := tea.NewProgram(NewFormatListModel(export.Formats(), current)).Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(FormatListModel)
	if !ok || m.Selected == nil {
		return "", false, nil
	}
	return m.Selected.Format, true, nil
}

func formatStatus(info export.FormatInfo) string {
	if info.Implemented {
		return "ready"
	}
	return "planned"
}
