package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pyfold/pyfold/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ModuleListModel - Interactive module browser
// =============================================================================

// ModuleListModel is the bubbletea model for browsing a dependency report.
// The list view shows one row per module in emission order; enter opens a
// detail view for the module under the cursor.
type ModuleListModel struct {
	result *pipeline.Result
	paths  []string

	Cursor int
	Height int
	Offset int

	detail string // non-empty while the detail view is open
}

// NewModuleListModel creates a module browser over a pipeline result.
func NewModuleListModel(res *pipeline.Result) ModuleListModel {
	return ModuleListModel{
		result: res,
		paths:  res.Ordering.Order,
		Height: 15,
	}
}

func (m ModuleListModel) Init() tea.Cmd {
	return nil
}

func (m ModuleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != "" {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.detail = ""
			}
			return m, nil
		}
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
			if m.Cursor < len(m.paths)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.detail = m.paths[m.Cursor]
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ModuleListModel) View() string {
	if m.detail != "" {
		return m.detailView(m.detail)
	}
	return m.listView()
}

func (m ModuleListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Module Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.paths) {
		end = len(m.paths)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.paths[i]
		rec, _ := m.result.Table.Get(p)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			p,
			fmt.Sprintf("%d", len(rec.Classes)),
			fmt.Sprintf("%d", len(rec.Functions)),
			fmt.Sprintf("%d", m.result.Graph.InDegree(p)),
			fmt.Sprintf("%d", m.result.Graph.OutDegree(p)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Module", "Classes", "Funcs", "Deps", "Used by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.paths))))
	if m.result.Stats.CycleCount > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %d circular imports", m.result.Stats.CycleCount)))
	}

	return b.String()
}

func (m ModuleListModel) detailView(path string) string {
	rec, _ := m.result.Table.Get(path)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	writeSection(&b, "Dependencies", m.result.Graph.InDegree(path), m.result.Graph.Dependencies(path))
	writeSection(&b, "Used by", m.result.Graph.OutDegree(path), m.result.Graph.Dependents(path))
	writeSection(&b, "Classes", len(rec.Classes), rec.Classes)
	writeSection(&b, "Functions", len(rec.Functions), rec.Functions)
	writeSection(&b, "Imports", len(rec.Imports), rec.Imports)

	return b.String()
}

func writeSection(b *strings.Builder, title string, n int, items []string) {
	b.WriteString(StyleValue.Render(fmt.Sprintf("%s (%d)", title, n)))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("  —"))
		b.WriteString("\n\n")
		return
	}
	for _, it := range items {
		b.WriteString("  " + it + "\n")
	}
	b.WriteString("\n")
}
