package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	detailNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// =============================================================================
// RequirementListModel - Interactive requirement browser
// =============================================================================

// RequirementListModel is the bubbletea model for browsing parsed requirements.
type RequirementListModel struct {
	Title  string
	Reqs   []requirement.Requirement
	Cursor int
	Height int
	Offset int
}

// NewRequirementListModel creates a new requirement list model.
func NewRequirementListModel(title string, reqs []requirement.Requirement) RequirementListModel {
	return RequirementListModel{Title: title, Reqs: reqs, Height: 15}
}

func (m RequirementListModel) Init() tea.Cmd {
	return nil
}

func (m RequirementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Reqs))
		case "end", "G":
			m.move(len(m.Reqs))
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the table borders and the detail box.
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *RequirementListModel) move(delta int) {
	if len(m.Reqs) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Reqs)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m RequirementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Reqs) == 0 {
		b.WriteString(listDimStyle.Render("  no requirements"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Reqs))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Reqs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.Name, constraintsString(r.Constraints), string(r.Source)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Constraints", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(requirementDetail(m.Reqs[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Reqs))))

	return b.String()
}

func requirementDetail(r requirement.Requirement) string {
	lines := []string{detailNameStyle.Render(r.Name)}
	if len(r.Extras) > 0 {
		lines = append(lines, "extras:      "+strings.Join(r.Extras, ", "))
	}
	if len(r.Constraints) > 0 {
		lines = append(lines, "constraints: "+constraintsString(r.Constraints))
	}
	if v, ok := r.Pinned(); ok {
		lines = append(lines, "pinned:      "+v)
	}
	lines = append(lines, "source:      "+string(r.Source))
	if len(r.InstallOptions) > 0 {
		lines = append(lines, "options:     "+strings.Join(r.InstallOptions, " "))
	}
	return strings.Join(lines, "\n")
}

// browse opens the requirement browser and blocks until the user quits.
func browse(ctx context.Context, title string, reqs []requirement.Requirement) error {
	p := tea.NewProgram(NewRequirementListModel(title, reqs), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
