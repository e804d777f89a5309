package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/modelgraph/pkg/diagram"
	"github.com/matzehuels/modelgraph/pkg/session"
	"github.com/matzehuels/modelgraph/pkg/status"
)

var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listMessageStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

const minListHeight = 5

// =============================================================================
// InspectModel - Interactive render graph browser
// =============================================================================

// InspectModel is the bubbletea model of the inspect command. It lists the
// render nodes of a page and drives the session's status store: selecting
// nodes, testing drop targets and tracing upstream dependencies.
type InspectModel struct {
	Session *session.Session
	Cursor  int
	Offset  int
	Height  int
	Message string
}

// NewInspectModel creates an inspect model over s.
func NewInspectModel(s *session.Session) InspectModel {
	return InspectModel{Session: s, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) nodes() []*diagram.RenderNode {
	return m.Session.Data().Nodes
}

func (m InspectModel) current() *diagram.RenderNode {
	nodes := m.nodes()
	if m.Cursor < 0 || m.Cursor >= len(nodes) {
		return nil
	}
	return nodes[m.Cursor]
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.nodes())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if n := m.current(); n != nil {
				m.Session.SetNodeStatus(n.ID, status.Selected(!n.Selected))
				m.Message = fmt.Sprintf("%d selected", m.Session.Data().SelectedNodesByID.Len())
			}
		case "c":
			m.Session.Status().Reset()
			m.Message = "selection cleared"
		case "t":
			if n := m.current(); n != nil {
				m.Message = m.dropTargetMessage(n)
			}
		case "d":
			if n := m.current(); n != nil {
				m.Message = m.dependenciesMessage(n)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, minListHeight)
	}
	return m, nil
}

func (m InspectModel) dropTargetMessage(n *diagram.RenderNode) string {
	data := m.Session.Data()
	if data.SelectedNodesByID.Len() == 0 {
		return "select nodes to drop first"
	}
	if data.IsDropTargetValidForSelection(n.ID) {
		return fmt.Sprintf("%s accepts the selection", n.ID)
	}
	return fmt.Sprintf("%s rejects the selection", n.ID)
}

func (m InspectModel) dependenciesMessage(n *diagram.RenderNode) string {
	deps := m.Session.Data().Dependencies(n.ID)
	if len(deps) == 0 {
		return fmt.Sprintf("%s has no upstream nodes", n.ID)
	}
	return fmt.Sprintf("%s depends on %s", n.ID, strings.Join(deps, ", "))
}

func (m InspectModel) View() string {
	var b strings.Builder
	data := m.Session.Data()

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s page %d", strings.ToUpper(data.Flavor.Name), data.Page)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space select  c clear  t drop target  d upstream  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(data.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := data.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		selected := ""
		if n.Selected {
			selected = iconSuccess
		}
		bounds := fmt.Sprintf("%g,%g %s", n.Position.X, n.Position.Y, size(n.Dimension.Width, n.Dimension.Height))
		rows = append(rows, []string{cursor, n.ID, string(n.Type), n.Name, bounds, selected})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Id", "Type", "Name", "Bounds", "Sel").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(data.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if data.Nodes[idx].External {
				base = base.Foreground(colorDim)
			} else if col == 2 {
				base = base.Foreground(colorCyan)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d edges", m.Cursor+1, len(data.Nodes), len(data.Edges))))
	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(listMessageStyle.Render("  " + m.Message))
	}

	return b.String()
}
