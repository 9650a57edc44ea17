// Package ui implements the bubbletea TUI behind `vdomctl inspect`: a
// scrollable list of the mutations one patch cycle recorded, styled
// with lipgloss and navigated with the same up/down/quit bindings as
// the project-creation wizard this is adapted from.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solstice-ui/vdom/pkg/live"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginTop(1)
)

// KeyMap are the keybindings inspect responds to.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first")),
	Bottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last")),
}

// Model walks a fixed slice of recorded mutations.
type Model struct {
	title     string
	mutations []live.Mutation
	selected  int
	width     int
	height    int
}

// NewModel returns a Model ready to walk muts, labeled with title
// (typically the scene file name a patch cycle was recorded against).
func NewModel(title string, muts []live.Mutation) Model {
	return Model{title: title, mutations: muts}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.selected < len(m.mutations)-1 {
				m.selected++
			}
		case key.Matches(msg, DefaultKeyMap.Top):
			m.selected = 0
		case key.Matches(msg, DefaultKeyMap.Bottom):
			m.selected = len(m.mutations) - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("vdomctl inspect — %s", m.title)))
	b.WriteString("\n\n")

	if len(m.mutations) == 0 {
		b.WriteString(mutedStyle.Render("no mutations recorded"))
		b.WriteString("\n")
	}

	for i, mut := range m.mutations {
		line := formatMutation(mut)
		if i == m.selected {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("▶ %3d  %s", i, line)))
		} else {
			b.WriteString(normalStyle.Render(fmt.Sprintf("  %3d  %s", i, line)))
		}
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("↑/k up · ↓/j down · g first · G last · q quit"))
	return b.String()
}

func formatMutation(m live.Mutation) string {
	detail := mutationDetail(m)
	if detail == "" {
		return fmt.Sprintf("%-18s node=%d", m.Op, m.NodeID)
	}
	return fmt.Sprintf("%-18s node=%d  %s", m.Op, m.NodeID, detail)
}

func mutationDetail(m live.Mutation) string {
	switch m.Op {
	case live.OpCreateElement:
		return fmt.Sprintf("tag=%s", m.Tag)
	case live.OpCreateElementNS:
		return fmt.Sprintf("ns=%s tag=%s", m.NS, m.Tag)
	case live.OpCreateText, live.OpCreateComment, live.OpSetTextContent, live.OpSetElementText:
		return fmt.Sprintf("text=%q", m.Text)
	case live.OpInsertBefore:
		return fmt.Sprintf("parent=%d ref=%d", m.ParentID, m.ReferenceID)
	case live.OpAppendChild, live.OpRemoveChild:
		return fmt.Sprintf("parent=%d", m.ParentID)
	case live.OpSetAttribute, live.OpSetStyle, live.OpSetProp, live.OpSetData:
		return fmt.Sprintf("%s=%q", m.Key, m.Value)
	case live.OpRemoveAttribute, live.OpRemoveStyle, live.OpRemoveData,
		live.OpAddEventListener, live.OpRemoveEventListener:
		return m.Key
	case live.OpSetClass:
		return fmt.Sprintf("%s=%v", m.Key, m.On)
	default:
		return ""
	}
}
