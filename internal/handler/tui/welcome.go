package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type welcomeChoice struct {
	label string
	next  tea.Msg
}

type WelcomeModel struct {
	parent  *AppModel
	choices []welcomeChoice
	cursor  int
}

func NewWelcomeModel(parent *AppModel) *WelcomeModel {
	return &WelcomeModel{
		parent: parent,
		choices: []welcomeChoice{
			{label: "Browse trending music", next: showTracksMsg{}},
			{label: "Search music", next: showSearchMsg{}},
			{label: "Quit"},
		},
	}
}

func (m *WelcomeModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "/":
		return m, m.parent.send(showSearchMsg{})
	case "esc":
		return m, m.parent.quit()
	case "enter":
		choice := m.choices[m.cursor]
		if choice.next == nil {
			return m, m.parent.quit()
		}
		return m, m.parent.send(choice.next)
	}
	return m, nil
}

func (m *WelcomeModel) View() string {
	var b strings.Builder

	b.WriteString(welcomeTitleStyle.Render("🎶 Music Hub 🎶"))
	b.WriteString("\n\n")

	for i, c := range m.choices {
		if m.cursor == i {
			b.WriteString(selectedListItemStyle.Render(c.label))
		} else {
			b.WriteString(listItemStyle.Render(c.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomePromptStyle.Render("↑/↓ to choose, Enter to select, / to search, Esc to quit."))

	return docStyle.Render(b.String())
}
