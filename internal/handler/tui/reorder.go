package tui

import (
	"fmt"
	"strings"

	"music_hub/internal/core/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type reorderOption struct {
	label    string
	criteria string
}

type ReorderModel struct {
	parent *AppModel
	list   domain.TrackList

	reorderOptions []reorderOption
	cursor         int
}

func NewReorderModel(parent *AppModel, list domain.TrackList) *ReorderModel {
	return &ReorderModel{
		parent: parent,
		list:   list,
		reorderOptions: []reorderOption{
			{label: "Sort by Name (A-Z)", criteria: "name"},
			{label: "Sort by Artist (A-Z)", criteria: "artist"},
			{label: "Sort by Publish Date (Oldest-Newest)", criteria: "publish"},
			{label: "Sort by Duration (Shortest-Longest)", criteria: "duration"},
			{label: "Back to list"},
		},
	}
}

func (m *ReorderModel) Init() tea.Cmd {
	m.cursor = 0
	m.parent.logger.Info(fmt.Sprintf("ReorderModel: initialized for list '%s'", m.list.Title))
	return nil
}

func (m *ReorderModel) back() tea.Cmd {
	list := m.list
	return m.parent.send(showTracksMsg{list: &list})
}

func (m *ReorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.reorderOptions)-1 {
			m.cursor++
		}
	case tea.KeyEsc, tea.KeyBackspace:
		return m, m.back()
	case tea.KeyEnter:
		selected := m.reorderOptions[m.cursor]
		if selected.criteria == "" {
			return m, m.back()
		}

		sorted := m.parent.browseUseCase.Reorder(m.list, selected.criteria)
		status := fmt.Sprintf("Sorted by %s.", selected.criteria)
		return m, m.parent.send(showTracksMsg{list: &sorted, status: status})
	}
	return m, nil
}

func (m *ReorderModel) View() string {
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("Sort: %s", m.list.Title)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d videos\n\n", len(m.list.Videos)))

	for i, opt := range m.reorderOptions {
		if m.cursor == i {
			b.WriteString(selectedListItemStyle.Render(opt.label))
		} else {
			b.WriteString(listItemStyle.Render(opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomePromptStyle.Render("Use ↑/↓ to move, Enter to select, Backspace to go back. Ctrl+C to quit."))

	return docStyle.Render(b.String())
}
