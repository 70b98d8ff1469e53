package tui

import (
	"errors"
	"fmt"
	"strings"

	"music_hub/internal/core/domain"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type searchDoneMsg struct{ list domain.TrackList }
type searchErrorMsg struct{ err error }

type SearchModel struct {
	parent *AppModel

	input     textinput.Model
	spinner   spinner.Model
	searching bool
	err       error
}

func NewSearchModel(parent *AppModel) *SearchModel {
	ti := textinput.New()
	ti.Placeholder = "artist, song or mood"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &SearchModel{
		parent:  parent,
		input:   ti,
		spinner: s,
	}
}

func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, m.parent.send(showTracksMsg{})
		case tea.KeyEnter:
			m.searching = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.search(strings.TrimSpace(m.input.Value())))
		}

	case searchDoneMsg:
		m.searching = false
		list := msg.list
		return m, m.parent.send(showTracksMsg{list: &list})

	case searchErrorMsg:
		m.searching = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		list, err := m.parent.browseUseCase.Search(m.parent.appContext, query)
		if err != nil {
			return searchErrorMsg{err: err}
		}
		return searchDoneMsg{list: list}
	}
}

func (m *SearchModel) View() string {
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Search music"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.spinner.View() + " Searching…\n\n")
	}
	if m.err != nil {
		text := fmt.Sprintf("Error: %v", m.err)
		if errors.Is(m.err, domain.ErrMissingQuery) {
			text = "Type something to search for."
		}
		b.WriteString(errorMessageStyle.Render(text))
		b.WriteString("\n\n")
	}

	b.WriteString(welcomePromptStyle.Render("Enter to search, Esc to go back, Ctrl+C to quit."))
	return docStyle.Render(b.String())
}
