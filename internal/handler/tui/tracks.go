package tui

import (
	"fmt"
	"strings"
	"time"

	"music_hub/internal/core/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const refreshCooldown = time.Minute

type tracksLoadedMsg struct{ list domain.TrackList }
type tracksLoadErrorMsg struct{ err error }
type trackOpenedMsg struct {
	video domain.Video
	err   error
}

type TracksModel struct {
	parent        *AppModel
	list          domain.TrackList
	cursor        int
	err           error
	loading       bool
	spinner       spinner.Model
	statusMessage string
}

// NewTracksModel shows list as given, or fetches trending on Init when list is nil.
// Callers pass the cached trending list while the refresh cooldown runs.
func NewTracksModel(parent *AppModel, list *domain.TrackList, status string) *TracksModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &TracksModel{
		parent:        parent,
		spinner:       s,
		loading:       list == nil,
		statusMessage: status,
	}
	if list != nil {
		m.list = *list
	}
	return m
}

func (m *TracksModel) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchTrending())
}

func (m *TracksModel) fetchTrending() tea.Cmd {
	m.loading = true
	m.err = nil
	m.parent.logger.Info("TracksModel: fetching trending…")

	return func() tea.Msg {
		list, err := m.parent.browseUseCase.Trending(m.parent.appContext)
		if err != nil {
			return tracksLoadErrorMsg{err: err}
		}
		return tracksLoadedMsg{list: list}
	}
}

func (m *TracksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tracksLoadedMsg:
		m.loading = false
		m.list = msg.list
		m.cursor = 0
		m.parent.rememberTrending(msg.list)
		if len(m.list.Videos) == 0 {
			m.err = fmt.Errorf("no videos found")
		}
		return m, nil

	case tracksLoadErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case trackOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Opened %q in your browser.", msg.video.Title)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *TracksModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return m.parent.send(showWelcomeMsg{})
	case tea.KeyCtrlR:
		if m.loading {
			return nil
		}
		if remaining := m.parent.refreshRemaining(); remaining > 0 {
			m.statusMessage = fmt.Sprintf("🔄 Wait %ds before the next refresh.", int(remaining.Seconds())+1)
			return nil
		}
		return tea.Batch(m.spinner.Tick, m.fetchTrending())
	}

	if m.loading {
		return nil
	}

	switch msg.String() {
	case "/":
		return m.parent.send(showSearchMsg{})
	case "t":
		return m.parent.send(showTracksMsg{})
	case "s":
		if len(m.list.Videos) > 0 {
			return m.parent.send(showReorderMsg{list: m.list})
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list.Videos)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.list.Videos) > 0 {
			return m.open(m.list.Videos[m.cursor])
		}
	}
	return nil
}

// open plays video in the browser and raises a "now playing" notification through the worker.
func (m *TracksModel) open(video domain.Video) tea.Cmd {
	m.parent.logger.Info(fmt.Sprintf("Opening video: %s (ID: %s)", video.Title, video.ID))

	return func() tea.Msg {
		if err := m.parent.openURL(video.WatchURL()); err != nil {
			return trackOpenedMsg{video: video, err: fmt.Errorf("failed to open browser: %w", err)}
		}
		if _, err := m.parent.worker.Push(m.parent.appContext, []byte("Now playing: "+video.Title)); err != nil {
			m.parent.logger.Error("Failed to push notification", err)
		}
		return trackOpenedMsg{video: video}
	}
}

func (m *TracksModel) View() string {
	var b strings.Builder

	title := m.list.Title
	if title == "" {
		title = "Trending"
	}
	b.WriteString(listHeaderStyle.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading videos…")
		return docStyle.Render(b.String())
	}

	if m.err != nil {
		b.WriteString(errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(welcomePromptStyle.Render("Ctrl+R to retry, / to search, Esc to go back."))
		return docStyle.Render(b.String())
	}

	if m.list.Demo {
		banner := "Showing demo data."
		if m.list.Message != "" {
			banner = m.list.Message
		}
		b.WriteString(demoBannerStyle.Render(banner))
		b.WriteString("\n\n")
	}

	for i, v := range m.list.Videos {
		line := fmt.Sprintf("%2d. %s %s %s", i+1, v.Title, artistStyle.Render("· "+v.Artist), formatDuration(v.Duration))
		if m.cursor == i {
			b.WriteString(selectedListItemStyle.Render(line))
		} else {
			b.WriteString(listItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomePromptStyle.Render("↑/↓ or j/k to move, Enter to play, / to search, s to sort, t for trending."))
	b.WriteString("\n")
	b.WriteString(welcomePromptStyle.Render("Ctrl+R to refresh, Esc to go back, Ctrl+C to quit."))

	if m.statusMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(statusMessageStyle.Render(m.statusMessage))
	}

	return docStyle.Render(b.String())
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "--:--"
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
