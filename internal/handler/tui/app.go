package tui

import (
	"context"
	"fmt"
	"time"

	"music_hub/internal/core/domain"
	"music_hub/internal/core/ports"
	"music_hub/internal/core/usecases"
	"music_hub/internal/offline"

	tea "github.com/charmbracelet/bubbletea"
)

const clientID = "terminal"

// OfflineWorker is the part of the offline worker the terminal client talks to.
type OfflineWorker interface {
	AddClient(id string, c offline.Client)
	RemoveClient(id string)
	Push(ctx context.Context, payload []byte) (*offline.Notification, error)
	NotificationClick(ctx context.Context, n *offline.Notification, action string) error
}

type currentView int

const (
	viewWelcome currentView = iota
	viewTracks
	viewSearch
	viewReorder
)

type AppModel struct {
	browseUseCase usecases.BrowseUseCase
	worker        OfflineWorker
	bridge        *Bridge
	openURL       func(url string) error
	logger        ports.LoggerPort

	welcomeModel *WelcomeModel
	tracksModel  *TracksModel
	searchModel  *SearchModel
	reorderModel *ReorderModel

	currentView currentView
	err         error

	// notification is the last one shown and not yet acted on.
	notification *offline.Notification
	playback     string

	// trending is the last list fetched, reused until refreshCooldown has passed.
	trending    *domain.TrackList
	lastRefresh time.Time

	appContext context.Context
	cancelApp  context.CancelFunc

	width  int
	height int
}

func NewAppModel(
	browseUC usecases.BrowseUseCase,
	worker OfflineWorker,
	bridge *Bridge,
	openURL func(url string) error,
	log ports.LoggerPort,
) *AppModel {
	appCtx, cancel := context.WithCancel(context.Background())

	m := &AppModel{
		browseUseCase: browseUC,
		worker:        worker,
		bridge:        bridge,
		openURL:       openURL,
		logger:        log,

		appContext: appCtx,
		cancelApp:  cancel,
	}

	m.welcomeModel = NewWelcomeModel(m)
	m.tracksModel = NewTracksModel(m, nil, "")
	m.searchModel = NewSearchModel(m)
	m.reorderModel = NewReorderModel(m, domain.TrackList{})

	m.currentView = viewWelcome
	return m
}

func (m *AppModel) Init() tea.Cmd {
	m.worker.AddClient(clientID, m.bridge)
	m.logger.Info("Terminal client registered with the offline worker")
	return tea.Batch(m.bridge.listen(), m.welcomeModel.Init())
}

// Navigation messages used by the sub-models.
type showWelcomeMsg struct{}
type showSearchMsg struct{}
type showReorderMsg struct{ list domain.TrackList }

// showTracksMsg shows list, or reloads trending when list is nil.
type showTracksMsg struct {
	list   *domain.TrackList
	status string
}

type notificationHandledMsg struct{ err error }

func (m *AppModel) cachedTrending() *domain.TrackList {
	if m.trending == nil || m.refreshRemaining() == 0 {
		return nil
	}
	list := *m.trending
	list.Videos = append([]domain.Video(nil), m.trending.Videos...)
	return &list
}

func (m *AppModel) rememberTrending(list domain.TrackList) {
	list.Videos = append([]domain.Video(nil), list.Videos...)
	m.trending = &list
	m.lastRefresh = time.Now()
}

// refreshRemaining is how long until trending may be fetched again.
func (m *AppModel) refreshRemaining() time.Duration {
	if m.lastRefresh.IsZero() {
		return 0
	}
	return max(refreshCooldown-time.Since(m.lastRefresh), 0)
}

func (m *AppModel) send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *AppModel) quit() tea.Cmd {
	m.worker.RemoveClient(clientID)
	m.cancelApp()
	return tea.Quit
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.logger.Info("Ctrl+C pressed, closing app.")
			return m, m.quit()
		}
		if cmd, handled := m.handleNotificationKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clientMessageMsg:
		if msg.message.Type == offline.MessagePlaybackControl {
			m.playback = msg.message.Action
			m.logger.Info("Playback control received: " + msg.message.Action)
		}
		return m, m.bridge.listen()

	case notificationMsg:
		m.notification = msg.notification
		return m, m.bridge.listen()

	case notificationHandledMsg:
		if msg.err != nil {
			m.logger.Error("Failed to handle notification click", msg.err)
			m.err = msg.err
		}
		return m, nil

	case showWelcomeMsg:
		m.currentView = viewWelcome
		m.err = nil
		cmds = append(cmds, m.welcomeModel.Init())

	case showTracksMsg:
		m.currentView = viewTracks
		m.err = nil
		list := msg.list
		if list == nil {
			list = m.cachedTrending()
		}
		// A nil list makes the new model fetch trending.
		tm := NewTracksModel(m, list, msg.status)
		m.tracksModel = tm
		cmds = append(cmds, tm.Init())

	case showSearchMsg:
		m.currentView = viewSearch
		m.err = nil
		sm := NewSearchModel(m)
		m.searchModel = sm
		cmds = append(cmds, sm.Init())

	case showReorderMsg:
		m.currentView = viewReorder
		m.err = nil
		rm := NewReorderModel(m, msg.list)
		m.reorderModel = rm
		cmds = append(cmds, rm.Init())
	}

	var currentViewCmd tea.Cmd
	switch m.currentView {
	case viewWelcome:
		_, currentViewCmd = m.welcomeModel.Update(msg)
	case viewTracks:
		_, currentViewCmd = m.tracksModel.Update(msg)
	case viewSearch:
		_, currentViewCmd = m.searchModel.Update(msg)
	case viewReorder:
		_, currentViewCmd = m.reorderModel.Update(msg)
	}

	cmds = append(cmds, currentViewCmd)
	return m, tea.Batch(cmds...)
}

// handleNotificationKey answers the pending notification. The search view owns
// the keyboard while its text input is focused.
func (m *AppModel) handleNotificationKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.notification == nil || m.currentView == viewSearch || msg.Type != tea.KeyRunes {
		return nil, false
	}

	var action string
	switch msg.String() {
	case "p":
		action = offline.ActionPlay
	case "x":
		action = offline.ActionPause
	case "o":
		action = "open"
	case "d":
		m.notification = nil
		return nil, true
	default:
		return nil, false
	}

	n := m.notification
	m.notification = nil
	return func() tea.Msg {
		return notificationHandledMsg{err: m.worker.NotificationClick(m.appContext, n, action)}
	}, true
}

func (m *AppModel) View() string {
	var body string
	switch m.currentView {
	case viewWelcome:
		body = m.welcomeModel.View()
	case viewTracks:
		body = m.tracksModel.View()
	case viewSearch:
		body = m.searchModel.View()
	case viewReorder:
		body = m.reorderModel.View()
	default:
		body = "Unknown view…"
	}

	if footer := m.footer(); footer != "" {
		body += "\n" + docStyle.Render(footer)
	}
	return body
}

func (m *AppModel) footer() string {
	var footer string
	switch m.playback {
	case offline.ActionPlay:
		footer = statusMessageStyle.Render("▶ Playing")
	case offline.ActionPause:
		footer = statusMessageStyle.Render("⏸ Paused")
	}

	if m.notification != nil {
		if footer != "" {
			footer += "\n"
		}
		footer += notificationStyle.Render(fmt.Sprintf("🔔 %s: %s", m.notification.Title, m.notification.Body))
		footer += "\n" + welcomePromptStyle.Render("p play · x pause · o open app · d dismiss")
	}

	if m.err != nil {
		if footer != "" {
			footer += "\n"
		}
		footer += errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return footer
}
