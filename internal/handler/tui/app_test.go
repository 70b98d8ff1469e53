package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"music_hub/infrastructure/logger"
	"music_hub/internal/core/domain"
	"music_hub/internal/core/usecases"
	"music_hub/internal/offline"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	trending      domain.TrackList
	search        domain.TrackList
	err           error
	trendingCalls int
}

func (f *fakeHub) Trending(context.Context) (domain.TrackList, error) {
	f.trendingCalls++
	return f.trending, f.err
}

func (f *fakeHub) Search(_ context.Context, query string) (domain.TrackList, error) {
	list := f.search
	list.Title = "Search: " + query
	return list, f.err
}

type fakeWorker struct {
	clients map[string]offline.Client
	pushed  []string
	clicks  []string
}

func (f *fakeWorker) AddClient(id string, c offline.Client) {
	if f.clients == nil {
		f.clients = map[string]offline.Client{}
	}
	f.clients[id] = c
}

func (f *fakeWorker) RemoveClient(id string) { delete(f.clients, id) }

func (f *fakeWorker) Push(_ context.Context, payload []byte) (*offline.Notification, error) {
	f.pushed = append(f.pushed, string(payload))
	return &offline.Notification{Title: "Music Hub", Body: string(payload)}, nil
}

func (f *fakeWorker) NotificationClick(_ context.Context, n *offline.Notification, action string) error {
	f.clicks = append(f.clicks, action)
	return nil
}

func trending() domain.TrackList {
	return domain.TrackList{
		Title: "Trending",
		Demo:  true,
		Videos: []domain.Video{
			{ID: "b", Title: "Bad Guy", Artist: "Billie Eilish", Duration: 3*time.Minute + 14*time.Second},
			{ID: "a", Title: "As It Was", Artist: "Harry Styles", Duration: 2*time.Minute + 47*time.Second},
		},
	}
}

func newApp(hub *fakeHub, worker *fakeWorker) (*AppModel, *[]string) {
	var opened []string
	log := logger.NewConsoleLogger(io.Discard, "error")
	m := NewAppModel(usecases.NewBrowseUseCase(hub, log), worker, NewBridge(), func(u string) error {
		opened = append(opened, u)
		return nil
	}, log)
	return m, &opened
}

// run feeds msg into m and keeps feeding the messages its commands produce,
// skipping commands that block and dropping animation ticks.
func run(m *AppModel, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 && len(queue) < 50 {
		next := queue[0]
		queue = queue[1:]

		_, cmd := m.Update(next)
		queue = append(queue, drain(cmd)...)
	}
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if !isAppMsg(msg) {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// isAppMsg filters out spinner and cursor blink ticks.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case tracksLoadedMsg, tracksLoadErrorMsg, trackOpenedMsg, searchDoneMsg, searchErrorMsg,
		showWelcomeMsg, showTracksMsg, showSearchMsg, showReorderMsg,
		notificationHandledMsg, clientMessageMsg, notificationMsg:
		return true
	}
	return false
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitRegistersClient(t *testing.T) {
	worker := &fakeWorker{}
	m, _ := newApp(&fakeHub{}, worker)

	m.Init()
	assert.Same(t, m.bridge, worker.clients[clientID])

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Empty(t, worker.clients)
}

func TestWelcomeLoadsTrending(t *testing.T) {
	m, _ := newApp(&fakeHub{trending: trending()}, &fakeWorker{})

	run(m, key("enter"))

	assert.Equal(t, viewTracks, m.currentView)
	require.Len(t, m.tracksModel.list.Videos, 2)
	view := m.View()
	assert.Contains(t, view, "Bad Guy")
	assert.Contains(t, view, "3:14")
	assert.Contains(t, view, "Showing demo data.")
}

func TestOpenTrackPushesNotification(t *testing.T) {
	worker := &fakeWorker{}
	m, opened := newApp(&fakeHub{trending: trending()}, worker)
	run(m, key("enter"))

	run(m, key("down"))
	run(m, key("enter"))

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=a"}, *opened)
	assert.Equal(t, []string{"Now playing: As It Was"}, worker.pushed)
	assert.Contains(t, m.View(), `Opened "As It Was" in your browser.`)
}

func TestNotificationActions(t *testing.T) {
	worker := &fakeWorker{}
	m, _ := newApp(&fakeHub{trending: trending()}, worker)
	run(m, key("enter"))

	m.Update(notificationMsg{notification: &offline.Notification{Title: "Music Hub", Body: "Now playing: Bad Guy"}})
	assert.Contains(t, m.View(), "Now playing: Bad Guy")

	run(m, key("x"))
	assert.Equal(t, []string{"pause"}, worker.clicks)
	assert.Nil(t, m.notification)
}

func TestPlaybackControlMessage(t *testing.T) {
	m, _ := newApp(&fakeHub{}, &fakeWorker{})

	m.Update(clientMessageMsg{message: offline.ClientMessage{Type: "PLAYBACK_CONTROL", Action: "pause"}})
	assert.Contains(t, m.View(), "Paused")

	m.Update(clientMessageMsg{message: offline.ClientMessage{Type: "PLAYBACK_CONTROL", Action: "play"}})
	assert.Contains(t, m.View(), "Playing")
}

func TestBridgeDeliversToProgram(t *testing.T) {
	b := NewBridge()

	b.PostMessage(offline.ClientMessage{Type: "PLAYBACK_CONTROL", Action: "play"})
	require.NoError(t, b.ShowNotification(&offline.Notification{Body: "hi"}))

	first := b.listen()()
	assert.Equal(t, clientMessageMsg{message: offline.ClientMessage{Type: "PLAYBACK_CONTROL", Action: "play"}}, first)
	second, ok := b.listen()().(notificationMsg)
	require.True(t, ok)
	assert.Equal(t, "hi", second.notification.Body)
}

func TestReorderByDuration(t *testing.T) {
	m, _ := newApp(&fakeHub{trending: trending()}, &fakeWorker{})
	run(m, key("enter"))

	run(m, key("s"))
	require.Equal(t, viewReorder, m.currentView)

	for i := 0; i < 3; i++ {
		run(m, key("down"))
	}
	run(m, key("enter"))

	require.Equal(t, viewTracks, m.currentView)
	assert.Equal(t, "a", m.tracksModel.list.Videos[0].ID)
	assert.Contains(t, m.View(), "Sorted by duration.")
}

func TestTrendingFetchedOncePerCooldown(t *testing.T) {
	hub := &fakeHub{trending: trending(), search: domain.TrackList{Videos: []domain.Video{{ID: "s", Title: "Shape of You"}}}}
	m, _ := newApp(hub, &fakeWorker{})
	run(m, key("enter"))
	require.Equal(t, 1, hub.trendingCalls)

	run(m, key("/"))
	run(m, key("lofi"))
	run(m, key("enter"))
	require.Equal(t, "Search: lofi", m.tracksModel.list.Title)

	run(m, key("t"))
	assert.Equal(t, 1, hub.trendingCalls)
	assert.Equal(t, "Trending", m.tracksModel.list.Title)
	require.Len(t, m.tracksModel.list.Videos, 2)

	run(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 1, hub.trendingCalls)
	assert.Contains(t, m.View(), "before the next refresh.")

	m.lastRefresh = time.Now().Add(-refreshCooldown)
	run(m, key("t"))
	assert.Equal(t, 2, hub.trendingCalls)
}

func TestSearchFlow(t *testing.T) {
	hub := &fakeHub{trending: trending(), search: domain.TrackList{Videos: []domain.Video{{ID: "s", Title: "Shape of You", Artist: "Ed Sheeran"}}}}
	m, _ := newApp(hub, &fakeWorker{})
	run(m, key("enter"))

	run(m, key("/"))
	require.Equal(t, viewSearch, m.currentView)

	run(m, key("enter"))
	assert.Equal(t, viewSearch, m.currentView)
	assert.Contains(t, m.View(), "Type something to search for.")

	run(m, key("ed"))
	run(m, key("enter"))
	require.Equal(t, viewTracks, m.currentView)
	assert.Equal(t, "Search: ed", m.tracksModel.list.Title)
}

func TestTrendingError(t *testing.T) {
	m, _ := newApp(&fakeHub{err: errors.New("connection refused")}, &fakeWorker{})
	run(m, key("enter"))

	assert.Contains(t, m.View(), "connection refused")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "--:--"},
		{3*time.Minute + 21*time.Second, "3:21"},
		{59 * time.Second, "0:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestWelcomeMenu(t *testing.T) {
	worker := &fakeWorker{}
	m, _ := newApp(&fakeHub{trending: trending()}, worker)
	m.Init()

	run(m, key("down"))
	run(m, key("enter"))
	assert.Equal(t, viewSearch, m.currentView)

	run(m, key("esc"))
	run(m, key("esc"))
	assert.Equal(t, viewWelcome, m.currentView)

	run(m, key("down"))
	run(m, key("down"))
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		msg = batch[0]()
	}
	assert.IsType(t, tea.QuitMsg{}, msg)
	assert.Empty(t, worker.clients)
}
