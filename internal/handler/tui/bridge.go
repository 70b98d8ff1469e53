package tui

import (
	"music_hub/internal/offline"

	tea "github.com/charmbracelet/bubbletea"
)

type clientMessageMsg struct{ message offline.ClientMessage }
type notificationMsg struct{ notification *offline.Notification }

// Bridge is the terminal client as the offline worker sees it: a page that
// receives messages and a surface that shows notifications. Everything it
// receives is handed to the Bubble Tea program.
type Bridge struct {
	events chan tea.Msg
}

func NewBridge() *Bridge {
	return &Bridge{events: make(chan tea.Msg, 16)}
}

func (b *Bridge) PostMessage(msg offline.ClientMessage) {
	b.deliver(clientMessageMsg{message: msg})
}

func (b *Bridge) ShowNotification(n *offline.Notification) error {
	b.deliver(notificationMsg{notification: n})
	return nil
}

// deliver drops the event when the program is not keeping up.
func (b *Bridge) deliver(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}

func (b *Bridge) listen() tea.Cmd {
	return func() tea.Msg {
		return <-b.events
	}
}
