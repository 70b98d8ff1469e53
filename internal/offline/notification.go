package offline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	notificationTitle = "Music Hub"
	defaultPushBody   = "Music Hub Notification"
	notificationIcon  = "/assets/icon-192.png"

	MessageSkipWaiting     = "SKIP_WAITING"
	MessagePlaybackControl = "PLAYBACK_CONTROL"

	ActionPlay  = "play"
	ActionPause = "pause"
)

var errNoOpener = errors.New("no window opener configured")

type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
}

type NotificationData struct {
	DateOfArrival int64  `json:"dateOfArrival"` // epoch milliseconds
	PrimaryKey    string `json:"primaryKey"`
}

type Notification struct {
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Icon    string               `json:"icon"`
	Badge   string               `json:"badge"`
	Vibrate []int                `json:"vibrate"`
	Data    NotificationData     `json:"data"`
	Actions []NotificationAction `json:"actions"`

	Closed bool `json:"-"`
}

// ClientMessage travels between the worker and the pages it controls.
type ClientMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
}

// Notifier displays notifications to the user.
type Notifier interface {
	ShowNotification(n *Notification) error
}

// Client is a page the worker can post messages to.
type Client interface {
	PostMessage(msg ClientMessage)
}

// WindowOpener opens an absolute URL in a new window.
type WindowOpener func(url string) error

// AddClient registers a page under id. Pages registered before activation are
// claimed when the worker activates.
func (w *Worker) AddClient(id string, c Client) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[id] = c
	if w.state == StateActivated {
		w.controlled[id] = true
	}
}

func (w *Worker) RemoveClient(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, id)
	delete(w.controlled, id)
}

// Controls reports whether the page registered under id is controlled by the worker.
func (w *Worker) Controls(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.controlled[id]
}

func (w *Worker) claim() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := range w.clients {
		w.controlled[id] = true
	}
}

func (w *Worker) matchAll() []Client {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := make([]string, 0, len(w.clients))
	for id := range w.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Client, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.clients[id])
	}
	return out
}

// Push turns a push payload into a notification and shows it.
func (w *Worker) Push(ctx context.Context, payload []byte) (*Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body := string(payload)
	if body == "" {
		body = defaultPushBody
	}

	n := &Notification{
		Title:   notificationTitle,
		Body:    body,
		Icon:    notificationIcon,
		Badge:   notificationIcon,
		Vibrate: []int{100, 50, 100},
		Data: NotificationData{
			DateOfArrival: time.Now().UnixMilli(),
			PrimaryKey:    "2",
		},
		Actions: []NotificationAction{
			{Action: ActionPlay, Title: "Play", Icon: "/assets/play-icon.png"},
			{Action: ActionPause, Title: "Pause", Icon: "/assets/pause-icon.png"},
		},
	}

	if w.notifier == nil {
		w.logger.Info("push received without a notifier: " + n.Body)
		return n, nil
	}
	if err := w.notifier.ShowNotification(n); err != nil {
		return n, fmt.Errorf("show notification: %w", err)
	}
	return n, nil
}

// NotificationClick closes n, then either relays a playback action to every
// page or opens the app's main page.
func (w *Worker) NotificationClick(ctx context.Context, n *Notification, action string) error {
	if n != nil {
		n.Closed = true
	}

	switch action {
	case ActionPlay, ActionPause:
		msg := ClientMessage{Type: MessagePlaybackControl, Action: action}
		for _, c := range w.matchAll() {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.PostMessage(msg)
		}
		return nil
	default:
		if w.opener == nil {
			return errNoOpener
		}
		u, err := w.resolve("/index.html")
		if err != nil {
			return err
		}
		return w.opener(u.String())
	}
}

// Message handles a message posted to the worker by a page.
func (w *Worker) Message(msg ClientMessage) {
	if msg.Type == MessageSkipWaiting {
		w.SkipWaiting()
	}
}
