package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"skill-matrix/internal/notification"
)

type NotificationEvent struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func Notify(kind notification.Kind, title, message string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := NotificationEvent{
		Type:      "notification",
		Kind:      string(kind),
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

// Sink adapts the hub to the notification.Notifier contract.
type Sink struct{}

func (Sink) Notify(kind notification.Kind, title, message string) {
	Notify(kind, title, message)
}
