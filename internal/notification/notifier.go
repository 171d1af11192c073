package notification

import "log"

type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notifier is the fire-and-forget outcome channel consumed by the managers
// and the reconciliation routine. Implementations must never block the caller.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind Kind, title, message string) {
	if n == nil || n.logger == nil {
		return
	}
	n.logger.Printf("[Notify] kind=%s title=%q message=%q", kind, title, message)
}

// Multi fans one notification out to every sink.
type Multi []Notifier

func (m Multi) Notify(kind Kind, title, message string) {
	for _, n := range m {
		if n == nil {
			continue
		}
		n.Notify(kind, title, message)
	}
}

// Noop is used by tests and by callers that have no sink wired.
type Noop struct{}

func (Noop) Notify(Kind, string, string) {}
