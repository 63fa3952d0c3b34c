package nav

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Level is the severity of a [Notification].
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient toast.
type Notification struct {
	Title       string
	Description string
	Level       Level
	At          time.Time
}

// Notifier displays notifications.
type Notifier interface {
	Notify(n Notification)
}

// Info builds an informational [Notification].
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelInfo, At: time.Now()}
}

// Success builds a success [Notification].
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelSuccess, At: time.Now()}
}

// Error builds an error [Notification].
func Error(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelError, At: time.Now()}
}

// Queue buffers notifications until they are drained by a renderer.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

var _ Notifier = (*Queue)(nil)

// NewQueue creates an empty [Queue].
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns and removes all buffered notifications, oldest first.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Peek returns a copy of the buffered notifications without removing them.
func (q *Queue) Peek() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.items...)
}

// Len reports how many notifications are buffered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LogNotifier writes notifications to a [log.Logger].
type LogNotifier struct {
	logger *log.Logger
}

var _ Notifier = LogNotifier{}

// NewLogNotifier creates a [LogNotifier].
func NewLogNotifier(logger *log.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (l LogNotifier) Notify(n Notification) {
	kv := []any{}
	if n.Description != "" {
		kv = append(kv, "detail", n.Description)
	}

	switch n.Level {
	case LevelError:
		l.logger.Error(n.Title, kv...)
	default:
		l.logger.Info(n.Title, kv...)
	}
}

// Tee fans a notification out to every notifier.
type Tee []Notifier

func (t Tee) Notify(n Notification) {
	for _, notifier := range t {
		notifier.Notify(n)
	}
}
