// Package notify carries transient user-facing notifications for operation
// outcomes, the client-side analogue of a toast/snackbar.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notifier receives transient user-facing messages. Implementations must be
// non-blocking: a notification is fire-and-forget from the caller's view.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// LogNotifier renders notifications through a zap logger.
type LogNotifier struct {
	lg *zap.Logger
}

// NewLog creates a Notifier that writes notifications to the given logger.
func NewLog(lg *zap.Logger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

func (n *LogNotifier) Success(msg string) { n.lg.Info(msg, zap.String("severity", "success")) }
func (n *LogNotifier) Info(msg string)    { n.lg.Info(msg, zap.String("severity", "info")) }
func (n *LogNotifier) Error(msg string)   { n.lg.Warn(msg, zap.String("severity", "error")) }

// Entry is a single recorded notification.
type Entry struct {
	Severity Severity
	Message  string
}

// Recorder collects notifications in memory. Intended for tests and for
// surfacing the latest outcome in the CLI.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Success(msg string) { r.append(SeveritySuccess, msg) }
func (r *Recorder) Info(msg string)    { r.append(SeverityInfo, msg) }
func (r *Recorder) Error(msg string)   { r.append(SeverityError, msg) }

func (r *Recorder) append(s Severity, msg string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Severity: s, Message: msg})
	r.mu.Unlock()
}

// Entries returns a copy of all recorded notifications in order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
