// Package notify turns live channel events into user-facing notification
// records.
package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/cartosync/internal/client/live"
)

// Level of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Message is a single notification record.
type Message struct {
	Time  time.Time
	Level Level
	Lines []string
}

//go:generate moq -out sink_mock.go . Sink

// Sink receives channel events of the loaded project.
type Sink interface {
	HandleEvent(ev live.Event)
}

// DefaultLimit максимальное число хранимых сообщений
const DefaultLimit = 500

// LogSink keeps the notification history, newest first, and mirrors every
// record to a slog logger.
type LogSink struct {
	now       func() time.Time
	logger    *slog.Logger
	callbacks map[int]func(Message)
	messages  []Message
	limit     int
	nextID    int
	mu        sync.Mutex
}

// NewLogSink creates an empty sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{
		now:       time.Now,
		logger:    logger,
		callbacks: make(map[int]func(Message)),
		limit:     DefaultLimit,
	}
}

// HandleEvent implements Sink.
func (s *LogSink) HandleEvent(ev live.Event) {
	switch ev.Kind {
	case live.KindConnected:
		s.Append(LevelInfo, ev.Lines...)
	case live.KindWarning:
		s.Append(LevelWarning, ev.Lines...)
	case live.KindError:
		s.Append(LevelDanger, ev.Lines...)
	case live.KindSuccess:
		s.Append(LevelSuccess, ev.Lines...)
	}
}

// Append records a message and notifies callbacks.
func (s *LogSink) Append(level Level, lines ...string) Message {
	msg := Message{Time: s.now(), Level: level, Lines: slices.Clone(lines)}

	s.mu.Lock()
	s.messages = slices.Insert(s.messages, 0, msg)
	if len(s.messages) > s.limit {
		s.messages = s.messages[:s.limit]
	}
	fns := make([]func(Message), 0, len(s.callbacks))
	for _, fn := range s.callbacks {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	s.log(msg)
	for _, fn := range fns {
		fn(msg)
	}
	return msg
}

// Messages returns the history, newest first.
func (s *LogSink) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// LastSuccessfulUpdateIdx returns the index of the newest success message in
// Messages, or -1 if there is none.
func (s *LogSink) LastSuccessfulUpdateIdx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSuccessIdxLocked()
}

// Outdated reports whether the message at idx predates the newest success
// and so no longer describes the displayed map.
func (s *LogSink) Outdated(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.lastSuccessIdxLocked()
	return last > -1 && idx > last
}

// OnMessage registers fn for every new message. The returned function
// removes it.
func (s *LogSink) OnMessage(fn func(Message)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.callbacks[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.callbacks, id)
	}
}

// Clear drops the history.
func (s *LogSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

func (s *LogSink) lastSuccessIdxLocked() int {
	for i := range s.messages {
		if s.messages[i].Level == LevelSuccess {
			return i
		}
	}
	return -1
}

func (s *LogSink) log(msg Message) {
	switch msg.Level {
	case LevelDanger:
		s.logger.Error("Project compilation failed", "lines", msg.Lines)
	case LevelWarning:
		s.logger.Warn("Project compiled with warnings", "lines", msg.Lines)
	case LevelSuccess:
		s.logger.Info("Project updated")
	default:
		s.logger.Info(firstLine(msg.Lines))
	}
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
