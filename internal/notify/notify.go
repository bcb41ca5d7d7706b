// Package notify is the fire-and-forget voice/coach feedback sink. The core
// speaks a line; delivery is not guaranteed and never acknowledged.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Notifier receives coach lines ("Nice Rep!", "New Record!", ...).
type Notifier interface {
	Speak(text string)
}

// Line is one spoken line with its timestamp, as served to polling clients.
type Line struct {
	Text     string    `json:"text"`
	SpokenAt time.Time `json:"spoken_at"`
}

// Feed logs every line and keeps a bounded in-memory tail that the voice
// client drains over HTTP. Safe for concurrent use: the engine loop writes,
// HTTP handlers read.
type Feed struct {
	log *slog.Logger

	mu    sync.Mutex
	lines []Line
	limit int
}

// NewFeed builds a feed keeping at most limit recent lines.
func NewFeed(limit int, log *slog.Logger) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{log: log, limit: limit}
}

// Speak implements Notifier.
func (f *Feed) Speak(text string) {
	f.log.Info("speak", "text", text)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, Line{Text: text, SpokenAt: time.Now()})
	if len(f.lines) > f.limit {
		f.lines = f.lines[len(f.lines)-f.limit:]
	}
}

// Recent returns the buffered lines, oldest first.
func (f *Feed) Recent() []Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Line, len(f.lines))
	copy(out, f.lines)
	return out
}
