package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventFetch       EventType = "fetch"
	EventParse       EventType = "parse"
	EventChoreoMatch EventType = "choreo_match"
	EventSongMatch   EventType = "song_match"
	EventSheetMusic  EventType = "sheet_music"
	EventMissing     EventType = "missing"
	EventMerge       EventType = "merge"
	EventError       EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// ParseLevel maps a level name to an EventLevel, defaulting to info
func ParseLevel(s string) EventLevel {
	l := EventLevel(s)
	if _, ok := levelPriority[l]; ok {
		return l
	}
	return LevelInfo
}

// Event represents a single merge decision or pipeline step
type Event struct {
	Timestamp time.Time         `json:"ts"`
	RunID     string            `json:"run_id"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	URL       string            `json:"url,omitempty"`
	Episode   string            `json:"episode,omitempty"`
	MatchKey  string            `json:"match_key,omitempty"`
	Score     float64           `json:"score,omitempty"`
	Action    string            `json:"action,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Bytes     int               `json:"bytes,omitempty"`
	Duration  int64             `json:"duration_ms,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	runID    string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s-%s.jsonl", timestamp, runID[:8])
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		runID:    runID,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.RunID = l.runID

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogFetch logs the outcome of loading one feed
func (l *EventLogger) LogFetch(url string, bytes int, duration time.Duration, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:    level,
		Event:    EventFetch,
		URL:      url,
		Bytes:    bytes,
		Duration: duration.Milliseconds(),
		Error:    errMsg,
	})
}

// LogParse logs a parsed feed and how many entries it produced
func (l *EventLogger) LogParse(feed string, entries int) error {
	return l.Log(&Event{
		Level: LevelDebug,
		Event: EventParse,
		Extra: map[string]string{
			"feed":    feed,
			"entries": fmt.Sprintf("%d", entries),
		},
	})
}

// LogChoreoMatch logs the best choreography candidate for an episode and
// whether it cleared the acceptance threshold
func (l *EventLogger) LogChoreoMatch(episode, groupKey string, score float64, accepted bool) error {
	level := LevelDebug
	action := "rejected"
	if accepted {
		level = LevelInfo
		action = "matched"
	}

	return l.Log(&Event{
		Level:    level,
		Event:    EventChoreoMatch,
		Episode:  episode,
		MatchKey: groupKey,
		Score:    score,
		Action:   action,
	})
}

// LogSongMatch logs a songbook match. method is "exact" or "fuzzy".
func (l *EventLogger) LogSongMatch(episode, songKey, songName, method string, score float64) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventSongMatch,
		Episode:  episode,
		MatchKey: songKey,
		Score:    score,
		Action:   method,
		Extra: map[string]string{
			"song": songName,
		},
	})
}

// LogSheetMusic logs an attached score
func (l *EventLogger) LogSheetMusic(episode, url string) error {
	return l.Log(&Event{
		Level:   LevelInfo,
		Event:   EventSheetMusic,
		Episode: episode,
		URL:     url,
	})
}

// LogMissing logs a songbook entry with no matching episode
func (l *EventLogger) LogMissing(songName, closestEpisode string, closeness float64) error {
	e := &Event{
		Level:    LevelWarning,
		Event:    EventMissing,
		MatchKey: songName,
	}
	if closestEpisode != "" {
		e.Episode = closestEpisode
		e.Score = closeness
		e.Reason = "closest episode"
	}
	return l.Log(e)
}

// LogMerge logs a completed merge
func (l *EventLogger) LogMerge(audioURL string, episodes, choreoGroups int, duration time.Duration) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventMerge,
		URL:      audioURL,
		Duration: duration.Milliseconds(),
		Extra: map[string]string{
			"episodes":      fmt.Sprintf("%d", episodes),
			"choreo_groups": fmt.Sprintf("%d", choreoGroups),
		},
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, url string, err error) error {
	return l.Log(&Event{
		Level: LevelError,
		Event: event,
		URL:   url,
		Error: err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID returns the identifier stamped on every event of this logger
func (l *EventLogger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
