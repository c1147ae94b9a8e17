package feed

import (
	"strings"
	"time"
)

// ChoreoItem is one media entry from the choreography feed
type ChoreoItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
	MediaType   string `json:"mediaType"`
}

// ChoreoBundle holds the front-view, back-view and notes media for one song.
// A filled slot is never overwritten.
type ChoreoBundle struct {
	Front *ChoreoItem `json:"front"`
	Back  *ChoreoItem `json:"back"`
	Notes *ChoreoItem `json:"notes"`
}

// Any reports whether at least one slot is filled
func (b ChoreoBundle) Any() bool {
	return b.Front != nil || b.Back != nil || b.Notes != nil
}

// Empty reports whether no slot is filled
func (b ChoreoBundle) Empty() bool {
	return !b.Any()
}

// Episode is one audio track from the voice-part feed, enriched during
// reconciliation with choreography, songbook and sheet-music data.
type Episode struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	PubDate         string       `json:"pubDate"`
	Duration        string       `json:"duration"`
	DurationSeconds *int         `json:"durationSeconds"`
	AudioURL        string       `json:"audioUrl"`
	Image           string       `json:"image"`
	Description     string       `json:"description"`
	Choreo          ChoreoBundle `json:"choreo"`
	SongName        string       `json:"songName,omitempty"`
	SongKey         string       `json:"songKey,omitempty"`
	SongPage        string       `json:"songPage,omitempty"`
	SheetMusicURL   string       `json:"sheetMusicUrl,omitempty"`
}

// pubDateLayouts are the date formats seen in podcast feeds
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// PublishedAt parses PubDate, returning the zero time when it is unparseable
func (e *Episode) PublishedAt() time.Time {
	s := strings.TrimSpace(e.PubDate)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AudioFeed is the parsed audio feed
type AudioFeed struct {
	Episodes     []*Episode
	PodcastTitle string
	PodcastImage string
}
