package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/songbook"
)

// MergeSummary counts what a merge produced
type MergeSummary struct {
	GeneratedAt time.Time

	PodcastTitle string
	Voice        string
	FeedURL      string
	EventLogPath string

	Episodes       int
	WithChoreo     int
	WithFront      int
	WithBack       int
	WithNotes      int
	WithSongbook   int
	WithSheetMusic int

	Missing []songbook.SongInfo
}

// BuildMergeSummary tallies enrichment coverage over merged episodes
func BuildMergeSummary(episodes []*feed.Episode, missing []songbook.SongInfo) *MergeSummary {
	s := &MergeSummary{
		GeneratedAt: time.Now(),
		Episodes:    len(episodes),
		Missing:     missing,
	}

	for _, ep := range episodes {
		if ep.Choreo.Any() {
			s.WithChoreo++
		}
		if ep.Choreo.Front != nil {
			s.WithFront++
		}
		if ep.Choreo.Back != nil {
			s.WithBack++
		}
		if ep.Choreo.Notes != nil {
			s.WithNotes++
		}
		if ep.SongKey != "" || ep.SongPage != "" {
			s.WithSongbook++
		}
		if ep.SheetMusicURL != "" {
			s.WithSheetMusic++
		}
	}

	return s
}

// Coverage returns the share of songbook entries that have an episode, in [0,1]
func (s *MergeSummary) Coverage() float64 {
	total := len(songbook.Songs)
	if total == 0 {
		return 0
	}
	have := total - len(s.Missing)
	if have < 0 {
		have = 0
	}
	return float64(have) / float64(total)
}

// WriteMarkdownReport writes the summary as Markdown
func WriteMarkdownReport(s *MergeSummary, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var md strings.Builder

	title := s.PodcastTitle
	if title == "" {
		title = feed.DefaultPodcastTitle
	}
	md.WriteString(fmt.Sprintf("# %s - Rehearsal Playlist Report\n\n", title))
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05")))

	if s.Voice != "" {
		md.WriteString(fmt.Sprintf("**Voice part:** %s\n\n", s.Voice))
	}
	if s.FeedURL != "" {
		md.WriteString(fmt.Sprintf("**Feed:** `%s`\n\n", s.FeedURL))
	}
	if s.EventLogPath != "" {
		md.WriteString(fmt.Sprintf("**Event Log:** `%s`\n\n", s.EventLogPath))
	}

	md.WriteString("---\n\n")

	md.WriteString("## 📊 Overview\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Episodes | %d |\n", s.Episodes))
	md.WriteString(fmt.Sprintf("| With Choreography | %d |\n", s.WithChoreo))
	md.WriteString(fmt.Sprintf("| Front View | %d |\n", s.WithFront))
	md.WriteString(fmt.Sprintf("| Back View | %d |\n", s.WithBack))
	md.WriteString(fmt.Sprintf("| Notes | %d |\n", s.WithNotes))
	md.WriteString(fmt.Sprintf("| Songbook Matches | %d |\n", s.WithSongbook))
	md.WriteString(fmt.Sprintf("| Sheet Music | %d |\n", s.WithSheetMusic))
	md.WriteString(fmt.Sprintf("| Songbook Coverage | %.0f%% |\n", s.Coverage()*100))
	md.WriteString("\n")

	if len(s.Missing) > 0 {
		md.WriteString(fmt.Sprintf("## 🎄 Missing Songs (%d)\n\n", len(s.Missing)))
		md.WriteString("| Song | Key | Page |\n")
		md.WriteString("|------|-----|------|\n")
		for _, song := range s.Missing {
			md.WriteString(fmt.Sprintf("| %s | %s | %s |\n", song.Name, song.Key, song.Page))
		}
		md.WriteString("\n")
	}

	md.WriteString("---\n\n")
	md.WriteString("*Generated by carolcast*\n")

	if err := os.WriteFile(outputPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
