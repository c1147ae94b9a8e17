package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/songbook"
)

var showCmd = &cobra.Command{
	Use:   "show <episode>",
	Short: "Show one episode with its choreography, songbook entry and your progress",
	Long: `Show everything known about one episode.

<episode> is the number printed by 'carolcast list', the episode id (audio URL),
or a title (exact, or a unique part of it).`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	ep, err := resolveEpisode(result.Episodes, args[0])
	if err != nil {
		return err
	}

	prefs, err := s.db.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	fmt.Println(ep.Title)
	fmt.Println(strings.Repeat("=", len([]rune(ep.Title))))
	fmt.Printf("Audio:      %s\n", ep.AudioURL)
	fmt.Printf("Length:     %s\n", lengthOf(ep, prefs))
	if t := ep.PublishedAt(); !t.IsZero() {
		fmt.Printf("Published:  %s (%s)\n", t.Format("2006-01-02"), humanize.Time(t))
	}

	if ep.SongName != "" {
		fmt.Printf("Songbook:   %s, page %s, key of %s\n", ep.SongName, ep.SongPage, ep.SongKey)
	}
	if ep.SheetMusicURL != "" {
		fmt.Printf("Sheet music: %s\n", ep.SheetMusicURL)
	}

	printChoreoItem("Front view", ep.Choreo.Front)
	printChoreoItem("Back view", ep.Choreo.Back)
	printChoreoItem("Notes", ep.Choreo.Notes)
	if ep.Choreo.Empty() {
		fmt.Println("Choreo:     none")
	}

	plays := prefs.PlayCount(ep.AudioURL)
	conf := prefs.ConfidenceFor(ep.AudioURL)
	level := songbook.ConfidenceLevelFor(conf)
	fmt.Println()
	fmt.Printf("Played:     %s\n", humanize.Comma(int64(plays))+" "+plural(plays, "time", "times"))
	fmt.Printf("Confidence: %d%% - %s\n", conf, level.Title)
	fmt.Printf("            %s\n", level.Description)
	if prefs.IsFavorite(ep.AudioURL) {
		fmt.Println("Favorite:   ★")
	}
	if marks := prefs.Bookmarks[ep.AudioURL]; len(marks) > 0 {
		labels := make([]string, len(marks))
		for i, m := range marks {
			labels[i] = feed.FormatTime(m)
		}
		fmt.Printf("Bookmarks:  %s\n", strings.Join(labels, ", "))
	}

	if ep.Description != "" {
		fmt.Println()
		fmt.Println(ep.Description)
	}

	return nil
}

func printChoreoItem(label string, item *feed.ChoreoItem) {
	if item == nil {
		return
	}
	fmt.Printf("%-11s %s", label+":", item.MediaURL)
	if item.MediaType != "" {
		fmt.Printf(" (%s)", item.MediaType)
	}
	fmt.Println()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
