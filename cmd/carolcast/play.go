package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

var playCmd = &cobra.Command{
	Use:   "play <episode>",
	Short: "Record a rehearsal play and show what comes next",
	Long: `Record that you practiced an episode. The play count goes up by one and your
confidence is raised automatically as plays accumulate (up to 70%).

Prints the audio URL to hand to a player, plus the previous and next episodes
in the chosen order (the list wraps around).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var playsCmd = &cobra.Command{
	Use:   "plays <episode> <count>",
	Short: "Set the play count of an episode",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlays,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(playsCmd)

	playCmd.Flags().String("sort", string(playlist.SortBookOrder), "order used for next/previous")
	playCmd.Flags().String("search", "", "restrict next/previous to matching episodes")
	playCmd.Flags().String("choreo", "", "restrict next/previous by choreography")
	playCmd.Flags().Bool("favorites", false, "restrict next/previous to favorites")
	playCmd.Flags().Float64("duration", 0, "remember the track length in seconds, as measured by your player")
}

func runPlay(cmd *cobra.Command, args []string) error {
	filter, mode, err := viewFilter(cmd)
	if err != nil {
		return err
	}
	duration, _ := cmd.Flags().GetFloat64("duration")

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

	plays, err := s.db.BumpPlayCount(ep.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	if duration > 0 {
		if err := s.db.CacheDuration(ep.AudioURL, duration); err != nil {
			util.WarnLog("Failed to cache duration: %v", err)
		}
	}
	conf, err := s.db.Confidence(ep.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to read confidence: %w", err)
	}

	util.SuccessLog("♪ %s - played %d %s, confidence %d%% (%s)",
		ep.Title, plays, plural(plays, "time", "times"), conf, songbook.ConfidenceLevelFor(conf).Title)
	fmt.Println(ep.AudioURL)

	prefs, err := s.db.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	view := playlist.View(result.Episodes, filter, mode, prefs)
	if prev, ok := playlist.Previous(view, ep.ID); ok {
		printNeighbor("Previous", prev)
	}
	if next, ok := playlist.Next(view, ep.ID); ok {
		printNeighbor("Next", next)
	}
	return nil
}

func printNeighbor(label string, ep *feed.Episode) {
	util.InfoLog("%-8s %s", label+":", ep.Title)
}

func runPlays(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: play count must be a whole number, got %q", util.ErrInvalidConfig, args[1])
	}

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

	if err := s.db.SetPlayCount(ep.AudioURL, count); err != nil {
		return fmt.Errorf("failed to set play count: %w", err)
	}
	plays, err := s.db.PlayCount(ep.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to read play count: %w", err)
	}

	util.SuccessLog("%s: %d %s", ep.Title, plays, plural(plays, "play", "plays"))
	return nil
}
