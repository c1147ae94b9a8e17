package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/playlist"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the merged rehearsal playlist",
	Long: `Load the voice-part feed and the choreography feed, merge them, and print
the playlist with songbook page, key, length, choreography and practice stats.

Choreography column: F = front view, B = back view, N = notes.

Examples:
  carolcast list --sort mostPlayed
  carolcast list --search jingle --choreo front,back
  carolcast list --favorites --report artifacts/playlist.md`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("sort", string(playlist.SortBookOrder), "sort mode: "+sortModeNames())
	listCmd.Flags().String("search", "", "only episodes whose title or description contains this text")
	listCmd.Flags().String("choreo", "", "choreography filters: any, front, back, notes (comma separated)")
	listCmd.Flags().Bool("favorites", false, "only favorites")
	listCmd.Flags().String("report", "", "also write a Markdown merge report to this path")
}

func sortModeNames() string {
	names := make([]string, len(playlist.SortModes))
	for i, m := range playlist.SortModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// viewFilter reads the shared filter flags of a command
func viewFilter(cmd *cobra.Command) (playlist.Filter, playlist.SortMode, error) {
	sortName, _ := cmd.Flags().GetString("sort")
	search, _ := cmd.Flags().GetString("search")
	choreoSpec, _ := cmd.Flags().GetString("choreo")
	favorites, _ := cmd.Flags().GetBool("favorites")

	mode, err := playlist.ParseSortMode(sortName)
	if err != nil {
		return playlist.Filter{}, "", err
	}
	choreo, ok := playlist.ParseChoreoFilters(choreoSpec)
	if !ok {
		return playlist.Filter{}, "", fmt.Errorf("%w: --choreo must list any, front, back or notes", util.ErrInvalidConfig)
	}

	return playlist.Filter{Search: search, Choreo: choreo, FavoritesOnly: favorites}, mode, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, mode, err := viewFilter(cmd)
	if err != nil {
		return err
	}
	reportPath, _ := cmd.Flags().GetString("report")

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	prefs, err := s.db.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	_, numbers := numbering(result.Episodes)
	episodes := playlist.View(result.Episodes, filter, mode, prefs)

	util.InfoLog("=== %s (%s) ===", result.PodcastTitle, s.voice.Title())

	if len(episodes) == 0 {
		util.WarnLog("No episodes match the current filters.")
	} else {
		width := max(util.GetTerminalWidth()-70, 24)
		rows := make([][]string, 0, len(episodes))
		for _, ep := range episodes {
			fav := ""
			if prefs.IsFavorite(ep.AudioURL) {
				fav = "★"
			}
			rows = append(rows, []string{
				strconv.Itoa(numbers[ep.ID]),
				util.Truncate(ep.Title, width),
				ep.SongPage,
				ep.SongKey,
				lengthOf(ep, prefs),
				choreoFlags(ep.Choreo),
				humanize.Comma(int64(prefs.PlayCount(ep.AudioURL))),
				fmt.Sprintf("%d%%", prefs.ConfidenceFor(ep.AudioURL)),
				fav,
			})
		}

		fmt.Println(renderTable(
			[]string{"#", "Title", "Page", "Key", "Length", "Choreo", "Plays", "Confidence", "★"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
		))
	}

	util.InfoLog("%d of %d episodes, sorted by %s, loaded %s",
		len(episodes), len(result.Episodes), mode, humanize.Time(result.LoadedAt))

	if reportPath != "" {
		missing := s.orchestrator.MissingSongs(result.Episodes)
		summary := report.BuildMergeSummary(result.Episodes, missing)
		summary.PodcastTitle = result.PodcastTitle
		summary.Voice = s.voice.Title()
		summary.FeedURL = s.feedURL
		summary.EventLogPath = s.events.Path()

		if err := report.WriteMarkdownReport(summary, reportPath); err != nil {
			return err
		}
		util.SuccessLog("Report written to %s", reportPath)
	}

	return nil
}
