package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/util"
)

var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List songbook songs that have no rehearsal track",
	Long: `Compare the songbook against the merged playlist and list every song with no
episode resembling it (similarity above 0.7 counts as present), alphabetically.

With --hints the closest episode title is shown next to each song.`,
	Args: cobra.NoArgs,
	RunE: runMissing,
}

func init() {
	rootCmd.AddCommand(missingCmd)

	missingCmd.Flags().Bool("hints", false, "show the closest episode for each missing song")
}

func runMissing(cmd *cobra.Command, args []string) error {
	hints, _ := cmd.Flags().GetBool("hints")

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	missing := s.orchestrator.MissingSongs(result.Episodes)
	if len(missing) == 0 {
		util.SuccessLog("Every songbook song has a %s track.", s.voice.Title())
		return nil
	}

	headers := []string{"Song", "Key", "Page"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	if hints {
		headers = append(headers, "Closest episode", "Closeness")
		aligns = append(aligns, alignLeft, alignRight)
	}

	rows := make([][]string, 0, len(missing))
	for _, song := range missing {
		row := []string{song.Name, song.Key, song.Page}
		if hints {
			title, score := reconcile.ClosestEpisode(song, result.Episodes)
			row = append(row, title, fmt.Sprintf("%.2f", score))
		}
		rows = append(rows, row)
	}

	fmt.Println(renderTable(headers, rows, aligns))
	util.WarnLog("%d songbook songs have no %s track", len(missing), s.voice.Title())
	return nil
}
