package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence <episode> [0-100]",
	Short: "Show or set how well you know an episode",
	Long: `Show or set your confidence for an episode, from 0 to 100.

Without a value, prints the current confidence and its level. Use --levels to
print every level.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if levels, _ := cmd.Flags().GetBool("levels"); levels {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(1, 2)(cmd, args)
	},
	RunE: runConfidence,
}

func init() {
	rootCmd.AddCommand(confidenceCmd)

	confidenceCmd.Flags().Bool("levels", false, "list the confidence levels")
}

func runConfidence(cmd *cobra.Command, args []string) error {
	if levels, _ := cmd.Flags().GetBool("levels"); levels {
		printLevels()
		return nil
	}

	var value int
	setting := len(args) == 2
	if setting {
		v, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return fmt.Errorf("%w: confidence must be a number from 0 to 100, got %q", util.ErrInvalidConfig, args[1])
		}
		value = v
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

	if setting {
		if err := s.db.SetConfidence(ep.AudioURL, value); err != nil {
			return fmt.Errorf("failed to set confidence: %w", err)
		}
	}

	conf, err := s.db.Confidence(ep.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to read confidence: %w", err)
	}
	level := songbook.ConfidenceLevelFor(conf)

	util.SuccessLog("%s: %d%% - %s", ep.Title, conf, level.Title)
	util.InfoLog("%s", level.Description)
	return nil
}

func printLevels() {
	rows := make([][]string, 0, len(songbook.ConfidenceLevels))
	for _, l := range songbook.ConfidenceLevels {
		rows = append(rows, []string{fmt.Sprintf("%d%%", l.Threshold), l.Title, l.Description})
	}
	fmt.Println(renderTable(
		[]string{"From", "Level", ""},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
}
