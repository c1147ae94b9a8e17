package main

import (
	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/util"
)

var voiceCmd = &cobra.Command{
	Use:   "voice [soprano|alto|tenor|bass]",
	Short: "Show or save your voice part",
	Long: `Show or save the voice part whose rehearsal feed is loaded by default.
The --voice flag or CAROL_VOICE still override the saved part for one run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVoice,
}

func init() {
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		v, err := songbook.ParseVoice(args[0])
		if err != nil {
			return err
		}
		if err := db.SetVoice(v); err != nil {
			return err
		}
		util.SuccessLog("Voice part set to %s", v.Title())
	}

	v, err := db.Voice()
	if err != nil {
		return err
	}
	u, err := songbook.FeedURL(string(v))
	if err != nil {
		return err
	}
	util.InfoLog("Voice part: %s (%s)", v.Title(), u)
	return nil
}
