package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/util"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <episode>",
	Short: "Toggle an episode as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavorite,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}

func runFavorite(cmd *cobra.Command, args []string) error {
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

	fav, err := s.db.ToggleFavorite(ep.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	if fav {
		util.SuccessLog("★ %s added to favorites", ep.Title)
	} else {
		util.InfoLog("%s removed from favorites", ep.Title)
	}
	return nil
}
