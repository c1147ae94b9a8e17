package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/franz/carolcast/internal/feed"
	"github.com/franz/carolcast/internal/util"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked positions within an episode",
	Long: `Bookmarks mark places in a track you want to jump back to.

Positions are m:ss, h:mm:ss or plain seconds (decimals allowed). A bookmark
within half a second of an existing one is ignored.`,
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <episode> <position>",
	Short: "Bookmark a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkAdd,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "rm <episode> <position>",
	Aliases: []string{"remove"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(2),
	RunE:    runBookmarkRemove,
}

var bookmarkListCmd = &cobra.Command{
	Use:     "list <episode>",
	Aliases: []string{"ls"},
	Short:   "List the bookmarks of an episode",
	Args:    cobra.ExactArgs(1),
	RunE:    runBookmarkList,
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkRemoveCmd, bookmarkListCmd)
}

// parsePosition reads a bookmark position in seconds
func parsePosition(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		secs, ok := feed.ParseDuration(s)
		if !ok || secs < 0 {
			return 0, fmt.Errorf("%w: invalid position %q", util.ErrInvalidConfig, s)
		}
		return float64(secs), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: invalid position %q", util.ErrInvalidConfig, s)
	}
	return f, nil
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
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

	added, err := s.db.AddBookmark(ep.AudioURL, pos)
	if err != nil {
		return err
	}
	if added {
		util.SuccessLog("Bookmarked %s at %s", ep.Title, feed.FormatTime(pos))
	} else {
		util.InfoLog("%s already has a bookmark at %s", ep.Title, feed.FormatTime(pos))
	}
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
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

	marks, err := s.db.Bookmarks(ep.AudioURL)
	if err != nil {
		return err
	}
	target, ok := pickBookmark(marks, pos, args[1])
	if !ok {
		return fmt.Errorf("%w: %s has no bookmark at %s", util.ErrNotFound, ep.Title, args[1])
	}

	if _, err := s.db.RemoveBookmark(ep.AudioURL, target); err != nil {
		return err
	}
	util.SuccessLog("Removed bookmark %s from %s", feed.FormatTime(target), ep.Title)
	return nil
}

// pickBookmark finds the stored position the user meant: the exact value, or
// the one that displays as the m:ss they typed
func pickBookmark(marks []float64, pos float64, typed string) (float64, bool) {
	for _, m := range marks {
		if m == pos {
			return m, true
		}
	}
	if strings.Contains(typed, ":") {
		label := feed.FormatTime(pos)
		for _, m := range marks {
			if feed.FormatTime(m) == label {
				return m, true
			}
		}
	}
	return 0, false
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
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

	marks, err := s.db.Bookmarks(ep.AudioURL)
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		util.InfoLog("%s has no bookmarks", ep.Title)
		return nil
	}

	rows := make([][]string, len(marks))
	for i, m := range marks {
		rows[i] = []string{strconv.Itoa(i + 1), feed.FormatTime(m), strconv.FormatFloat(m, 'f', -1, 64)}
	}
	fmt.Println(renderTable([]string{"#", "At", "Seconds"}, rows, []columnAlignment{alignRight, alignRight, alignRight}))
	return nil
}
