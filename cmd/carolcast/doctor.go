package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/carolcast/internal/fetch"
	"github.com/franz/carolcast/internal/merge"
	"github.com/franz/carolcast/internal/reconcile"
	"github.com/franz/carolcast/internal/report"
	"github.com/franz/carolcast/internal/songbook"
	"github.com/franz/carolcast/internal/store"
	"github.com/franz/carolcast/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the environment and configuration",
	Long: `Run diagnostic checks to ensure carolcast can operate correctly.

This command checks:
- SQLite version compatibility
- Preferences database accessibility and integrity
- Configured voice part
- Reachability of the audio and choreography feeds (direct or via relay)
- Parse and merge of both feeds, with songbook coverage

Use this command to troubleshoot issues before a rehearsal.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().Bool("offline", false, "skip the network checks")
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	util.InfoLog("=== Carolcast Doctor - System Diagnostics ===")
	util.InfoLog("")

	results := []checkResult{}

	// 1. Check SQLite
	results = append(results, checkSQLite())

	// 2. Check database file
	dbPath := viper.GetString("db")
	results = append(results, checkDatabase(dbPath))

	// 3. Check voice part
	voiceResult, feedURL := checkVoice(dbPath)
	results = append(results, voiceResult)

	// 4. Check feeds
	if !offline && feedURL != "" {
		ctx := cmd.Context()
		f := newFetcher()
		choreoURL := util.GetConfigString("choreo_feed_url", songbook.ChoreoFeedURL)

		results = append(results, checkFeed(ctx, f, "Audio feed", feedURL))
		results = append(results, checkFeed(ctx, f, "Choreography feed", choreoURL))
		results = append(results, checkMerge(ctx, f, feedURL, choreoURL))
	}

	// Print results
	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	// Summary
	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("❌ Some critical checks failed. Please resolve errors before rehearsing.")
		return fmt.Errorf("system diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("⚠️  Some checks produced warnings. Review them before proceeding.")
	} else {
		util.SuccessLog("✅ All checks passed! Ready to sing.")
	}

	return nil
}

// checkSQLite verifies SQLite version
func checkSQLite() checkResult {
	// modernc.org/sqlite is built in, so only the version is checked
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "unable to determine version",
		}
	}

	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s (built-in)", version),
	}
}

// checkDatabase verifies database file accessibility
func checkDatabase(dbPath string) checkResult {
	if dbPath == "" {
		return checkResult{
			name:    "Database",
			warning: true,
			message: "no database path specified (use --db flag or config)",
		}
	}

	// Check if database exists
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{
				name:    "Database",
				message: fmt.Sprintf("%s (will be created on first run)", dbPath),
			}
		}
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", dbPath, err),
		}
	}

	// Check if it's a regular file
	if !info.Mode().IsRegular() {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("%s is not a regular file", dbPath),
		}
	}

	// Try to open it
	db, err := store.Open(dbPath)
	if err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	defer db.Close()

	// Check integrity
	if err := db.CheckIntegrity(); err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("integrity check failed: %v", err),
		}
	}

	// Get some stats
	prefs, err := db.Snapshot()
	if err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot read preferences: %v", err),
		}
	}

	mode, err := db.JournalMode()
	if err != nil {
		mode = "unknown"
	}

	return checkResult{
		name: "Database",
		message: fmt.Sprintf("%s (%s, %s journal, %d played, %d favorites)",
			dbPath, humanize.Bytes(uint64(info.Size())), mode, len(prefs.PlayCounts), len(prefs.Favorites)),
	}
}

// checkVoice resolves the voice part and its feed without creating a database
func checkVoice(dbPath string) (checkResult, string) {
	var db *store.Store
	if _, err := os.Stat(dbPath); err == nil {
		if opened, err := store.Open(dbPath); err == nil {
			db = opened
			defer db.Close()
		}
	}

	var (
		feedURL string
		voice   songbook.Voice
		err     error
	)
	if db != nil {
		feedURL, voice, err = resolveFeedURL(db)
	} else {
		voice, err = resolveVoice(nil)
		if err == nil {
			feedURL = util.GetConfigString("feed_url", "")
			if feedURL == "" {
				feedURL, err = songbook.FeedURL(string(voice))
			}
		}
	}
	if err != nil {
		return checkResult{
			name:    "Voice part",
			error:   true,
			message: err.Error(),
		}, ""
	}

	return checkResult{
		name:    "Voice part",
		message: fmt.Sprintf("%s (%s)", voice.Title(), feedURL),
	}, feedURL
}

// checkFeed verifies a feed can be fetched directly or through a relay
func checkFeed(ctx context.Context, f *fetch.Fetcher, name, url string) checkResult {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	text, err := f.Fetch(ctx, url)
	if err != nil {
		return checkResult{
			name:    name,
			error:   true,
			message: err.Error(),
		}
	}

	return checkResult{
		name:    name,
		message: fmt.Sprintf("%s in %s", humanize.Bytes(uint64(len(text))), time.Since(start).Round(time.Millisecond)),
	}
}

// checkMerge loads and merges both feeds and reports songbook coverage
func checkMerge(ctx context.Context, f *fetch.Fetcher, feedURL, choreoURL string) checkResult {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	o := merge.NewOrchestrator(f, reconcile.NewDefault()).WithChoreoURL(choreoURL)
	result, err := o.GetMergedEpisodes(ctx, feedURL)
	if err != nil {
		return checkResult{
			name:    "Merge",
			error:   true,
			message: err.Error(),
		}
	}

	summary := report.BuildMergeSummary(result.Episodes, o.MissingSongs(result.Episodes))
	r := checkResult{
		name: "Merge",
		message: fmt.Sprintf("%d episodes, %d with choreography, %.0f%% of the songbook covered",
			summary.Episodes, summary.WithChoreo, summary.Coverage()*100),
	}
	if summary.Episodes == 0 {
		r.warning = true
		r.message = fmt.Sprintf("%s has no episodes", feedURL)
	}
	return r
}
