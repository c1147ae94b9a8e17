package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/carolcast/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "carolcast",
		Short: "Dickens Carolers rehearsal playlist - voice-part tracks merged with choreography",
		Long: `carolcast merges a voice-part rehearsal podcast with the choir's choreography
feed, matches every track against the songbook and sheet-music index, and keeps
your practice progress (plays, confidence, favorites, bookmarks) in a local database.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.SetVerbose(viper.GetBool("verbose"))
			util.SetQuiet(viper.GetBool("quiet"))
		},
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/carolcast.yaml)")
	rootCmd.PersistentFlags().String("db", defaultDBPath, "preferences database file")
	rootCmd.PersistentFlags().String("voice", "", "voice part: SOPRANO, ALTO, TENOR or BASS (default: saved part)")
	rootCmd.PersistentFlags().String("feed-url", "", "audio feed URL (overrides --voice)")
	rootCmd.PersistentFlags().String("choreo-feed-url", "", "choreography feed URL")
	rootCmd.PersistentFlags().StringSlice("relays", nil, "ordered relay base URLs tried after a direct fetch")
	rootCmd.PersistentFlags().Duration("timeout", 0, "overall deadline for loading both feeds (0 = none)")
	rootCmd.PersistentFlags().String("events-dir", defaultEventsDir, "directory for JSONL event logs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("voice", rootCmd.PersistentFlags().Lookup("voice"))
	viper.BindPFlag("feed_url", rootCmd.PersistentFlags().Lookup("feed-url"))
	viper.BindPFlag("choreo_feed_url", rootCmd.PersistentFlags().Lookup("choreo-feed-url"))
	viper.BindPFlag("relays", rootCmd.PersistentFlags().Lookup("relays"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("events_dir", rootCmd.PersistentFlags().Lookup("events-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err == nil {
		util.DebugLog("Loaded .env")
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("carolcast")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("CAROL")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
