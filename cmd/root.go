package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/guruai/internal/config"
	"github.com/abhisek/guruai/internal/store"
)

// cfg is loaded once in PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "guruai",
	Short: "AI study buddy for Classes 8 to 10",
	Long:  "GuruAI: a terminal tutor for CBSE, ICSE and State Board students. Chat with the tutor, photograph a problem, or take a quick quiz.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.Log.Level = lvl
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./guruai.yaml or $XDG_CONFIG_HOME/guruai/guruai.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite request log (overrides GURU_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().String("name", "", "Student name; with --grade and --board skips the profile screen")
	rootCmd.Flags().String("grade", "", "Grade: 8th, 9th or 10th")
	rootCmd.Flags().String("board", "", "Board: CBSE, ICSE or State Board")
	rootCmd.Flags().Bool("no-splash", false, "Skip the splash screen")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then db.path from config, then GURU_DB, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return "", fmt.Errorf("resolve DB path: %w", err)
	}
	return p, nil
}
