// Command resultview reads published result sheets from a resultsd server
// or a local file and prints them as tables, summaries or JSON/YAML.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/catalog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/logging"
)

var (
	// Global flags
	verbose  bool
	server   string
	password string
	file     string
	timeout  time.Duration
	output   string
	sel      catalog.Selection

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resultview",
	Short: "Browse exam result sheets",
	Long: `resultview fetches one result sheet and renders it in the terminal.

A sheet is picked either by its identifier (the file name without .json,
e.g. "test.2025.hsc.science.2024-2025") or with --exam, --year, --level,
--group and --session. --file reads a local JSON file instead and skips
the password gate.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(os.Getenv("LOG_LEVEL"), verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&server, "server", envOr("RESULTS_SERVER", "http://localhost:3000"), "resultsd base URL")
	pf.StringVar(&password, "password", os.Getenv("RESULTS_PASSWORD"), "Viewer password")
	pf.StringVarP(&file, "file", "f", "", "Read a local result JSON file instead of the server")
	pf.DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	pf.StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")

	pf.StringVar(&sel.Exam, "exam", "", "Exam name, e.g. test")
	pf.StringVar(&sel.Year, "year", "", "Exam year")
	pf.StringVar(&sel.Level, "level", "", "Level, e.g. hsc")
	pf.StringVar(&sel.Group, "group", "", "Group, e.g. science")
	pf.StringVar(&sel.Session, "session", "", "Session, e.g. 2024-2025")

	showCmd.Flags().StringVar(&sortToken, "sort", "roll|asc", "Sort as field|dir (see 'subjects' for subject keys)")
	showCmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name or roll")
	showCmd.Flags().BoolVar(&detailed, "detail", false, "Show every sub-mark for every subject")
	showCmd.Flags().StringVar(&detailSubject, "detail-subject", "", "Show sub-marks for one subject")
	showCmd.Flags().StringVar(&detailRow, "detail-row", "", "Show sub-marks for one roll")

	rootCmd.AddCommand(listCmd, showCmd, summaryCmd, subjectsCmd, browseCmd)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
