package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jfmyers9/lastexport/internal/config"
	"github.com/jfmyers9/lastexport/internal/export"
	"github.com/jfmyers9/lastexport/pkg/lastfm"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	exportUser       string
	exportAPIKey     string
	exportDBPath     string
	exportPerPage    int
	exportRetryLimit int
	exportPeriod     string
	exportYes        bool
	exportLogLevel   string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Last.fm play counts to the configured database",
	Long: `Fetch a user's all-time top tracks from Last.fm and write one
play-count row per track into the configured SQLite database.

Pages are fetched strictly in order and each page's tracks are written
before the next page is requested. All writes stay pending in a single
transaction; before the final commit you are asked to close any other
program holding the database open (pass --yes to skip the prompt).

Configuration is read from ~/.config/lastexport/config.yaml and the
LASTEXPORT_* environment variables; flags override both.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	// Command-line flags (override config file and environment)
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Last.fm username (required unless configured)")
	exportCmd.Flags().StringVar(&exportAPIKey, "api-key", "", "Last.fm API key")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to the quicktag SQLite database")
	exportCmd.Flags().IntVar(&exportPerPage, "per-page", 0, "Tracks per page (default 500)")
	exportCmd.Flags().IntVar(&exportRetryLimit, "retry-limit", 0, "Fetch attempts per page (default 3)")
	exportCmd.Flags().StringVar(&exportPeriod, "period", string(lastfm.PeriodOverall), "Ranking period (overall, 7day, 1month, 3month, 6month, 12month)")
	exportCmd.Flags().BoolVar(&exportYes, "yes", false, "Skip the pre-commit confirmation prompt")
	exportCmd.Flags().StringVar(&exportLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runExport(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override config
	if exportUser != "" {
		cfg.LastFM.User = exportUser
	}
	if exportAPIKey != "" {
		cfg.LastFM.APIKey = exportAPIKey
	}
	if exportDBPath != "" {
		cfg.DBPath = exportDBPath
	}
	if cmd.Flags().Changed("per-page") {
		cfg.PerPage = exportPerPage
	}
	if cmd.Flags().Changed("retry-limit") {
		cfg.RetryLimit = exportRetryLimit
	}

	if cfg.LastFM.APIKey == "" {
		return fmt.Errorf("last.fm API key not configured. Set lastfm.api_key or pass --api-key")
	}
	if cfg.PerPage < 1 {
		return fmt.Errorf("per_page must be positive (got %d)", cfg.PerPage)
	}
	if cfg.RetryLimit < 0 {
		return fmt.Errorf("retry_limit must not be negative (got %d)", cfg.RetryLimit)
	}

	period, err := lastfm.ParsePeriod(exportPeriod)
	if err != nil {
		return err
	}

	// Set up logging
	logger := setupLogger(exportLogLevel)

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey: cfg.LastFM.APIKey,
		Logger: sdkLogger{logger},
	})
	if err != nil {
		return fmt.Errorf("failed to create lastfm client: %w", err)
	}

	confirm := promptConfirm
	if exportYes {
		confirm = nil
	}

	importer := export.NewImporter(export.Config{
		User:       cfg.LastFM.User,
		PerPage:    cfg.PerPage,
		RetryLimit: cfg.RetryLimit,
		DBPath:     cfg.DBPath,
		Confirm:    confirm,
	}, export.NewLastFMFetcher(client, period), logger)

	counters, err := importer.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(counters)
	return nil
}

// setupLogger configures zerolog for console output on stderr
func setupLogger(level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(logLevel).With().Timestamp().Logger()
}

// sdkLogger adapts zerolog to the lastfm.Logger interface
type sdkLogger struct {
	logger zerolog.Logger
}

func (l sdkLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// promptConfirm blocks until the user acknowledges that no other program
// is writing to the database. The pending transaction commits only after
// this returns.
func promptConfirm() error {
	fmt.Print("Please close any programs currently accessing the database, then press enter to continue: ")
	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("confirmation aborted: %w", err)
	}
	return nil
}

// printSummary prints the final report with aligned labels
func printSummary(c export.Counters) {
	rows := []struct {
		label string
		value string
	}{
		{"Pages processed", strconv.Itoa(c.Pages)},
		{"Play-counts imported", strconv.Itoa(c.Found)},
		{"Unknown play-counts", strconv.Itoa(c.Unknown)},
	}

	labelWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.label); w > labelWidth {
			labelWidth = w
		}
	}

	for _, row := range rows {
		padding := strings.Repeat(" ", labelWidth-runewidth.StringWidth(row.label))
		fmt.Printf("%s%s  %s\n", row.label, padding, row.value)
	}
}
