package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerate/config"
	"github.com/s0up4200/cinerate/display"
	"github.com/s0up4200/cinerate/filter"
	"github.com/s0up4200/cinerate/radarr"
	"github.com/s0up4200/cinerate/tmdb"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	tmdbClient   *tmdb.Client
	radarrClient *radarr.Client
	compiler     *filter.Compiler
	formatter    = display.NewConsoleFormatter()

	// Command flags
	filterExpr   string
	preset       string
	limit        int
	showOverview bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinerate",
	Short: "Browse movie charts and details from TMDB in the terminal",
	Long: `cinerate shows what is playing now, popular, top rated and upcoming
according to The Movie Database, along with detail pages for single movies.
Lists can be narrowed down with filter expressions, and a Radarr instance can
be queried to show whether a movie is already in your library.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// addFilterFlags registers the flags shared by the list views
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of movies to print per list (0 = all)")
	cmd.Flags().BoolVar(&showOverview, "overview", false, "print each movie's overview")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithUserAgent("cinerate/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	// Create Radarr client if enabled
	if cfg.Radarr.Enabled {
		radarrClient, err = radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.Radarr.Timeout, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library status")
		} else {
			logger.Debug().Str("url", cfg.Radarr.URL).Msg("Radarr integration enabled")
		}
	}

	compiler = filter.NewCompiler(cfg.Filter.Presets, filter.DefaultCacheSize)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// commandContext returns a context cancelled on interrupt
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// resolveFilter picks the filter for list views.
// Priority: command line filter > preset > default expression.
func resolveFilter() (*filter.ExprFilter, error) {
	expression := filterExpr
	if expression == "" && preset == "" {
		expression = cfg.Filter.DefaultExpression
	}

	f, err := compiler.Resolve(expression, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

// formatOptions merges flags over the display config
func formatOptions() display.FormatOptions {
	opts := display.FormatOptions{
		ShowOverview: cfg.Display.ShowOverview,
		Limit:        cfg.Display.Limit,
	}
	if showOverview {
		opts.ShowOverview = true
	}
	if limit > 0 {
		opts.Limit = limit
	}
	return opts
}
