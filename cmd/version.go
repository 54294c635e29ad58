package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerate/config"
)

const repositorySlug = "s0up4200/cinerate"

var (
	version   = "dev"
	buildTime = "unknown"

	checkLatest bool
)

// SetVersion records build information injected by the linker
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeStandalone,
	RunE:              runVersion,
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update cinerate to the latest release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeStandalone,
	RunE:              runUpdate,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
}

// initializeStandalone sets up logging for commands that need no TMDB access
func initializeStandalone(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("cinerate %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)

	if !checkLatest {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	latest, newer, err := latestRelease(ctx, logger)
	if err != nil {
		return err
	}
	if newer {
		fmt.Printf("A newer version is available: %s (run 'cinerate update')\n", latest.Version())
	} else {
		fmt.Println("You are running the latest version.")
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	latest, newer, err := latestRelease(ctx, logger)
	if err != nil {
		return err
	}
	if !newer {
		fmt.Printf("Already up to date (%s)\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Str("asset", latest.AssetName).Msg("Downloading update")
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("Updated to %s\n", latest.Version())
	return nil
}

// latestRelease looks up the newest GitHub release and whether it is newer
// than the running build. Development builds cannot be compared.
func latestRelease(ctx context.Context, logger zerolog.Logger) (*selfupdate.Release, bool, error) {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return nil, false, fmt.Errorf("cannot compare development build %q with releases: %w", version, err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, false, errors.New("no release found for " + runtime.GOOS + "/" + runtime.GOARCH)
	}

	logger.Debug().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Msg("Checked latest release")

	return latest, !latest.LessOrEqual(current.String()), nil
}
