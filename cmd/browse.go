package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinerate/catalog"
	"github.com/s0up4200/cinerate/tmdb"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Show every category at once",
	Long: `Fetch now-playing, popular, top-rated and upcoming movies concurrently
and print them one after another. A category that fails to load does not
prevent the others from being shown.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addFilterFlags(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	categories := tmdb.Categories()
	controllers := make([]*catalog.CollectionController, len(categories))

	// Controllers turn fetch errors into Failed states, so the group only
	// fails when the command itself is interrupted.
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		controller := catalog.NewCollectionController(ctx, tmdbClient, category, logger)
		controllers[i] = controller
		g.Go(func() error {
			return controller.Wait(gctx)
		})
	}

	defer func() {
		for _, c := range controllers {
			c.Close()
		}
	}()

	if err := g.Wait(); err != nil {
		return fmt.Errorf("interrupted while loading movies: %w", err)
	}

	now := time.Now()
	var sb strings.Builder
	var failed int
	for _, controller := range controllers {
		if controller.State().Status() == catalog.StatusFailed {
			failed++
		}
		sb.WriteString(renderCollection(controller, f, now))
	}
	fmt.Print(sb.String())

	if failed > 0 {
		logger.Warn().Int("failed", failed).Int("total", len(controllers)).Msg("Some categories could not be loaded")
	}
	return nil
}
