package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerate/catalog"
	"github.com/s0up4200/cinerate/filter"
	"github.com/s0up4200/cinerate/tmdb"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:       "list <category>",
	Short:     "List the movies of one category",
	Long:      `List now-playing, popular, top-rated or upcoming movies in the order TMDB ranks them.`,
	Example:   `  cinerate list upcoming --filter 'DaysUntil(ReleaseDate) <= 14'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"now-playing", "popular", "top-rated", "upcoming"},
	RunE:      runList,
}

func init() {
	addFilterFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	category, err := tmdb.ParseCategory(args[0])
	if err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	logger.Info().Str("category", category.String()).Msg("Fetching movies")

	controller := catalog.NewCollectionController(ctx, tmdbClient, category, logger)
	defer controller.Close()
	if err := controller.Wait(ctx); err != nil {
		return fmt.Errorf("interrupted while loading %s: %w", category, err)
	}

	fmt.Print(renderCollection(controller, f, time.Now()))
	return nil
}

// renderCollection filters the controller's cards and formats them
func renderCollection(controller *catalog.CollectionController, f *filter.ExprFilter, now time.Time) string {
	state := controller.State()
	cards := controller.Cards(now)
	opts := formatOptions()

	if f != nil && state.Status() == catalog.StatusReady {
		kept := filter.Apply(cards, f, now)
		opts.FilterSummary = "Filter " + filter.Describe(f, len(kept), len(cards))
		logger.Debug().
			Str("category", controller.Category().String()).
			Int("kept", len(kept)).
			Int("total", len(cards)).
			Msg("Applied filter")
		cards = kept
	}

	return formatter.FormatCollection(controller.Category(), state, cards, opts)
}
