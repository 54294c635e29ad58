package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerate/catalog"
	"github.com/s0up4200/cinerate/radarr"
)

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id> [<id>...]",
	Short: "Show the details of a movie",
	Long: `Show the details of a movie by its TMDB id. When several ids are given
each one replaces the previous request and only the last is shown.`,
	Example: `  cinerate movie 27205`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runMovie,
}

func runMovie(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid movie id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	controller := catalog.NewDetailController(tmdbClient, logger)
	defer controller.Close()

	for _, id := range ids {
		controller.Load(ctx, id)
	}
	if err := controller.Wait(ctx); err != nil {
		return fmt.Errorf("interrupted while loading movie %d: %w", controller.ID(), err)
	}

	if state := controller.State(); state.Status() == catalog.StatusFailed {
		logger.Debug().Err(state.Err()).Int("movie_id", controller.ID()).Msg("Movie could not be loaded")
	}

	view, _ := controller.View(time.Now())

	var library *radarr.LibraryStatus
	if radarrClient != nil && controller.Outcome() == catalog.OutcomeFound {
		status, err := radarrClient.LibraryStatus(ctx, view.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to get Radarr library status")
		} else {
			library = &status
		}
	}

	fmt.Print(formatter.FormatDetail(controller.Outcome(), view, library))
	return nil
}
