// Package catalog drives the fetch-render cycle of each view: it owns the
// FetchState of a collection or detail view and builds view models from it.
package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinerate/tmdb"
)

// CollectionFetcher retrieves a page of a movie category
type CollectionFetcher interface {
	FetchCollection(ctx context.Context, category tmdb.Category, page int) ([]tmdb.MovieSummary, error)
}

// CollectionController owns the state of one list view
type CollectionController struct {
	fetcher  CollectionFetcher
	category tmdb.Category
	ctx      context.Context
	loader   *loader[[]tmdb.MovieSummary]
	logger   zerolog.Logger
}

// NewCollectionController creates a controller and immediately starts fetching
// the first page of category. ctx bounds every cycle the controller runs.
func NewCollectionController(ctx context.Context, fetcher CollectionFetcher, category tmdb.Category, logger zerolog.Logger) *CollectionController {
	logger = logger.With().Str("category", category.String()).Logger()

	c := &CollectionController{
		fetcher:  fetcher,
		category: category,
		ctx:      ctx,
		loader:   newLoader[[]tmdb.MovieSummary](logger),
		logger:   logger,
	}
	c.Refresh()
	return c
}

// Category returns the category this controller lists
func (c *CollectionController) Category() tmdb.Category {
	return c.category
}

// Refresh starts a new fetch cycle. It is never called automatically after a
// failure.
func (c *CollectionController) Refresh() {
	c.loader.start(c.ctx, c.category.String(), c.fetch)
}

func (c *CollectionController) fetch(ctx context.Context) State[[]tmdb.MovieSummary] {
	movies, err := c.fetcher.FetchCollection(ctx, c.category, 1)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to fetch movies")
		return Failed[[]tmdb.MovieSummary](err)
	}
	if len(movies) == 0 {
		return Empty[[]tmdb.MovieSummary]()
	}

	items := make([]tmdb.MovieSummary, len(movies))
	copy(items, movies)
	return Ready(items)
}

// State returns the current state
func (c *CollectionController) State() State[[]tmdb.MovieSummary] {
	return c.loader.current()
}

// Wait blocks until the current fetch cycle has finished
func (c *CollectionController) Wait(ctx context.Context) error {
	return c.loader.wait(ctx)
}

// Close cancels any in-flight fetch
func (c *CollectionController) Close() {
	c.loader.stop()
}

// Cards builds the view models of the current payload, evaluated at now. It
// returns nil unless the state is Ready.
func (c *CollectionController) Cards(now time.Time) []MovieCard {
	movies, ok := c.State().Payload()
	if !ok {
		return nil
	}

	cards := make([]MovieCard, len(movies))
	for i, m := range movies {
		cards[i] = newCard(c.category, i+1, m, now)
	}
	return cards
}
