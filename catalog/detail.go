package catalog

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinerate/tmdb"
)

// DetailFetcher retrieves a single movie
type DetailFetcher interface {
	FetchDetail(ctx context.Context, id int) (*tmdb.MovieDetail, error)
}

// Outcome is how a detail view presents its state
type Outcome int

const (
	// OutcomeLoading means the view shows a placeholder
	OutcomeLoading Outcome = iota
	// OutcomeFound means the movie is available
	OutcomeFound
	// OutcomeNotFound covers both a missing movie and a failed fetch
	OutcomeNotFound
)

// DetailController owns the state of one detail view, keyed by movie id
type DetailController struct {
	fetcher DetailFetcher
	loader  *loader[*tmdb.MovieDetail]
	logger  zerolog.Logger

	mu sync.RWMutex
	id int
}

// NewDetailController creates an idle controller. Call Load to start a cycle.
func NewDetailController(fetcher DetailFetcher, logger zerolog.Logger) *DetailController {
	return &DetailController{
		fetcher: fetcher,
		loader:  newLoader[*tmdb.MovieDetail](logger),
		logger:  logger,
	}
}

// Load starts a fetch cycle for id. Any cycle still running for a previous id
// is cancelled and its result is ignored.
func (d *DetailController) Load(ctx context.Context, id int) {
	d.mu.Lock()
	d.id = id
	d.mu.Unlock()

	d.loader.start(ctx, strconv.Itoa(id), func(ctx context.Context) State[*tmdb.MovieDetail] {
		return d.fetch(ctx, id)
	})
}

func (d *DetailController) fetch(ctx context.Context, id int) State[*tmdb.MovieDetail] {
	movie, err := d.fetcher.FetchDetail(ctx, id)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		d.logger.Info().Int("movie_id", id).Msg("Movie not found")
		return Empty[*tmdb.MovieDetail]()
	case err != nil:
		d.logger.Warn().Err(err).Int("movie_id", id).Msg("Failed to fetch movie")
		return Failed[*tmdb.MovieDetail](err)
	case movie == nil:
		return Empty[*tmdb.MovieDetail]()
	default:
		return Ready(movie)
	}
}

// ID returns the most recently requested movie id
func (d *DetailController) ID() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.id
}

// State returns the current state. Empty means the service reported no such
// movie; Failed means the fetch itself went wrong.
func (d *DetailController) State() State[*tmdb.MovieDetail] {
	return d.loader.current()
}

// Outcome collapses Empty and Failed into OutcomeNotFound for presentation
func (d *DetailController) Outcome() Outcome {
	switch d.State().Status() {
	case StatusReady:
		return OutcomeFound
	case StatusEmpty, StatusFailed:
		return OutcomeNotFound
	default:
		return OutcomeLoading
	}
}

// Wait blocks until the latest fetch cycle has finished
func (d *DetailController) Wait(ctx context.Context) error {
	return d.loader.wait(ctx)
}

// Close cancels any in-flight fetch
func (d *DetailController) Close() {
	d.loader.stop()
}

// View builds the detail view model, evaluated at now. ok is false unless the
// state is Ready.
func (d *DetailController) View(now time.Time) (view MovieDetailView, ok bool) {
	movie, ok := d.State().Payload()
	if !ok || movie == nil {
		return MovieDetailView{}, false
	}
	return newDetailView(movie, now), true
}
