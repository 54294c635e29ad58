package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinerate/format"
	"github.com/s0up4200/cinerate/tmdb"
)

// stubCollectionFetcher returns a fixed result
type stubCollectionFetcher struct {
	movies []tmdb.MovieSummary
	err    error

	calls    atomic.Int32
	category tmdb.Category
	page     int
}

func (s *stubCollectionFetcher) FetchCollection(ctx context.Context, category tmdb.Category, page int) ([]tmdb.MovieSummary, error) {
	s.calls.Add(1)
	s.category = category
	s.page = page
	return s.movies, s.err
}

type result struct {
	movies []tmdb.MovieSummary
	movie  *tmdb.MovieDetail
	err    error
}

// blockingFetcher holds every call until the test resolves it. It ignores
// context cancellation so that stale responses really do arrive late.
type blockingFetcher struct {
	mu      sync.Mutex
	pending map[int]chan result
	started chan int
	calls   atomic.Int32
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		pending: make(map[int]chan result),
		started: make(chan int, 16),
	}
}

func (f *blockingFetcher) channel(key int) chan result {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.pending[key]
	if !ok {
		ch = make(chan result, 1)
		f.pending[key] = ch
	}
	return ch
}

func (f *blockingFetcher) resolve(key int, r result) {
	f.channel(key) <- r
}

func (f *blockingFetcher) FetchDetail(ctx context.Context, id int) (*tmdb.MovieDetail, error) {
	ch := f.channel(id)
	f.started <- id
	r := <-ch
	return r.movie, r.err
}

// FetchCollection keys each call by its sequence number, starting at 1
func (f *blockingFetcher) FetchCollection(ctx context.Context, category tmdb.Category, page int) ([]tmdb.MovieSummary, error) {
	key := int(f.calls.Add(1))
	ch := f.channel(key)
	f.started <- key
	r := <-ch
	return r.movies, r.err
}

func summaries(n int) []tmdb.MovieSummary {
	movies := make([]tmdb.MovieSummary, n)
	for i := range movies {
		movies[i] = tmdb.MovieSummary{
			ID:          100 - i,
			Title:       "Movie",
			VoteAverage: 9 - float64(i)*0.5,
			VoteCount:   1000 * (i + 1),
		}
	}
	return movies
}

func detail(id int) *tmdb.MovieDetail {
	return &tmdb.MovieDetail{MovieSummary: tmdb.MovieSummary{ID: id, Title: "Movie"}}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := format.ParseDate(s)
	require.True(t, ok)
	return d
}

func waitFor(t *testing.T, w interface{ Wait(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Wait(ctx))
}

func TestCollectionReadyKeepsOrder(t *testing.T) {
	for _, n := range []int{1, 3, 20} {
		fetcher := &stubCollectionFetcher{movies: summaries(n)}
		c := NewCollectionController(context.Background(), fetcher, tmdb.Popular, zerolog.Nop())
		waitFor(t, c)

		state := c.State()
		require.Equal(t, StatusReady, state.Status())
		movies, ok := state.Payload()
		require.True(t, ok)
		require.Len(t, movies, n)
		for i, m := range movies {
			assert.Equal(t, 100-i, m.ID)
		}
		assert.Nil(t, state.Err())

		assert.Equal(t, tmdb.Popular, fetcher.category)
		assert.Equal(t, 1, fetcher.page)
	}
}

func TestCollectionEmpty(t *testing.T) {
	fetcher := &stubCollectionFetcher{movies: []tmdb.MovieSummary{}}
	c := NewCollectionController(context.Background(), fetcher, tmdb.Upcoming, zerolog.Nop())
	waitFor(t, c)

	state := c.State()
	assert.Equal(t, StatusEmpty, state.Status())
	_, ok := state.Payload()
	assert.False(t, ok)
	assert.Nil(t, c.Cards(time.Now()))
}

func TestCollectionNetworkFailure(t *testing.T) {
	fetchErr := &tmdb.FetchError{Kind: tmdb.KindNetwork, Op: "fetch popular", Err: errors.New("connection refused")}
	fetcher := &stubCollectionFetcher{movies: summaries(2), err: fetchErr}

	c := NewCollectionController(context.Background(), fetcher, tmdb.Popular, zerolog.Nop())
	waitFor(t, c)

	state := c.State()
	require.Equal(t, StatusFailed, state.Status())
	_, ok := state.Payload()
	assert.False(t, ok, "failed state must not expose data")
	assert.Nil(t, c.Cards(time.Now()))

	kind, ok := state.ErrorKind()
	require.True(t, ok)
	assert.Equal(t, tmdb.KindNetwork, kind)
	assert.Contains(t, state.Reason(), "connection refused")

	// no automatic retry
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestCollectionRefreshAfterFailure(t *testing.T) {
	fetcher := &stubCollectionFetcher{err: &tmdb.FetchError{Kind: tmdb.KindNetwork}}
	c := NewCollectionController(context.Background(), fetcher, tmdb.TopRated, zerolog.Nop())
	waitFor(t, c)
	require.Equal(t, StatusFailed, c.State().Status())

	fetcher.err = nil
	fetcher.movies = summaries(4)
	c.Refresh()
	waitFor(t, c)

	assert.Equal(t, StatusReady, c.State().Status())
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestCollectionStartsLoading(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewCollectionController(context.Background(), fetcher, tmdb.NowPlaying, zerolog.Nop())

	key := <-fetcher.started
	assert.Equal(t, StatusLoading, c.State().Status())

	fetcher.resolve(key, result{movies: summaries(2)})
	waitFor(t, c)
	assert.Equal(t, StatusReady, c.State().Status())
}

func TestCollectionRefreshDiscardsStale(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewCollectionController(context.Background(), fetcher, tmdb.Popular, zerolog.Nop())
	first := <-fetcher.started

	c.Refresh()
	second := <-fetcher.started
	fetcher.resolve(second, result{movies: summaries(5)})
	waitFor(t, c)

	fetcher.resolve(first, result{movies: summaries(1)})
	c.loader.wg.Wait()

	movies, ok := c.State().Payload()
	require.True(t, ok)
	assert.Len(t, movies, 5)
}

func TestCollectionClose(t *testing.T) {
	fetcher := newBlockingFetcher()
	c := NewCollectionController(context.Background(), fetcher, tmdb.Popular, zerolog.Nop())
	key := <-fetcher.started

	c.Close()
	fetcher.resolve(key, result{movies: summaries(3)})
	c.loader.wg.Wait()

	assert.Equal(t, StatusLoading, c.State().Status())
}

func TestCardsBadges(t *testing.T) {
	now := day(t, "2024-01-10")

	t.Run("popular ranks every movie", func(t *testing.T) {
		c := NewCollectionController(context.Background(), &stubCollectionFetcher{movies: summaries(4)}, tmdb.Popular, zerolog.Nop())
		waitFor(t, c)

		cards := c.Cards(now)
		require.Len(t, cards, 4)
		for i, card := range cards {
			assert.Equal(t, i+1, card.Rank)
		}
		assert.Equal(t, "#1", cards[0].Badge)
		assert.Equal(t, "#4", cards[3].Badge)
	})

	t.Run("top rated badges first three", func(t *testing.T) {
		c := NewCollectionController(context.Background(), &stubCollectionFetcher{movies: summaries(5)}, tmdb.TopRated, zerolog.Nop())
		waitFor(t, c)

		cards := c.Cards(now)
		assert.Equal(t, "Top 1", cards[0].Badge)
		assert.Equal(t, "Top 3", cards[2].Badge)
		assert.Empty(t, cards[3].Badge)
		assert.Equal(t, format.TierHigh, cards[0].Tier)
		assert.Equal(t, "9.0", cards[0].Rating)
		assert.Equal(t, "1,000 votes", cards[0].Votes)
	})

	t.Run("upcoming counts down from now", func(t *testing.T) {
		movies := []tmdb.MovieSummary{
			{ID: 1, Title: "A", ReleaseDate: day(t, "2024-01-10"), PosterPath: "/a.jpg"},
			{ID: 2, Title: "B", ReleaseDate: day(t, "2024-01-11")},
			{ID: 3, Title: "C", ReleaseDate: day(t, "2024-02-01")},
			{ID: 4, Title: "D"},
		}
		c := NewCollectionController(context.Background(), &stubCollectionFetcher{movies: movies}, tmdb.Upcoming, zerolog.Nop())
		waitFor(t, c)

		cards := c.Cards(now)
		assert.Equal(t, "Today!", cards[0].Badge)
		assert.Equal(t, "Tomorrow", cards[1].Badge)
		assert.Equal(t, "22 days", cards[2].Badge)
		assert.Equal(t, format.WindowThisMonth, cards[2].Window)
		assert.Equal(t, "Coming Soon", cards[3].Badge)
		assert.Nil(t, cards[3].Countdown)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", cards[0].PosterURL)
		assert.Equal(t, "Jan 10, 2024", cards[0].ReleaseDate)

		// labels are recomputed on every read
		later := c.Cards(day(t, "2024-01-31"))
		assert.Equal(t, "Released", later[0].Badge)
		assert.Equal(t, "Tomorrow", later[2].Badge)
	})
}

func TestDetailReady(t *testing.T) {
	fetcher := newBlockingFetcher()
	d := NewDetailController(fetcher, zerolog.Nop())
	assert.Equal(t, OutcomeLoading, d.Outcome())

	d.Load(context.Background(), 7)
	assert.Equal(t, 7, <-fetcher.started)
	assert.Equal(t, StatusLoading, d.State().Status())

	fetcher.resolve(7, result{movie: detail(7)})
	waitFor(t, d)

	assert.Equal(t, StatusReady, d.State().Status())
	assert.Equal(t, OutcomeFound, d.Outcome())
	assert.Equal(t, 7, d.ID())
}

func TestDetailNotFoundIsEmpty(t *testing.T) {
	fetcher := newBlockingFetcher()
	d := NewDetailController(fetcher, zerolog.Nop())

	d.Load(context.Background(), 404)
	<-fetcher.started
	fetcher.resolve(404, result{err: &tmdb.FetchError{Kind: tmdb.KindNotFound, StatusCode: 404}})
	waitFor(t, d)

	assert.Equal(t, StatusEmpty, d.State().Status())
	assert.Nil(t, d.State().Err())
	assert.Equal(t, OutcomeNotFound, d.Outcome())
}

func TestDetailFailureCollapsesToNotFound(t *testing.T) {
	fetcher := newBlockingFetcher()
	d := NewDetailController(fetcher, zerolog.Nop())

	d.Load(context.Background(), 1)
	<-fetcher.started
	fetcher.resolve(1, result{err: &tmdb.FetchError{Kind: tmdb.KindMalformedResponse}})
	waitFor(t, d)

	assert.Equal(t, StatusFailed, d.State().Status())
	assert.Equal(t, OutcomeNotFound, d.Outcome())
	kind, _ := d.State().ErrorKind()
	assert.Equal(t, tmdb.KindMalformedResponse, kind)

	_, ok := d.View(time.Now())
	assert.False(t, ok)
}

func TestDetailLastKeyWins(t *testing.T) {
	fetcher := newBlockingFetcher()
	d := NewDetailController(fetcher, zerolog.Nop())
	ctx := context.Background()

	d.Load(ctx, 1)
	require.Equal(t, 1, <-fetcher.started)

	d.Load(ctx, 2)
	require.Equal(t, 2, <-fetcher.started)
	assert.Equal(t, StatusLoading, d.State().Status())

	fetcher.resolve(2, result{movie: detail(2)})
	waitFor(t, d)

	// the old request resolves after the new one
	fetcher.resolve(1, result{movie: detail(1)})
	d.loader.wg.Wait()

	movie, ok := d.State().Payload()
	require.True(t, ok)
	assert.Equal(t, 2, movie.ID)
	assert.Equal(t, 2, d.ID())
}

func TestDetailLastKeyWinsOverFailure(t *testing.T) {
	fetcher := newBlockingFetcher()
	d := NewDetailController(fetcher, zerolog.Nop())
	ctx := context.Background()

	d.Load(ctx, 1)
	<-fetcher.started
	d.Load(ctx, 2)
	<-fetcher.started

	// old one fails first, new one is still pending
	fetcher.resolve(1, result{err: &tmdb.FetchError{Kind: tmdb.KindNetwork}})
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StatusLoading, d.State().Status())

	fetcher.resolve(2, result{err: &tmdb.FetchError{Kind: tmdb.KindNotFound}})
	waitFor(t, d)
	d.loader.wg.Wait()

	assert.Equal(t, StatusEmpty, d.State().Status())
}

func TestDetailView(t *testing.T) {
	released := day(t, "2010-07-15")
	movie := &tmdb.MovieDetail{
		MovieSummary: tmdb.MovieSummary{
			ID:          27205,
			Title:       "Inception",
			PosterPath:  "/inc.jpg",
			VoteAverage: 8.37,
			VoteCount:   35123,
			ReleaseDate: released,
		},
		BackdropPath:        "/back.jpg",
		Runtime:             148,
		Status:              "Released",
		Budget:              160000000,
		Revenue:             839030630,
		Genres:              []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		OriginalLanguage:    "en",
		ProductionCompanies: []tmdb.Company{{Name: "Legendary Pictures"}, {Name: "Syncopy"}},
	}

	view := newDetailView(movie, day(t, "2024-01-10"))

	assert.Equal(t, "July 15, 2010", view.ReleaseDate)
	assert.Equal(t, "148 minutes", view.Runtime)
	assert.Equal(t, "$839,030,630", view.Revenue)
	assert.Equal(t, "$160,000,000", view.Budget)
	assert.Equal(t, "8.4/10 (35,123 votes)", view.Rating)
	assert.Equal(t, format.TierHigh, view.Tier)
	assert.Equal(t, []string{"Action", "Science Fiction"}, view.Genres)
	assert.Equal(t, "EN", view.Language)
	assert.Equal(t, "Legendary Pictures", view.Production)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/back.jpg", view.BackdropURL)
	assert.Nil(t, view.Countdown)
}

func TestDetailViewMissingAmounts(t *testing.T) {
	movie := &tmdb.MovieDetail{MovieSummary: tmdb.MovieSummary{ID: 1, Title: "Indie"}}

	view := newDetailView(movie, time.Now())

	assert.Equal(t, "Not available", view.Revenue)
	assert.Empty(t, view.Budget)
	assert.Empty(t, view.Rating)
	assert.Empty(t, view.Production)
	assert.Equal(t, "Unknown", view.ReleaseDate)
}

func TestMoneyBranchesBeforeFormatting(t *testing.T) {
	assert.Equal(t, "Not available", money(0))
	assert.Equal(t, "$1,000,000", money(1000000))
}

func TestFailedAlwaysHasReason(t *testing.T) {
	s := Failed[int](nil)
	assert.Equal(t, StatusFailed, s.Status())
	assert.NotEmpty(t, s.Reason())

	r := Ready(5)
	_, ok := r.ErrorKind()
	assert.False(t, ok)
	assert.True(t, r.Status().Terminal())
	assert.False(t, Loading[int]().Status().Terminal())
}
