package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/s0up4200/cinerate/format"
	"github.com/s0up4200/cinerate/tmdb"
)

const (
	notAvailable = "Not available"
	topBadges    = 3
)

// MovieCard is the list-view model of one movie
type MovieCard struct {
	ID          int
	Rank        int
	Title       string
	Overview    string
	PosterURL   string
	ReleaseDate string
	Released    time.Time
	Rating      string
	VoteAverage float64
	VoteCount   int
	Votes       string
	Tier        format.Tier
	Badge       string

	// Set for upcoming movies only
	Countdown *format.Countdown
	Window    format.Window
}

// HasRating reports whether the movie has been rated at all
func (c MovieCard) HasRating() bool {
	return c.VoteAverage > 0
}

func newCard(category tmdb.Category, rank int, m tmdb.MovieSummary, now time.Time) MovieCard {
	card := MovieCard{
		ID:          m.ID,
		Rank:        rank,
		Title:       displayTitle(m),
		Overview:    m.Overview,
		PosterURL:   tmdb.ImageURL(tmdb.PosterSize, m.PosterPath),
		ReleaseDate: format.ShortDate(m.ReleaseDate),
		Released:    m.ReleaseDate,
		Rating:      format.Rating(m.VoteAverage),
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Votes:       format.Count(m.VoteCount) + " votes",
		Tier:        format.ClassifyRating(m.VoteAverage),
	}

	switch category {
	case tmdb.Popular:
		card.Badge = fmt.Sprintf("#%d", rank)
	case tmdb.TopRated:
		if rank <= topBadges {
			card.Badge = fmt.Sprintf("Top %d", rank)
		}
	case tmdb.Upcoming:
		if !m.ReleaseDate.IsZero() {
			countdown := format.DaysUntilRelease(m.ReleaseDate, now)
			card.Countdown = &countdown
			card.Window = format.ReleaseWindow(countdown)
			card.Badge = countdown.String()
		} else {
			card.Badge = "Coming Soon"
		}
	}

	return card
}

// MovieDetailView is the detail-view model of one movie
type MovieDetailView struct {
	ID          int
	Title       string
	Tagline     string
	Overview    string
	PosterURL   string
	BackdropURL string
	ReleaseDate string
	Runtime     string
	Status      string
	Revenue     string
	// Budget is empty when the budget is unknown; the view hides the row
	Budget string
	// Rating is empty when the movie has no votes; the view hides the row
	Rating     string
	Tier       format.Tier
	Genres     []string
	Language   string
	Production string
	Countdown  *format.Countdown
}

func newDetailView(m *tmdb.MovieDetail, now time.Time) MovieDetailView {
	view := MovieDetailView{
		ID:          m.ID,
		Title:       displayTitle(m.MovieSummary),
		Tagline:     m.Tagline,
		Overview:    m.Overview,
		PosterURL:   tmdb.ImageURL(tmdb.PosterSize, m.PosterPath),
		BackdropURL: tmdb.ImageURL(tmdb.BackdropSize, m.BackdropPath),
		ReleaseDate: format.LongDate(m.ReleaseDate),
		Runtime:     format.Runtime(m.Runtime),
		Status:      m.Status,
		Revenue:     money(m.Revenue),
		Tier:        format.ClassifyRating(m.VoteAverage),
		Genres:      make([]string, 0, len(m.Genres)),
		Language:    strings.ToUpper(m.OriginalLanguage),
	}

	if m.Budget > 0 {
		view.Budget = format.Currency(float64(m.Budget))
	}
	if m.VoteAverage > 0 {
		view.Rating = fmt.Sprintf("%s/10 (%s votes)", format.Rating(m.VoteAverage), format.Count(m.VoteCount))
	}
	for _, g := range m.Genres {
		view.Genres = append(view.Genres, g.Name)
	}
	if len(m.ProductionCompanies) > 0 {
		view.Production = m.ProductionCompanies[0].Name
	}
	if !m.ReleaseDate.IsZero() {
		countdown := format.DaysUntilRelease(m.ReleaseDate, now)
		if countdown.Kind != format.CountdownReleased {
			view.Countdown = &countdown
		}
	}

	return view
}

// money formats an amount, or reports it as unavailable when zero
func money(amount int64) string {
	if amount <= 0 {
		return notAvailable
	}
	return format.Currency(float64(amount))
}

// displayTitle uses the localized title and falls back to the original one
func displayTitle(m tmdb.MovieSummary) string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalTitle
}
