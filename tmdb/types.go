package tmdb

import (
	"fmt"
	"time"

	"github.com/s0up4200/cinerate/format"
)

// Category is one of the fixed collection endpoints
type Category int

const (
	// NowPlaying lists movies currently in theaters
	NowPlaying Category = iota
	// Popular lists trending movies
	Popular
	// TopRated lists the highest rated movies
	TopRated
	// Upcoming lists movies releasing soon
	Upcoming
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{NowPlaying, Popular, TopRated, Upcoming}
}

// String returns the CLI name of the category
func (c Category) String() string {
	switch c {
	case NowPlaying:
		return "now-playing"
	case Popular:
		return "popular"
	case TopRated:
		return "top-rated"
	case Upcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

// Title returns the human readable section title
func (c Category) Title() string {
	switch c {
	case NowPlaying:
		return "Now Playing"
	case Popular:
		return "Popular Movies"
	case TopRated:
		return "Top Rated Movies"
	case Upcoming:
		return "Upcoming Movies"
	default:
		return "Movies"
	}
}

func (c Category) path() string {
	switch c {
	case NowPlaying:
		return "/movie/now_playing"
	case Popular:
		return "/movie/popular"
	case TopRated:
		return "/movie/top_rated"
	case Upcoming:
		return "/movie/upcoming"
	default:
		return ""
	}
}

// ParseCategory parses a category name as accepted on the command line
func ParseCategory(s string) (Category, error) {
	switch s {
	case "now-playing", "now_playing", "nowplaying":
		return NowPlaying, nil
	case "popular":
		return Popular, nil
	case "top-rated", "top_rated", "toprated":
		return TopRated, nil
	case "upcoming":
		return Upcoming, nil
	default:
		return 0, fmt.Errorf("unknown category %q (want now-playing, popular, top-rated or upcoming)", s)
	}
}

// MovieSummary is a movie as returned by the list endpoints
type MovieSummary struct {
	ID            int
	Title         string
	OriginalTitle string
	Overview      string
	PosterPath    string
	VoteAverage   float64
	VoteCount     int
	Popularity    float64
	ReleaseDate   time.Time
}

// Genre is a named genre
type Genre struct {
	ID   int
	Name string
}

// Company is a production company
type Company struct {
	Name string
}

// MovieDetail is the full record returned by the detail endpoint
type MovieDetail struct {
	MovieSummary

	BackdropPath        string
	Tagline             string
	Runtime             int
	Status              string
	Budget              int64
	Revenue             int64
	Genres              []Genre
	OriginalLanguage    string
	ProductionCompanies []Company
}

// movieJSON is the wire shape shared by list results and detail responses
type movieJSON struct {
	ID            *int     `json:"id"`
	Title         *string  `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	PosterPath    *string  `json:"poster_path"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	ReleaseDate   string   `json:"release_date"`
	BackdropPath  *string  `json:"backdrop_path"`
	Tagline       string   `json:"tagline"`
	Runtime       *int     `json:"runtime"`
	Status        string   `json:"status"`
	Budget        int64    `json:"budget"`
	Revenue       int64    `json:"revenue"`
	Genres        []genre  `json:"genres"`
	Language      string   `json:"original_language"`
	Companies     []struct {
		Name string `json:"name"`
	} `json:"production_companies"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// listResponse is the paginated envelope of collection endpoints
type listResponse struct {
	Page         int          `json:"page"`
	Results      *[]movieJSON `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// statusResponse is the body TMDB sends alongside error statuses
type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success"`
}

// tmdb status_code for "The resource you requested could not be found."
const statusResourceNotFound = 34

func (m *movieJSON) summary() (MovieSummary, error) {
	if m.ID == nil || *m.ID <= 0 {
		return MovieSummary{}, fmt.Errorf("missing id")
	}
	if m.Title == nil {
		return MovieSummary{}, fmt.Errorf("movie %d: missing title", *m.ID)
	}
	if m.VoteAverage < 0 || m.VoteAverage > 10 {
		return MovieSummary{}, fmt.Errorf("movie %d: vote_average %v out of range", *m.ID, m.VoteAverage)
	}
	if m.VoteCount < 0 {
		return MovieSummary{}, fmt.Errorf("movie %d: negative vote_count", *m.ID)
	}

	released, ok := format.ParseDate(m.ReleaseDate)
	if !ok {
		return MovieSummary{}, fmt.Errorf("movie %d: invalid release_date %q", *m.ID, m.ReleaseDate)
	}

	s := MovieSummary{
		ID:            *m.ID,
		Title:         *m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		VoteAverage:   m.VoteAverage,
		VoteCount:     m.VoteCount,
		Popularity:    m.Popularity,
		ReleaseDate:   released,
	}
	if m.PosterPath != nil {
		s.PosterPath = *m.PosterPath
	}
	return s, nil
}

func (m *movieJSON) detail() (*MovieDetail, error) {
	summary, err := m.summary()
	if err != nil {
		return nil, err
	}
	if m.Budget < 0 || m.Revenue < 0 {
		return nil, fmt.Errorf("movie %d: negative budget or revenue", summary.ID)
	}

	d := &MovieDetail{
		MovieSummary:     summary,
		Tagline:          m.Tagline,
		Status:           m.Status,
		Budget:           m.Budget,
		Revenue:          m.Revenue,
		OriginalLanguage: m.Language,
		Genres:           make([]Genre, 0, len(m.Genres)),
	}
	if m.BackdropPath != nil {
		d.BackdropPath = *m.BackdropPath
	}
	if m.Runtime != nil {
		if *m.Runtime < 0 {
			return nil, fmt.Errorf("movie %d: negative runtime", summary.ID)
		}
		d.Runtime = *m.Runtime
	}

	seen := make(map[int]bool, len(m.Genres))
	for _, g := range m.Genres {
		if seen[g.ID] {
			return nil, fmt.Errorf("movie %d: duplicate genre id %d", summary.ID, g.ID)
		}
		seen[g.ID] = true
		d.Genres = append(d.Genres, Genre{ID: g.ID, Name: g.Name})
	}

	for _, c := range m.Companies {
		d.ProductionCompanies = append(d.ProductionCompanies, Company{Name: c.Name})
	}

	return d, nil
}
