// Package radarr looks up whether catalog movies are already part of a Radarr
// library. It is read-only.
package radarr

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// Client wraps the starr Radarr client
type Client struct {
	client RadarrAPI
	logger zerolog.Logger
}

// NewClient creates a new Radarr client
func NewClient(url, apiKey string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("radarr URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("radarr API key is required")
	}

	config := starr.New(apiKey, url, timeout)
	return NewClientWithAPI(radarr.New(config), logger), nil
}

// NewClientWithAPI creates a client around an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		client: api,
		logger: logger,
	}
}

// LibraryStatus describes a movie's presence in the Radarr library
type LibraryStatus struct {
	InLibrary bool
	Monitored bool
	HasFile   bool
	Quality   string
}

// String returns a short human readable summary
func (s LibraryStatus) String() string {
	switch {
	case !s.InLibrary:
		return "Not in library"
	case s.HasFile && s.Quality != "":
		return fmt.Sprintf("Downloaded (%s)", s.Quality)
	case s.HasFile:
		return "Downloaded"
	case s.Monitored:
		return "Monitored, missing"
	default:
		return "In library, unmonitored"
	}
}

// LibraryStatus looks a movie up by its TMDB id
func (c *Client) LibraryStatus(ctx context.Context, tmdbID int) (LibraryStatus, error) {
	movies, err := c.client.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: int64(tmdbID)})
	if err != nil {
		return LibraryStatus{}, fmt.Errorf("failed to look up movie %d in Radarr: %w", tmdbID, err)
	}

	for _, movie := range movies {
		if movie == nil || movie.TmdbID != int64(tmdbID) {
			continue
		}

		status := LibraryStatus{
			InLibrary: true,
			Monitored: movie.Monitored,
			HasFile:   movie.HasFile,
		}
		if movie.MovieFile != nil && movie.MovieFile.Quality != nil && movie.MovieFile.Quality.Quality != nil {
			status.Quality = movie.MovieFile.Quality.Quality.Name
		}

		c.logger.Debug().
			Int("tmdb_id", tmdbID).
			Int64("radarr_id", movie.ID).
			Bool("has_file", status.HasFile).
			Msg("Found movie in Radarr library")
		return status, nil
	}

	return LibraryStatus{}, nil
}
