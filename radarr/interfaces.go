package radarr

import (
	"context"

	"golift.io/starr/radarr"
)

// RadarrAPI is the subset of the starr Radarr client used for library lookups.
// Only read calls are listed; nothing here changes the library.
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
}
