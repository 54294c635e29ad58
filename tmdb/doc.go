// Package tmdb provides a read-only client for The Movie Database API.
//
// The client covers the four movie list endpoints (now playing, popular, top
// rated, upcoming) and the movie detail endpoint. Responses are validated into
// MovieSummary and MovieDetail values; anything that does not fit the data
// model is rejected instead of being passed on half-filled.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(apiKey, logger, tmdb.WithTimeout(10*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.FetchCollection(ctx, tmdb.Popular, 1)
//
// # Error Handling
//
// Every failure is a *FetchError whose Kind is one of:
//
//   - KindNetwork: transport failure, timeout or unexpected status
//   - KindNotFound: the movie does not exist
//   - KindMalformedResponse: the payload could not be parsed or validated
//   - KindConfiguration: missing or rejected credential, invalid request
//
// FetchError matches the sentinels with errors.Is:
//
//	if errors.Is(err, tmdb.ErrNotFound) {
//		// show "Movie Not Found"
//	}
//
// The client never retries. A single attempt is made per call.
package tmdb
