package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds each request when no timeout is configured
	DefaultTimeout = 15 * time.Second

	maxBodySize = 4 << 20
)

// Client fetches movie collections and details from TMDB. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client. A missing credential is reported as a
// configuration error rather than sending unauthenticated requests.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, newError(KindConfiguration, "new client", errors.New("TMDB API key is required"))
	}

	client := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		userAgent:  "cinerate",
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// FetchCollection retrieves one page of movies for a category, in the order
// the service returns them.
func (c *Client) FetchCollection(ctx context.Context, category Category, page int) ([]MovieSummary, error) {
	op := "fetch " + category.String()

	endpoint := category.path()
	if endpoint == "" {
		return nil, newError(KindConfiguration, op, fmt.Errorf("unknown category %d", int(category)))
	}
	if page < 1 {
		return nil, newError(KindConfiguration, op, fmt.Errorf("page must be >= 1, got %d", page))
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, op, endpoint, params)
	if err != nil {
		return nil, err
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, newError(KindMalformedResponse, op, fmt.Errorf("failed to parse response: %w", err))
	}
	if response.Results == nil {
		return nil, newError(KindMalformedResponse, op, errors.New("missing results"))
	}

	movies := make([]MovieSummary, 0, len(*response.Results))
	for i := range *response.Results {
		movie, err := (*response.Results)[i].summary()
		if err != nil {
			return nil, newError(KindMalformedResponse, op, fmt.Errorf("result %d: %w", i, err))
		}
		movies = append(movies, movie)
	}

	c.logger.Debug().
		Str("category", category.String()).
		Int("page", page).
		Int("count", len(movies)).
		Int("total_results", response.TotalResults).
		Msg("Retrieved movies from TMDB")

	return movies, nil
}

// FetchDetail retrieves the full record of a single movie
func (c *Client) FetchDetail(ctx context.Context, id int) (*MovieDetail, error) {
	op := fmt.Sprintf("fetch movie %d", id)
	if id <= 0 {
		return nil, newError(KindNotFound, op, fmt.Errorf("invalid movie id %d", id))
	}

	body, err := c.doRequest(ctx, op, "/movie/"+strconv.Itoa(id), url.Values{})
	if err != nil {
		return nil, err
	}

	var raw movieJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newError(KindMalformedResponse, op, fmt.Errorf("failed to parse response: %w", err))
	}

	movie, err := raw.detail()
	if err != nil {
		return nil, newError(KindMalformedResponse, op, err)
	}

	c.logger.Debug().Int("movie_id", id).Str("title", movie.Title).Msg("Retrieved movie from TMDB")
	return movie, nil
}

// doRequest performs a single authenticated GET and returns the body of a 200
// response. Every failure comes back as a *FetchError.
func (c *Client) doRequest(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	bearer := isAccessToken(c.apiKey)
	if !bearer {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}

	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, newError(KindConfiguration, op, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", c.redact(requestURL)).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, op, fmt.Errorf("request failed: %s", c.redact(err.Error())))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newError(KindNetwork, op, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	fe := &FetchError{Kind: KindNetwork, Op: op, StatusCode: resp.StatusCode}

	var status statusResponse
	if json.Unmarshal(body, &status) == nil && status.StatusMessage != "" {
		fe.Err = errors.New(status.StatusMessage)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || status.StatusCode == statusResourceNotFound:
		fe.Kind = KindNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		fe.Kind = KindConfiguration
	}

	return nil, fe
}

// redact removes the credential from URLs and transport errors before they
// reach logs or error messages
func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}

// isAccessToken reports whether the credential is a v4 read access token (a
// JWT) rather than a v3 API key
func isAccessToken(credential string) bool {
	return strings.HasPrefix(credential, "eyJ") && strings.Count(credential, ".") == 2
}
