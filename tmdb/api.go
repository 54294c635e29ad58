package tmdb

import (
	"context"
)

// API defines the interface for TMDB catalog reads
type API interface {
	// FetchCollection retrieves one page of a category
	FetchCollection(ctx context.Context, category Category, page int) ([]MovieSummary, error)

	// FetchDetail retrieves a single movie by id
	FetchDetail(ctx context.Context, id int) (*MovieDetail, error)
}

var _ API = (*Client)(nil)
