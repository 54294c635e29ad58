// Package display renders catalog state and view models for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinerate/catalog"
	"github.com/s0up4200/cinerate/radarr"
	"github.com/s0up4200/cinerate/tmdb"
)

const (
	branch     = "├── "
	lastBranch = "╰── "
	pipe       = "│   "
	blank      = "    "

	// NotFoundMessage is shown for a detail view that is missing or failed
	NotFoundMessage = "Movie Not Found"
)

// FormatOptions controls how much is printed per movie
type FormatOptions struct {
	ShowOverview bool
	// Limit caps the number of cards printed; zero prints all
	Limit int
	// FilterSummary is printed under the header when a filter is active
	FilterSummary string
}

// ConsoleFormatter provides console output formatting for catalog views
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// EmptyMessage is the placeholder for a category with no movies
func EmptyMessage(category tmdb.Category) string {
	switch category {
	case tmdb.NowPlaying:
		return "No movies are playing in theaters right now."
	case tmdb.Popular:
		return "No popular movies to show."
	case tmdb.TopRated:
		return "No top rated movies to show."
	case tmdb.Upcoming:
		return "No upcoming releases have been announced."
	default:
		return "No movies found."
	}
}

// FormatCollection formats one category. cards are the already filtered view
// models of a Ready state and are ignored otherwise.
func (f *ConsoleFormatter) FormatCollection(category tmdb.Category, state catalog.State[[]tmdb.MovieSummary], cards []catalog.MovieCard, options FormatOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", category.Title())

	switch state.Status() {
	case catalog.StatusLoading:
		sb.WriteString("Loading...\n")
		return sb.String()
	case catalog.StatusEmpty:
		fmt.Fprintf(&sb, "%s\n", EmptyMessage(category))
		return sb.String()
	case catalog.StatusFailed:
		fmt.Fprintf(&sb, "Unable to load %s: %s\n", strings.ToLower(category.Title()), state.Reason())
		return sb.String()
	}

	if options.FilterSummary != "" {
		fmt.Fprintf(&sb, "%s\n", options.FilterSummary)
	}
	if len(cards) == 0 {
		sb.WriteString("No movies match the filter.\n")
		return sb.String()
	}
	sb.WriteString("\n")

	shown := cards
	if options.Limit > 0 && len(shown) > options.Limit {
		shown = shown[:options.Limit]
	}
	for i, card := range shown {
		isLast := i == len(shown)-1
		f.formatCard(&sb, card, isLast, options)
		if !isLast {
			sb.WriteString("│\n")
		}
	}
	if hidden := len(cards) - len(shown); hidden > 0 {
		fmt.Fprintf(&sb, "\n... and %d more\n", hidden)
	}

	return sb.String()
}

func (f *ConsoleFormatter) formatCard(sb *strings.Builder, card catalog.MovieCard, isLast bool, options FormatOptions) {
	prefix, indent := branch, pipe
	if isLast {
		prefix, indent = lastBranch, blank
	}

	sb.WriteString(prefix)
	if card.Badge != "" {
		fmt.Fprintf(sb, "[%s] ", card.Badge)
	}
	fmt.Fprintf(sb, "%s (id %d)\n", card.Title, card.ID)

	details := []string{"Release: " + card.ReleaseDate}
	if card.HasRating() {
		details = append(details, fmt.Sprintf("Rating: %s (%s, %s)", card.Rating, card.Tier, card.Votes))
	} else {
		details = append(details, "Not yet rated")
	}
	fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(details, " | "))

	if options.ShowOverview && card.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(card.Overview, 160))
	}
}

// FormatDetail formats a single movie. library is optional.
func (f *ConsoleFormatter) FormatDetail(outcome catalog.Outcome, view catalog.MovieDetailView, library *radarr.LibraryStatus) string {
	var sb strings.Builder

	switch outcome {
	case catalog.OutcomeLoading:
		sb.WriteString("\nLoading movie...\n")
		return sb.String()
	case catalog.OutcomeNotFound:
		fmt.Fprintf(&sb, "\n%s\n", NotFoundMessage)
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n%s\n", view.Title)
	if view.Tagline != "" {
		fmt.Fprintf(&sb, "\"%s\"\n", view.Tagline)
	}
	sb.WriteString("\n")

	rows := [][2]string{
		{"Release", view.ReleaseDate},
		{"Runtime", view.Runtime},
		{"Status", view.Status},
	}
	if view.Countdown != nil {
		rows = append(rows, [2]string{"Countdown", view.Countdown.String()})
	}
	if view.Rating != "" {
		rows = append(rows, [2]string{"Rating", fmt.Sprintf("%s (%s)", view.Rating, view.Tier)})
	}
	if len(view.Genres) > 0 {
		rows = append(rows, [2]string{"Genres", strings.Join(view.Genres, ", ")})
	}
	if view.Language != "" {
		rows = append(rows, [2]string{"Language", view.Language})
	}
	if view.Production != "" {
		rows = append(rows, [2]string{"Production", view.Production})
	}
	if view.Budget != "" {
		rows = append(rows, [2]string{"Budget", view.Budget})
	}
	rows = append(rows, [2]string{"Revenue", view.Revenue})
	if library != nil {
		rows = append(rows, [2]string{"Radarr", library.String()})
	}
	if view.PosterURL != "" {
		rows = append(rows, [2]string{"Poster", view.PosterURL})
	}

	for i, row := range rows {
		prefix := branch
		if i == len(rows)-1 {
			prefix = lastBranch
		}
		fmt.Fprintf(&sb, "%s%-10s %s\n", prefix, row[0]+":", row[1])
	}

	if view.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", view.Overview)
	}

	return sb.String()
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}
