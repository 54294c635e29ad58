package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinerate/catalog"
	"github.com/s0up4200/cinerate/format"
)

// Env is the environment a filter expression is evaluated against
type Env struct {
	// Movie data
	ID          int
	Rank        int
	Title       string
	Overview    string
	VoteAverage float64
	VoteCount   int
	ReleaseDate time.Time
	Tier        string
	HasPoster   bool

	// Evaluation time
	Now time.Time
}

// String helpers
func (Env) Contains(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}

func (Env) StartsWith(str, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
}

// Date helpers
func (e Env) DaysUntil(t time.Time) int {
	return format.DaysUntilRelease(t, e.Now).Days
}

func (e Env) DaysAgo(days int) time.Time {
	return e.Now.AddDate(0, 0, -days)
}

func (Env) ParseDate(dateStr string) time.Time {
	t, _ := format.ParseDate(dateStr)
	return t
}

// ExprFilter represents a compiled expr filter
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// CompileExprFilter compiles an expr filter expression
func CompileExprFilter(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Evaluate evaluates the filter against a card at time now
func (f *ExprFilter) Evaluate(card catalog.MovieCard, now time.Time) bool {
	env := Env{
		ID:          card.ID,
		Rank:        card.Rank,
		Title:       card.Title,
		Overview:    card.Overview,
		VoteAverage: card.VoteAverage,
		VoteCount:   card.VoteCount,
		ReleaseDate: card.Released,
		Tier:        card.Tier.String(),
		HasPoster:   card.PosterURL != "",
		Now:         now,
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		// runtime errors skip the movie
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// String returns the original expression
func (f *ExprFilter) String() string {
	return f.expr
}

// Apply returns the cards matching f, keeping their order and ranks
func Apply(cards []catalog.MovieCard, f *ExprFilter, now time.Time) []catalog.MovieCard {
	if f == nil {
		return cards
	}

	matches := make([]catalog.MovieCard, 0, len(cards))
	for _, card := range cards {
		if f.Evaluate(card, now) {
			matches = append(matches, card)
		}
	}
	return matches
}

// Describe summarizes what a filter kept, for log lines
func Describe(f *ExprFilter, kept, total int) string {
	return fmt.Sprintf("%q matched %d of %d movies", f.String(), kept, total)
}
