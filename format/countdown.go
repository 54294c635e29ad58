package format

import (
	"fmt"
	"math"
	"time"
)

// CountdownKind identifies which label a countdown renders as
type CountdownKind int

const (
	// CountdownReleased means the release date has passed
	CountdownReleased CountdownKind = iota
	// CountdownToday means the movie releases today
	CountdownToday
	// CountdownTomorrow means the movie releases tomorrow
	CountdownTomorrow
	// CountdownInDays means the movie releases in Days days
	CountdownInDays
)

// Countdown describes the time remaining until a release date
type Countdown struct {
	Kind CountdownKind
	Days int
}

// String returns the label shown on release badges
func (c Countdown) String() string {
	switch c.Kind {
	case CountdownToday:
		return "Today!"
	case CountdownTomorrow:
		return "Tomorrow"
	case CountdownInDays:
		return fmt.Sprintf("%d days", c.Days)
	default:
		return "Released"
	}
}

// DaysUntilRelease computes the countdown from now to release, rounding the
// day difference up. It must be evaluated on every render.
func DaysUntilRelease(release, now time.Time) Countdown {
	diff := int(math.Ceil(release.Sub(now).Hours() / 24))

	switch {
	case diff < 0:
		return Countdown{Kind: CountdownReleased, Days: diff}
	case diff == 0:
		return Countdown{Kind: CountdownToday}
	case diff == 1:
		return Countdown{Kind: CountdownTomorrow, Days: 1}
	default:
		return Countdown{Kind: CountdownInDays, Days: diff}
	}
}

// Window buckets a countdown for badge emphasis
type Window int

const (
	// WindowImminent covers releases within a week, including past ones
	WindowImminent Window = iota
	// WindowThisMonth covers releases within 30 days
	WindowThisMonth
	// WindowLater covers everything further out
	WindowLater
)

// String returns the string representation of a Window
func (w Window) String() string {
	switch w {
	case WindowImminent:
		return "imminent"
	case WindowThisMonth:
		return "this-month"
	default:
		return "later"
	}
}

// ReleaseWindow returns the emphasis bucket for a countdown
func ReleaseWindow(c Countdown) Window {
	switch {
	case c.Days <= 7:
		return WindowImminent
	case c.Days <= 30:
		return WindowThisMonth
	default:
		return WindowLater
	}
}
