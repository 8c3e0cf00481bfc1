// Package swipe turns horizontal touch gestures into menu page navigation.
//
// A gesture is Start, any number of Move, then End. Swiping left by at least
// the minimum distance moves to the next category and swiping right to the
// previous one, wrapping around at both ends. Gestures that begin on a
// control or while an intro screen is showing are ignored.
package swipe

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
)

const (
	// DefaultMinDistance is the horizontal travel a gesture needs to count
	// as a swipe.
	DefaultMinDistance = 100.0
	// IndicatorThreshold is the travel after which the direction hint shows.
	IndicatorThreshold = 20.0
)

// NonSwipeable lists the elements a gesture may not start on. Touches on
// these, or inside them, belong to the element.
var NonSwipeable = []string{
	"nav-button",
	"price-button",
	"video",
	"img",
	"modal",
	"drink-option",
	"counter-btn",
	"textarea",
	"order-sidebar",
}

// Direction is the navigation a swipe asks for.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrevious
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionNext:
		return "next"
	case DirectionPrevious:
		return "previous"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Indicator is the edge hint shown while a finger moves.
type Indicator int

const (
	IndicatorNone Indicator = iota
	// IndicatorRight hints at the next page while swiping left.
	IndicatorRight
	// IndicatorLeft hints at the previous page while swiping right.
	IndicatorLeft
)

func (i Indicator) String() string {
	switch i {
	case IndicatorNone:
		return "none"
	case IndicatorRight:
		return "right"
	case IndicatorLeft:
		return "left"
	}
	return fmt.Sprintf("Indicator(%d)", int(i))
}

// Navigator loads a menu category. The order engine's host implements it.
type Navigator interface {
	LoadContent(category string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(category string) error

func (f NavigatorFunc) LoadContent(category string) error { return f(category) }

// Interpreter tracks one gesture at a time over a fixed category order.
// It is not safe for concurrent use.
type Interpreter struct {
	keys        []string
	nav         Navigator
	minDistance float64
	logger      *slog.Logger

	intro    bool
	tracking bool
	startX   float64
	category string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMinDistance sets the swipe distance. Non-positive values keep
// DefaultMinDistance.
func WithMinDistance(d float64) Option {
	return func(in *Interpreter) {
		if d > 0 {
			in.minDistance = d
		}
	}
}

// WithLogger sets the interpreter logger. Default: a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// New creates an interpreter navigating keys in order through nav.
func New(keys []string, nav Navigator, opts ...Option) *Interpreter {
	in := &Interpreter{
		keys:        slices.Clone(keys),
		nav:         nav,
		minDistance: DefaultMinDistance,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Interpreter) MinDistance() float64 { return in.minDistance }
func (in *Interpreter) Tracking() bool        { return in.tracking }

// SetIntro marks whether an intro screen (welcome, logo or category title)
// is covering the menu.
func (in *Interpreter) SetIntro(shown bool) {
	in.intro = shown
	if shown {
		in.tracking = false
	}
}

// Start begins a gesture at x on the page showing category. path is the
// touched element followed by its ancestors. It reports whether the gesture
// is tracked.
func (in *Interpreter) Start(x float64, category string, path ...string) bool {
	in.tracking = false
	if in.intro || category == "" || Blocked(path...) {
		return false
	}
	in.tracking = true
	in.startX = x
	in.category = category
	return true
}

// Move reports the edge hint for the finger at x.
func (in *Interpreter) Move(x float64) Indicator {
	if !in.tracking {
		return IndicatorNone
	}
	switch d := in.startX - x; {
	case d > IndicatorThreshold:
		return IndicatorRight
	case d < -IndicatorThreshold:
		return IndicatorLeft
	}
	return IndicatorNone
}

// End finishes the gesture at x. When it is a swipe, the neighbouring
// category is loaded through the Navigator and returned. Short gestures and
// unknown categories return "".
func (in *Interpreter) End(x float64) (string, error) {
	if !in.tracking {
		return "", nil
	}
	in.tracking = false

	dir := Classify(in.startX-x, in.minDistance)
	if dir == DirectionNone {
		return "", nil
	}
	next, ok := Neighbor(in.keys, in.category, dir)
	if !ok {
		in.logger.Debug("swipe from unknown category", "category", in.category)
		return "", nil
	}
	in.logger.Debug("swipe",
		"from", in.category,
		"to", next,
		"direction", dir.String(),
	)
	if err := in.nav.LoadContent(next); err != nil {
		return "", fmt.Errorf("load %s: %w", next, err)
	}
	return next, nil
}

// Classify maps a leftward travel distance (start minus end) to a direction.
func Classify(distance, minDistance float64) Direction {
	switch {
	case distance >= minDistance:
		return DirectionNext
	case distance <= -minDistance:
		return DirectionPrevious
	}
	return DirectionNone
}

// Neighbor returns the category next to current in dir, wrapping around.
func Neighbor(keys []string, current string, dir Direction) (string, bool) {
	i := slices.Index(keys, current)
	if i < 0 || dir == DirectionNone {
		return "", false
	}
	n := len(keys)
	switch dir {
	case DirectionNext:
		return keys[(i+1)%n], true
	case DirectionPrevious:
		return keys[(i-1+n)%n], true
	}
	return "", false
}

// Blocked reports whether any element on path is non-swipeable.
func Blocked(path ...string) bool {
	for _, el := range path {
		if slices.Contains(NonSwipeable, el) {
			return true
		}
	}
	return false
}
