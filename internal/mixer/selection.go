// Package mixer implements the accompaniment rules for liquor sold by the
// bottle, liter or cup.
//
// A bottle comes with a budget of accompaniment units. Most categories spend
// it freely across their option list. Vodka and Gin use a weighted budget in
// which a juice pitcher costs two units and a soda costs one, with at most two
// pitchers. Sparkling wine and digestives come with nothing.
//
// Selection and Serving are values: every mutation returns a new value and
// leaves the receiver untouched, so each intermediate state can be checked on
// its own.
package mixer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/techbar/internal/menu"
)

// ErrNothingSelected is returned when a picker is confirmed with no option.
var ErrNothingSelected = errors.New("no accompaniment selected")

const (
	// MaxUnits is the accompaniment budget of a bottle.
	MaxUnits = 5
	// MaxJuices caps juice pitchers on weighted bottles.
	MaxJuices = 2

	juiceWeight = 2
)

// Customization labels written on the order line.
const (
	LabelNoAccompaniments = "Sin acompañamientos"
	labelWith             = "Con: "
)

// Rule is the quantity rule a bottle follows.
type Rule int

const (
	RuleStandard Rule = iota
	RuleWeighted
	RuleNoneOnly
)

func (r Rule) String() string {
	switch r {
	case RuleStandard:
		return "standard"
	case RuleWeighted:
		return "weighted"
	case RuleNoneOnly:
		return "none-only"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// RuleFor returns the quantity rule of a liquor category.
func RuleFor(c menu.LiquorCategory) Rule {
	switch c {
	case menu.Vodka, menu.Gin:
		return RuleWeighted
	case menu.Sparkling, menu.Digestive:
		return RuleNoneOnly
	case menu.Rum, menu.Tequila, menu.Whisky, menu.Brandy, menu.Mezcal, menu.Cognac, menu.Other:
		return RuleStandard
	}
	panic(fmt.Sprintf("mixer: unmapped liquor category %d", int(c)))
}

// Selection is the state of a bottle's accompaniment picker.
type Selection struct {
	category menu.LiquorCategory
	rule     Rule
	options  []string
	message  string
	order    []string
	counts   map[string]int
	none     bool
}

// Control is the render state of one counted option.
type Control struct {
	Option       string `json:"option"`
	Count        int    `json:"count"`
	Juice        bool   `json:"juice,omitempty"`
	CanIncrement bool   `json:"can_increment"`
	CanDecrement bool   `json:"can_decrement"`
}

// New returns an empty selection for a bottle of category c.
func New(c menu.LiquorCategory) Selection {
	options, message := menu.BottleOptions(c)
	return Selection{
		category: c,
		rule:     RuleFor(c),
		options:  options,
		message:  message,
		counts:   map[string]int{},
	}
}

func (s Selection) Category() menu.LiquorCategory { return s.category }
func (s Selection) Rule() Rule                    { return s.rule }
func (s Selection) Message() string               { return s.message }
func (s Selection) Max() int                      { return MaxUnits }
func (s Selection) NoneChosen() bool              { return s.none }

// Options returns the picker's option list, including NoneOption when the
// category offers only that.
func (s Selection) Options() []string {
	return slices.Clone(s.options)
}

// Count returns how many units of option are selected.
func (s Selection) Count(option string) int {
	option, _ = s.lookup(option)
	return s.counts[option]
}

// Units returns the number of selected units, unweighted.
func (s Selection) Units() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// JuiceCount returns the number of juice pitchers selected.
func (s Selection) JuiceCount() int {
	n := 0
	for opt, c := range s.counts {
		if menu.IsJuice(opt) {
			n += c
		}
	}
	return n
}

// SodaCount returns the number of non-juice units selected.
func (s Selection) SodaCount() int {
	return s.Units() - s.JuiceCount()
}

// WeightedTotal returns the units spent against the budget. Juices weigh
// double only under the weighted rule.
func (s Selection) WeightedTotal() int {
	if s.rule == RuleWeighted {
		return s.JuiceCount()*juiceWeight + s.SodaCount()
	}
	return s.Units()
}

// Selected returns the options with a positive count in first-selected order,
// or just NoneOption when the override is active.
func (s Selection) Selected() []string {
	if s.none {
		return []string{menu.NoneOption}
	}
	var out []string
	for _, opt := range s.order {
		if s.counts[opt] > 0 {
			out = append(out, opt)
		}
	}
	return out
}

// sodaCap is the soda ceiling on weighted bottles given the juices already
// chosen. Two juices leave no room for soda.
func sodaCap(juices int) int {
	switch juices {
	case 0:
		return MaxUnits
	case 1:
		return 2
	default:
		return 0
	}
}

// CanIncrement reports whether one more unit of option fits the rule.
func (s Selection) CanIncrement(option string) bool {
	option, ok := s.lookup(option)
	if !ok || option == menu.NoneOption {
		return false
	}
	switch s.rule {
	case RuleStandard:
		return s.Units() < MaxUnits
	case RuleWeighted:
		juices := s.JuiceCount()
		if menu.IsJuice(option) {
			return juices < MaxJuices && s.WeightedTotal()+juiceWeight <= MaxUnits
		}
		return s.SodaCount() < sodaCap(juices)
	case RuleNoneOnly:
		return false
	}
	panic(fmt.Sprintf("mixer: unmapped rule %d", int(s.rule)))
}

// Increment adds one unit of option. It reports false and returns s unchanged
// when the rule does not allow it. Counting clears the None override.
func (s Selection) Increment(option string) (Selection, bool) {
	if !s.CanIncrement(option) {
		return s, false
	}
	option, _ = s.lookup(option)
	next := s.clone()
	next.none = false
	if !slices.Contains(next.order, option) {
		next.order = append(next.order, option)
	}
	next.counts[option]++
	return next, true
}

// Decrement removes one unit of option. Options at zero are left as is.
func (s Selection) Decrement(option string) Selection {
	option, ok := s.lookup(option)
	if !ok || s.counts[option] <= 0 {
		return s
	}
	next := s.clone()
	next.counts[option]--
	return next
}

// ChooseNone clears every count and selects the None override.
func (s Selection) ChooseNone() Selection {
	next := s.clone()
	next.counts = map[string]int{}
	next.none = true
	return next
}

// Controls recomputes the render state of every counted option.
func (s Selection) Controls() []Control {
	out := make([]Control, 0, len(s.options))
	for _, opt := range s.options {
		if opt == menu.NoneOption {
			continue
		}
		out = append(out, Control{
			Option:       opt,
			Count:        s.counts[opt],
			Juice:        s.rule == RuleWeighted && menu.IsJuice(opt),
			CanIncrement: s.CanIncrement(opt),
			CanDecrement: s.counts[opt] > 0,
		})
	}
	return out
}

// Describe composes the customization text for the order line.
func (s Selection) Describe() (string, error) {
	if s.none {
		return LabelNoAccompaniments, nil
	}
	var parts []string
	for _, opt := range s.order {
		if c := s.counts[opt]; c > 0 {
			parts = append(parts, fmt.Sprintf("%dx %s", c, opt))
		}
	}
	if len(parts) == 0 {
		return "", ErrNothingSelected
	}
	return labelWith + strings.Join(parts, ", "), nil
}

func (s Selection) lookup(option string) (string, bool) {
	return menu.MatchOption(s.options, option)
}

func (s Selection) clone() Selection {
	next := s
	next.order = slices.Clone(s.order)
	next.counts = maps.Clone(s.counts)
	if next.counts == nil {
		next.counts = map[string]int{}
	}
	return next
}
