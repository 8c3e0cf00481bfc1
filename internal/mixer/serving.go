package mixer

import (
	"slices"

	"github.com/roach88/techbar/internal/menu"
)

// Serving is the single-choice mixer picker for liters and cups.
type Serving struct {
	category menu.LiquorCategory
	tier     menu.PriceTier
	options  []string
	chosen   string
}

// NewServing returns an empty picker for a liter or cup of category c.
func NewServing(c menu.LiquorCategory, tier menu.PriceTier) Serving {
	return Serving{
		category: c,
		tier:     tier,
		options:  menu.ServingOptions(c),
	}
}

func (s Serving) Category() menu.LiquorCategory { return s.category }
func (s Serving) Tier() menu.PriceTier          { return s.tier }
func (s Serving) Chosen() string                { return s.chosen }
func (s Serving) Message() string               { return menu.ServingMessage(s.tier) }

func (s Serving) Options() []string {
	return slices.Clone(s.options)
}

// Choose replaces the current choice. Options outside the list are refused.
func (s Serving) Choose(option string) (Serving, bool) {
	canonical, ok := menu.MatchOption(s.options, option)
	if !ok {
		return s, false
	}
	s.chosen = canonical
	return s, true
}

// Describe composes the customization text for the order line.
func (s Serving) Describe() (string, error) {
	switch s.chosen {
	case "":
		return "", ErrNothingSelected
	case menu.NoneOption:
		return LabelNoAccompaniments, nil
	}
	return labelWith + s.chosen, nil
}
