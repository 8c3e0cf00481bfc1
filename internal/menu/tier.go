package menu

import (
	"fmt"
	"regexp"
	"strings"
)

// PriceTier is the serving format a liquor price column sells.
type PriceTier int

const (
	TierNone PriceTier = iota
	TierBottle
	TierLiter
	TierCup
)

// Header markers that identify a price column on liquor tables. Printed
// menus use the Spanish words; imported catalogs sometimes carry English.
var (
	markersBottle = []string{"BOTELLA", "BOTTLE"}
	markersLiter  = []string{"LITRO", "LITER"}
	markersCup    = []string{"COPA", "CUP"}
)

// Prefix returns the display prefix for order lines sold at this tier.
func (t PriceTier) Prefix() string {
	switch t {
	case TierBottle:
		return "Bottle"
	case TierLiter:
		return "Liter"
	case TierCup:
		return "Cup"
	case TierNone:
		return ""
	}
	panic(fmt.Sprintf("menu: unmapped price tier %d", int(t)))
}

func (t PriceTier) String() string {
	switch t {
	case TierBottle:
		return "bottle"
	case TierLiter:
		return "liter"
	case TierCup:
		return "cup"
	case TierNone:
		return "none"
	}
	return fmt.Sprintf("PriceTier(%d)", int(t))
}

// IsLiquorTable reports whether any column header carries a tier marker.
func IsLiquorTable(headers []string) bool {
	for _, h := range headers {
		if tierFromHeader(h) != TierNone {
			return true
		}
	}
	return false
}

// DetectTier returns the tier of the column at index column. Columns outside
// the header list or without a marker yield TierNone.
func DetectTier(headers []string, column int) PriceTier {
	if column < 0 || column >= len(headers) {
		return TierNone
	}
	return tierFromHeader(headers[column])
}

func tierFromHeader(header string) PriceTier {
	h := upper(header)
	switch {
	case containsAny(h, markersBottle):
		return TierBottle
	case containsAny(h, markersLiter):
		return TierLiter
	case containsAny(h, markersCup):
		return TierCup
	}
	return TierNone
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var volumePattern = regexp.MustCompile(`(?i)\s*\d+\s*ML`)

// StripVolume removes the first volume annotation ("750 ML") from a
// product name.
func StripVolume(name string) string {
	loc := volumePattern.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]] + name[loc[1]:]
}

// DisplayName builds the order line name for a liquor sold at tier. Liter
// and cup names drop the bottle volume.
func DisplayName(tier PriceTier, name string) string {
	switch tier {
	case TierBottle:
		return tier.Prefix() + " " + name
	case TierLiter, TierCup:
		return tier.Prefix() + " " + StripVolume(name)
	case TierNone:
		return name
	}
	panic(fmt.Sprintf("menu: unmapped price tier %d", int(tier)))
}
