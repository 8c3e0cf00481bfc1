package menu

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Protocol is the customization flow a tapped price cell starts.
type Protocol int

const (
	ProtocolPlain Protocol = iota
	ProtocolBottle
	ProtocolLiter
	ProtocolCup
	ProtocolFood
	ProtocolMeat
	// ProtocolUnpriced is a liquor table cell whose column carries no tier
	// marker.
	ProtocolUnpriced
)

func (p Protocol) String() string {
	switch p {
	case ProtocolPlain:
		return "plain"
	case ProtocolBottle:
		return "bottle"
	case ProtocolLiter:
		return "liter"
	case ProtocolCup:
		return "cup"
	case ProtocolFood:
		return "food"
	case ProtocolMeat:
		return "meat"
	case ProtocolUnpriced:
		return "unpriced"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// Tap describes a tapped price cell: the page it sits on, its row's product
// and the header row of its table.
type Tap struct {
	Category string   `json:"category" yaml:"category"`
	Product  string   `json:"product" yaml:"product"`
	Price    string   `json:"price" yaml:"price"`
	Headers  []string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Column   int      `json:"column" yaml:"column"`
}

// Tier returns the price tier of the tapped column.
func (t Tap) Tier() PriceTier {
	return DetectTier(t.Headers, t.Column)
}

var (
	foodCategories = []string{"PIZZAS", "ALITAS", "SOPAS", "ENSALADAS"}
	meatCategory   = "CARNES"
)

// IsFoodCategory reports whether products on the page get the ingredient
// removal flow.
func IsFoodCategory(category string) bool {
	return slices.Contains(foodCategories, upper(category))
}

// IsMeatCategory reports whether products on the page get the cooking term
// and garnish flow.
func IsMeatCategory(category string) bool {
	return upper(category) == meatCategory
}

// Classify picks exactly one customization protocol for a tap. Liquor tables
// take precedence over the page category.
func Classify(t Tap) Protocol {
	if IsLiquorTable(t.Headers) {
		switch t.Tier() {
		case TierBottle:
			return ProtocolBottle
		case TierLiter:
			return ProtocolLiter
		case TierCup:
			return ProtocolCup
		case TierNone:
			return ProtocolUnpriced
		}
	}
	switch {
	case IsFoodCategory(t.Category):
		return ProtocolFood
	case IsMeatCategory(t.Category):
		return ProtocolMeat
	}
	return ProtocolPlain
}

var pricePattern = regexp.MustCompile(`\$?([\d,]+(\.\d+)?)`)

// ParsePrice reads the amount printed in a price cell ("$1,250.00").
// Text without an amount parses as zero.
func ParsePrice(text string) decimal.Decimal {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero
	}
	amount := strings.Replace(m[1], ",", "", 1)
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CookingTerm is the doneness requested for a meat dish.
type CookingTerm string

const (
	TermMedium        CookingTerm = "medio"
	TermThreeQuarters CookingTerm = "tres-cuartos"
	TermWellDone      CookingTerm = "bien-cocido"
)

// ParseCookingTerm validates a term key.
func ParseCookingTerm(s string) (CookingTerm, bool) {
	switch t := CookingTerm(strings.TrimSpace(s)); t {
	case TermMedium, TermThreeQuarters, TermWellDone:
		return t, true
	}
	return "", false
}

// Label returns the text printed on the order for the term.
func (t CookingTerm) Label() string {
	switch t {
	case TermMedium:
		return "Término ½"
	case TermThreeQuarters:
		return "Término ¾"
	case TermWellDone:
		return "Bien Cocido"
	}
	return string(t)
}
