package menu

import (
	"fmt"
	"strings"
)

// LiquorCategory classifies a liquor product. It decides which accompaniment
// vocabulary and which quantity rule apply to the product.
type LiquorCategory int

const (
	Other LiquorCategory = iota
	Rum
	Tequila
	Whisky
	Vodka
	Brandy
	Gin
	Mezcal
	Cognac
	Digestive
	Sparkling
)

// LiquorCategories lists every category in declaration order.
var LiquorCategories = []LiquorCategory{
	Rum, Tequila, Whisky, Vodka, Brandy, Gin, Mezcal, Cognac, Digestive, Sparkling, Other,
}

// Title returns the Spanish page title used on the menu for the category.
func (c LiquorCategory) Title() string {
	switch c {
	case Rum:
		return "RON"
	case Tequila:
		return "TEQUILA"
	case Whisky:
		return "WHISKY"
	case Vodka:
		return "VODKA"
	case Brandy:
		return "BRANDY"
	case Gin:
		return "GINEBRA"
	case Mezcal:
		return "MEZCAL"
	case Cognac:
		return "COGNAC"
	case Digestive:
		return "DIGESTIVOS"
	case Sparkling:
		return "ESPUMOSOS"
	case Other:
		return "OTRO"
	}
	panic(fmt.Sprintf("menu: unmapped liquor category %d", int(c)))
}

func (c LiquorCategory) String() string {
	return c.Title()
}

// ParseLiquorCategory maps a Spanish page title back to its category.
func ParseLiquorCategory(title string) (LiquorCategory, bool) {
	t := upper(title)
	for _, c := range LiquorCategories {
		if c.Title() == t {
			return c, true
		}
	}
	return Other, false
}

// liquorCategoryPage is the generic liquor page. Products on it are classified
// as Other instead of by keyword.
const liquorCategoryPage = "LICORES"

// liquorKeywords is checked in order; the first match wins. The order matters:
// "GIN" is a substring of many names and must come after the more specific
// categories.
var liquorKeywords = []struct {
	category LiquorCategory
	keywords []string
}{
	{Rum, []string{"RON", "BACARDI"}},
	{Tequila, []string{"TEQUILA", "CUERVO", "DON JULIO"}},
	{Whisky, []string{"WHISKY", "BUCHANANS"}},
	{Vodka, []string{"VODKA", "ABSOLUT", "GREY GOOSE"}},
	{Brandy, []string{"BRANDY", "TORRES"}},
	{Gin, []string{"GINEBRA", "GIN"}},
	{Mezcal, []string{"MEZCAL", "400 CONEJOS"}},
	{Cognac, []string{"COGNAC", "REMY", "HENNESSY"}},
	{Digestive, []string{"BAILEYS", "JAGERMEISTER"}},
	{Sparkling, []string{"MOET", "CHANDON"}},
}

// ClassifyLiquor derives the liquor category of a product. A page titled
// after a liquor category wins; the generic LICORES page yields Other;
// anything else falls back to keyword matching on the product name.
func ClassifyLiquor(pageCategory, productName string) LiquorCategory {
	page := upper(pageCategory)
	if page == liquorCategoryPage {
		return Other
	}
	if c, ok := ParseLiquorCategory(page); ok && c != Other {
		return c
	}

	name := upper(productName)
	for _, entry := range liquorKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.category
			}
		}
	}
	return Other
}
