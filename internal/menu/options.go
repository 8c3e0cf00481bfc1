package menu

import (
	"fmt"
	"slices"
)

// NoneOption is the accompaniment that excludes every other one.
const NoneOption = "Ninguno"

// Instruction messages shown above the accompaniment picker.
const (
	MessageFiveSodas   = "Puedes elegir 5 refrescos"
	MessageJuiceRatio  = "Puedes elegir 2 Jarras de jugo ó 5 Refrescos ó 1 Jarra de jugo y 2 Refrescos"
	MessageNoSodas     = "Este producto no incluye refrescos"
	MessageLiterServed = "Cada litro se sirve con 6 oz del destilado que elija."
	MessageCupServed   = "Cada copa se sirve con 1 ½ oz del destilado que elija."
)

var juices = []string{"Piña", "Uva", "Naranja", "Arándano", "Mango", "Durazno"}

// IsJuice reports whether option is one of the juice pitchers that count
// double on Vodka and Gin bottles.
func IsJuice(option string) bool {
	return slices.Contains(juices, normalize(option))
}

// BottleOptions returns the accompaniments offered with a bottle of the given
// category and the instruction message for the picker.
func BottleOptions(c LiquorCategory) ([]string, string) {
	switch c {
	case Rum, Brandy:
		return []string{"Mineral", "Coca", "Manzana"}, MessageFiveSodas
	case Tequila, Mezcal:
		return []string{"Mineral", "Toronja", "Botella de Agua", "Coca"}, MessageFiveSodas
	case Whisky:
		return []string{"Mineral", "Manzana", "Ginger ale", "Botella de Agua"}, MessageFiveSodas
	case Vodka, Gin:
		return []string{"Piña", "Uva", "Naranja", "Arándano", "Mango", "Durazno", "Mineral", "Agua", "Quina"}, MessageJuiceRatio
	case Cognac:
		return []string{"Mineral", "Coca", "Manzana", "Botella de Agua"}, MessageFiveSodas
	case Sparkling, Digestive:
		return []string{NoneOption}, MessageNoSodas
	case Other:
		return []string{"Mineral", "Agua", "Coca", "Manzana"}, MessageFiveSodas
	}
	panic(fmt.Sprintf("menu: unmapped liquor category %d", int(c)))
}

// ServingOptions returns the single-choice mixers for a liter or cup of the
// given category. Liters and cups share the same lists.
func ServingOptions(c LiquorCategory) []string {
	switch c {
	case Rum:
		return []string{"Mineral", "Manzana", "Coca", "Mineral-Coca", "Mineral-Manzana", "Pintado-Coca", "Pintado-Manzana"}
	case Tequila:
		return []string{"Toronja", "Mineral", "Coca", "Toronja-Mineral", "Bandera", "Paloma"}
	case Brandy:
		return []string{"Coca", "Manzana", "Mineral", "Mineral-Coca", "Mineral-Manzana", "Paris"}
	case Whisky:
		return []string{"Mineral", "Manzana", "Ginger ale", "Botella de Agua", "Rocas"}
	case Vodka, Gin:
		return []string{"Piña", "Naranja", "Arándano", "Mango", "Uva", "Durazno", "Mineral", "Tonic"}
	case Mezcal:
		return []string{"Naranja y Sal de gusano", "Toronja"}
	case Cognac:
		return []string{"Puesto-Mineral", "Puesto-Coca", "Puesto-Manzana", "Rocas"}
	case Sparkling:
		return []string{NoneOption}
	case Digestive:
		return []string{"Mineral", "Botella de Agua"}
	case Other:
		return []string{"Mineral", "Agua", "Coca", "Manzana"}
	}
	panic(fmt.Sprintf("menu: unmapped liquor category %d", int(c)))
}

// ServingMessage returns the instruction shown above the liter or cup picker.
func ServingMessage(t PriceTier) string {
	if t == TierCup {
		return MessageCupServed
	}
	return MessageLiterServed
}

// MatchOption finds option in options, ignoring case and Unicode
// normalisation differences, and returns the list's spelling.
func MatchOption(options []string, option string) (string, bool) {
	want := upper(option)
	for _, o := range options {
		if upper(o) == want {
			return o, true
		}
	}
	return "", false
}
