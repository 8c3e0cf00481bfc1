package harness

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/techbar/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions evaluates all assertions against the final snapshot
// and the effects of the whole run. Returns one message per failure.
func EvaluateAssertions(final Snapshot, effects engine.Effects, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(final, effects, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(final Snapshot, effects engine.Effects, a Assertion) error {
	switch a.Type {
	case AssertState:
		return expectString(a.Type, a.Value, final.State)
	case AssertScreen:
		return expectString(a.Type, a.Value, final.Screen)
	case AssertItems:
		return expectCount(a.Type, a.Count, final.Items)
	case AssertOrders:
		return expectCount(a.Type, a.Count, final.Orders)
	case AssertHistory:
		return expectCount(a.Type, a.Count, final.History)
	case AssertTotal:
		return assertTotal(a.Value, final.Total)
	case AssertEffectCount:
		return expectCount(a.Type+" "+a.Kind, a.Count, len(effectTexts(effects, a.Kind)))
	case AssertEffectContains:
		texts := effectTexts(effects, a.Kind)
		if containsText(texts, a.Text) {
			return nil
		}
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s effect containing %q", a.Kind, a.Text),
			Actual:   fmt.Sprintf("%d %s effects, none matching", len(texts), a.Kind),
		}
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func expectString(typ, want, got string) error {
	if want == got {
		return nil
	}
	return &AssertionError{Type: typ, Expected: want, Actual: got}
}

func expectCount(typ string, want, got int) error {
	if want == got {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%d", want),
		Actual:   fmt.Sprintf("%d", got),
	}
}

// assertTotal compares amounts as decimals, so "165.5" matches "$165.50".
func assertTotal(want, got string) error {
	w, err := decimal.NewFromString(strings.TrimPrefix(want, "$"))
	if err != nil {
		return fmt.Errorf("total: invalid expected amount %q", want)
	}
	g, err := decimal.NewFromString(strings.TrimPrefix(got, "$"))
	if err != nil {
		return fmt.Errorf("total: invalid amount %q", got)
	}
	if w.Equal(g) {
		return nil
	}
	return &AssertionError{Type: AssertTotal, Expected: engine.Money(w), Actual: got}
}
