package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/techbar/internal/menu"
)

// mustIncrement applies increments that the test expects to be accepted.
func mustIncrement(t *testing.T, s Selection, options ...string) Selection {
	t.Helper()
	for _, opt := range options {
		var ok bool
		s, ok = s.Increment(opt)
		require.True(t, ok, "increment %q refused (weighted=%d juices=%d)", opt, s.WeightedTotal(), s.JuiceCount())
	}
	return s
}

func TestRuleFor(t *testing.T) {
	assert.Equal(t, RuleWeighted, RuleFor(menu.Vodka))
	assert.Equal(t, RuleWeighted, RuleFor(menu.Gin))
	assert.Equal(t, RuleNoneOnly, RuleFor(menu.Sparkling))
	assert.Equal(t, RuleNoneOnly, RuleFor(menu.Digestive))
	for _, c := range []menu.LiquorCategory{menu.Rum, menu.Tequila, menu.Whisky, menu.Brandy, menu.Mezcal, menu.Cognac, menu.Other} {
		assert.Equal(t, RuleStandard, RuleFor(c), c.Title())
	}
}

func TestStandardCeiling(t *testing.T) {
	s := mustIncrement(t, New(menu.Rum), "Mineral", "Coca", "Coca", "Manzana", "Mineral")
	assert.Equal(t, 5, s.Units())
	assert.Equal(t, 5, s.WeightedTotal())

	for _, opt := range []string{"Mineral", "Coca", "Manzana"} {
		_, ok := s.Increment(opt)
		assert.False(t, ok, opt)
		assert.False(t, s.CanIncrement(opt), opt)
	}

	s = s.Decrement("Coca")
	assert.Equal(t, 4, s.Units())
	assert.True(t, s.CanIncrement("Manzana"))
}

func TestStandardNoneClearsCounts(t *testing.T) {
	s := mustIncrement(t, New(menu.Tequila), "Toronja", "Toronja", "Coca")
	s = s.ChooseNone()
	assert.Equal(t, 0, s.Units())
	assert.Equal(t, []string{menu.NoneOption}, s.Selected())

	desc, err := s.Describe()
	require.NoError(t, err)
	assert.Equal(t, LabelNoAccompaniments, desc)

	s = mustIncrement(t, s, "Coca")
	assert.False(t, s.NoneChosen(), "counting must clear the None override")
	assert.Equal(t, []string{"Coca"}, s.Selected())
}

func TestWeightedTwoJuicesBlockSodaAndThirdJuice(t *testing.T) {
	s := mustIncrement(t, New(menu.Vodka), "Piña", "Piña")
	assert.Equal(t, 2, s.JuiceCount())
	assert.Equal(t, 4, s.WeightedTotal())

	_, ok := s.Increment("Uva")
	assert.False(t, ok, "third juice")
	_, ok = s.Increment("Mineral")
	assert.False(t, ok, "soda next to two juices")
}

func TestWeightedOneJuiceAllowsTwoSodas(t *testing.T) {
	s := mustIncrement(t, New(menu.Gin), "Mango", "Mineral", "Quina")
	assert.Equal(t, 4, s.WeightedTotal())

	_, ok := s.Increment("Agua")
	assert.False(t, ok, "soda cap with one juice is 2")
	_, ok = s.Increment("Uva")
	assert.False(t, ok, "second juice would exceed the budget")
}

func TestWeightedFiveSodas(t *testing.T) {
	s := mustIncrement(t, New(menu.Vodka), "Mineral", "Agua", "Quina", "Mineral", "Agua")
	assert.Equal(t, 5, s.WeightedTotal())
	_, ok := s.Increment("Quina")
	assert.False(t, ok)
	_, ok = s.Increment("Naranja")
	assert.False(t, ok)
}

func TestWeightedJuiceAfterSodas(t *testing.T) {
	s := mustIncrement(t, New(menu.Vodka), "Mineral", "Mineral", "Mineral")
	assert.True(t, s.CanIncrement("Naranja"), "3 sodas + 1 juice = 5")
	s = mustIncrement(t, s, "Naranja")
	assert.Equal(t, 5, s.WeightedTotal())
	assert.False(t, s.CanIncrement("Naranja"))
}

// TestWeightedInvariantExhaustive walks every reachable selection of the
// weighted rule and checks the budget and juice ceiling hold everywhere.
func TestWeightedInvariantExhaustive(t *testing.T) {
	start := New(menu.Vodka)
	options := start.Options()
	seen := map[string]bool{}
	queue := []Selection{start}
	maxReached := 0

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		key, _ := s.Describe()
		if seen[key] {
			continue
		}
		seen[key] = true

		require.LessOrEqual(t, s.WeightedTotal(), MaxUnits, key)
		require.LessOrEqual(t, s.JuiceCount(), MaxJuices, key)
		if s.WeightedTotal() > maxReached {
			maxReached = s.WeightedTotal()
		}

		for _, opt := range options {
			if next, ok := s.Increment(opt); ok {
				queue = append(queue, next)
			}
		}
	}
	assert.Equal(t, MaxUnits, maxReached)
}

func TestDecrementToZeroRemovesFromSelected(t *testing.T) {
	s := mustIncrement(t, New(menu.Whisky), "Mineral", "Manzana")
	s = s.Decrement("Mineral")
	assert.Equal(t, []string{"Manzana"}, s.Selected())

	unchanged := s.Decrement("Mineral")
	assert.Equal(t, 0, unchanged.Count("Mineral"))
	assert.Equal(t, 1, unchanged.Units())
}

func TestSelectionIsImmutable(t *testing.T) {
	base := mustIncrement(t, New(menu.Cognac), "Coca")
	next := mustIncrement(t, base, "Coca", "Mineral")
	_ = next.ChooseNone()

	assert.Equal(t, 1, base.Count("Coca"))
	assert.Equal(t, 0, base.Count("Mineral"))
	assert.Equal(t, 2, next.Count("Coca"))
	assert.False(t, next.NoneChosen())
}

func TestNoneOnlyCategories(t *testing.T) {
	for _, c := range []menu.LiquorCategory{menu.Sparkling, menu.Digestive} {
		s := New(c)
		assert.Empty(t, s.Controls(), c.Title())
		_, ok := s.Increment(menu.NoneOption)
		assert.False(t, ok)

		_, err := s.Describe()
		assert.ErrorIs(t, err, ErrNothingSelected)

		desc, err := s.ChooseNone().Describe()
		require.NoError(t, err)
		assert.Equal(t, LabelNoAccompaniments, desc)
	}
}

func TestDescribeOrder(t *testing.T) {
	s := mustIncrement(t, New(menu.Vodka), "Uva", "Mineral", "Uva")
	desc, err := s.Describe()
	require.NoError(t, err)
	assert.Equal(t, "Con: 2x Uva, 1x Mineral", desc)

	_, err = New(menu.Vodka).Describe()
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestControlsTrackRule(t *testing.T) {
	s := mustIncrement(t, New(menu.Vodka), "Piña", "Mineral")
	byOption := map[string]Control{}
	for _, c := range s.Controls() {
		byOption[c.Option] = c
	}

	require.Contains(t, byOption, "Piña")
	assert.True(t, byOption["Piña"].Juice)
	assert.True(t, byOption["Piña"].CanDecrement)
	assert.True(t, byOption["Uva"].CanIncrement, "1 juice + 1 soda weighs 3, a second juice reaches 5")
	assert.True(t, byOption["Agua"].CanIncrement, "second soda fits the one-juice cap")
	assert.False(t, byOption["Agua"].CanDecrement)
}

func TestIncrementMatchesLooseSpelling(t *testing.T) {
	s := mustIncrement(t, New(menu.Rum), "mineral")
	assert.Equal(t, 1, s.Count("Mineral"))
	assert.Equal(t, []string{"Mineral"}, s.Selected())

	_, ok := s.Increment("Tonic")
	assert.False(t, ok, "not on the rum list")
}

func TestServing(t *testing.T) {
	s := NewServing(menu.Tequila, menu.TierLiter)
	assert.Equal(t, menu.MessageLiterServed, s.Message())

	_, err := s.Describe()
	assert.ErrorIs(t, err, ErrNothingSelected)

	s, ok := s.Choose("Paloma")
	require.True(t, ok)
	s, ok = s.Choose("Bandera")
	require.True(t, ok)
	desc, err := s.Describe()
	require.NoError(t, err)
	assert.Equal(t, "Con: Bandera", desc)

	_, ok = s.Choose("Quina")
	assert.False(t, ok)
}

func TestServingNone(t *testing.T) {
	s, ok := NewServing(menu.Sparkling, menu.TierCup).Choose(menu.NoneOption)
	require.True(t, ok)
	assert.Equal(t, menu.MessageCupServed, s.Message())
	desc, err := s.Describe()
	require.NoError(t, err)
	assert.Equal(t, LabelNoAccompaniments, desc)
}
