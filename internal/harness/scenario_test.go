package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/techbar/internal/engine"
)

func TestParseScenarioDecodesEvents(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: decode
description: "Event args decode into engine events"
steps:
  - event: tap_price
    args:
      category: VODKA
      product: Absolut
      price: "$1,000.00"
      headers: [PRODUCTO, PRECIO BOTELLA]
      column: 1
  - event: increment_drink
    args: {option: Uva}
  - event: confirm_drinks
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 3)

	ev, err := decodeStep(s.Steps[0])
	require.NoError(t, err)
	tap, ok := ev.(engine.TapPrice)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, "$1,000.00", tap.Price)
	assert.Equal(t, []string{"PRODUCTO", "PRECIO BOTELLA"}, tap.Headers)

	ev, err = decodeStep(s.Steps[1])
	require.NoError(t, err)
	assert.Equal(t, engine.IncrementDrink{Option: "Uva"}, ev)

	ev, err = decodeStep(s.Steps[2])
	require.NoError(t, err)
	assert.Equal(t, engine.ConfirmDrinks{}, ev)
}

func TestParseScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing name",
			doc:  "description: x\nsteps: [{event: toggle_order_mode}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			doc:  "name: x\nsteps: [{event: toggle_order_mode}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			doc:  "name: x\ndescription: y\nsteps: []\n",
			want: "steps list is required",
		},
		{
			name: "unknown top-level field",
			doc:  "name: x\ndescription: y\nstep: []\n",
			want: "field step not found",
		},
		{
			name: "unknown event",
			doc:  "name: x\ndescription: y\nsteps: [{event: order_pizza}]\n",
			want: `unknown event "order_pizza"`,
		},
		{
			name: "misspelled arg",
			doc:  "name: x\ndescription: y\nsteps: [{event: increment_drink, args: {opton: Uva}}]\n",
			want: "field opton not found",
		},
		{
			name: "unknown assertion",
			doc:  "name: x\ndescription: y\nsteps: [{event: toggle_order_mode}]\nassertions: [{type: vibes}]\n",
			want: `unknown assertion type "vibes"`,
		},
		{
			name: "state without value",
			doc:  "name: x\ndescription: y\nsteps: [{event: toggle_order_mode}]\nassertions: [{type: state}]\n",
			want: "value is required for state",
		},
		{
			name: "effect count without kind",
			doc:  "name: x\ndescription: y\nsteps: [{event: toggle_order_mode}]\nassertions: [{type: effect_count, count: 1}]\n",
			want: "kind is required for effect_count",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: s\ndescription: d\nsteps: [{event: show_history}]\n"), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "s", s.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenariosReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: a\ndescription: d\nsteps: [{event: show_history}]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: b\n"), 0o644))

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.yaml")
}
