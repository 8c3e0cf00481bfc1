package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/techbar/internal/engine"
)

// Scenario is a scripted order session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Steps are dispatched in order on a fresh engine.
	Steps []ScriptStep `yaml:"steps"`

	// Assertions validate the state left after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ScriptStep is one user event.
type ScriptStep struct {
	// Event is the event kind, e.g. "tap_price".
	Event string `yaml:"event"`

	// Args holds the event fields. Unknown fields are rejected.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect checks the outcome of this step only.
	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepExpect checks a single dispatch.
type StepExpect struct {
	// Kinds is the exact list of effect kinds, in order.
	Kinds []string `yaml:"kinds,omitempty"`

	// Notices is the exact list of notice texts.
	Notices []string `yaml:"notices,omitempty"`

	// Error is the engine error code the event must be refused with.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final session state or the whole trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Value is the expected state, screen or total.
	Value string `yaml:"value,omitempty"`

	// Count is the expected number of items, orders, history entries or
	// effects.
	Count int `yaml:"count,omitempty"`

	// Kind is the effect kind (effect_count, effect_contains).
	Kind string `yaml:"kind,omitempty"`

	// Text must appear in the effect text (effect_contains).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertState          = "state"
	AssertScreen         = "screen"
	AssertItems          = "items"
	AssertTotal          = "total"
	AssertOrders         = "orders"
	AssertHistory        = "history"
	AssertEffectCount    = "effect_count"
	AssertEffectContains = "effect_contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	kinds := engine.EventKinds()
	for i, step := range s.Steps {
		if step.Event == "" {
			return fmt.Errorf("steps[%d]: event is required", i)
		}
		if _, found := slices.BinarySearch(kinds, step.Event); !found {
			return fmt.Errorf("steps[%d]: unknown event %q", i, step.Event)
		}
		if _, err := decodeStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertState, AssertScreen, AssertTotal:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertItems, AssertOrders, AssertHistory:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertEffectCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for effect_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for effect_count", index)
		}
	case AssertEffectContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for effect_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// decodeStep builds the engine event of a step. Args are re-encoded and
// decoded strictly so misspelled fields fail instead of being dropped.
func decodeStep(step ScriptStep) (engine.Event, error) {
	if len(step.Args) == 0 {
		return engine.DecodeEvent(step.Event, nil)
	}
	data, err := yaml.Marshal(step.Args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	return engine.DecodeEvent(step.Event, func(target any) error {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		return decoder.Decode(target)
	})
}
