package harness

import (
	"fmt"
	"strings"
)

// Step is one dispatched event in the trace.
type Step struct {
	Seq     int64    `json:"seq"`
	Event   string   `json:"event"`
	Effects []string `json:"effects,omitempty"`
	// Error is the engine error code when the event was refused.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Snapshot is the session state after the last step.
type Snapshot struct {
	State   string `json:"state"`
	Screen  string `json:"screen"`
	Items   int    `json:"items"`
	Total   string `json:"total"`
	Orders  int    `json:"orders"`
	History int    `json:"history"`
}

func (s Snapshot) String() string {
	return fmt.Sprintf("state=%s screen=%s items=%d total=%s orders=%d history=%d",
		s.State, s.Screen, s.Items, s.Total, s.Orders, s.History)
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	Trace  []Step   `json:"trace"`
	Errors []string `json:"errors,omitempty"`
	Final  Snapshot `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []Step{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends a step to the trace.
func (r *Result) AddStep(s Step) {
	r.Trace = append(r.Trace, s)
}

// Render lays the trace out as text, one block per step. Multi-line effects
// keep their own indentation below the effect's first line.
func (r *Result) Render(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s\n", name)
	for i, s := range r.Trace {
		fmt.Fprintf(&b, "step %d %s\n", i+1, s.Event)
		switch {
		case s.Error != "":
			fmt.Fprintf(&b, "  error %s: %s\n", s.Error, s.Message)
		case len(s.Effects) == 0:
			b.WriteString("  (no effects)\n")
		}
		for _, fx := range s.Effects {
			for _, line := range strings.Split(fx, "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	fmt.Fprintf(&b, "final %s\n", r.Final)
	return b.String()
}
