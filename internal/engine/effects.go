package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/mixer"
)

// LineItem is one entry of the running order.
type LineItem = ledger.Item

// Effect describes one display update requested by Dispatch. String renders
// it as a single line (or an indented block) for traces and the CLI.
type Effect interface {
	Kind() string
	String() string
}

// Effects is the ordered list of updates produced by one event.
type Effects []Effect

// Kinds returns the kind of every effect, in order.
func (fx Effects) Kinds() []string {
	out := make([]string, len(fx))
	for i, f := range fx {
		out[i] = f.Kind()
	}
	return out
}

// Notices returns the text of every Notice effect.
func (fx Effects) Notices() []string {
	var out []string
	for _, f := range fx {
		if n, ok := f.(Notice); ok {
			out = append(out, n.Text)
		}
	}
	return out
}

// Has reports whether an effect of the given kind is present.
func (fx Effects) Has(kind string) bool {
	for _, f := range fx {
		if f.Kind() == kind {
			return true
		}
	}
	return false
}

// ModeChanged reports order mode switching on or off.
type ModeChanged struct {
	On bool `json:"on"`
}

// RenderOrder redraws the running order and its total.
type RenderOrder struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// OpenModal opens a customization dialog or the completion confirmation.
type OpenModal struct {
	Modal   Modal  `json:"modal"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// CloseModals closes every open dialog.
type CloseModals struct{}

// RenderDrinkPanel redraws the bottle accompaniment picker.
type RenderDrinkPanel struct {
	Category   string          `json:"category"`
	Rule       string          `json:"rule"`
	Message    string          `json:"message"`
	Weighted   int             `json:"weighted"`
	Max        int             `json:"max"`
	Controls   []mixer.Control `json:"controls"`
	NoneChosen bool            `json:"none_chosen"`
}

// RenderServingPanel redraws the liter or cup mixer picker.
type RenderServingPanel struct {
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Options  []string `json:"options"`
	Chosen   string   `json:"chosen,omitempty"`
}

// ShowInput reveals a free-text input.
type ShowInput struct {
	Field Field `json:"field"`
}

// TermSelected highlights the chosen cooking term.
type TermSelected struct {
	Term  string `json:"term"`
	Label string `json:"label"`
}

// Notice is a blocking message the operator must acknowledge.
type Notice struct {
	Text string `json:"text"`
}

// ShowScreen switches the host to a screen with the given title.
type ShowScreen struct {
	Screen Screen `json:"screen"`
	Title  string `json:"title"`
}

// RenderOrders redraws the saved orders list.
type RenderOrders struct {
	Orders []OrderView `json:"orders"`
	Empty  string      `json:"empty,omitempty"`
}

// RenderHistory redraws the deleted orders list, newest first.
type RenderHistory struct {
	Orders []OrderView `json:"orders"`
	Empty  string      `json:"empty,omitempty"`
}

// LoadContent asks the host to render a menu category.
type LoadContent struct {
	Category string `json:"category"`
}

// OpenSecretPrompt opens the history clear prompt.
type OpenSecretPrompt struct {
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
}

// SecretRejected marks the prompt input as wrong and clears it.
type SecretRejected struct {
	Placeholder string `json:"placeholder"`
}

// CloseSecretPrompt closes the history clear prompt.
type CloseSecretPrompt struct{}

// OrderView is a saved or deleted order laid out for display.
type OrderView struct {
	ID      string     `json:"id"`
	Heading string     `json:"heading"`
	Deleted string     `json:"deleted,omitempty"`
	Items   []ItemView `json:"items"`
	Total   string     `json:"total"`
}

// ItemView is one line of an OrderView.
type ItemView struct {
	Name           string   `json:"name"`
	Price          string   `json:"price"`
	Customizations []string `json:"customizations,omitempty"`
}

func (ModeChanged) Kind() string        { return "mode_changed" }
func (RenderOrder) Kind() string        { return "render_order" }
func (OpenModal) Kind() string          { return "open_modal" }
func (CloseModals) Kind() string        { return "close_modals" }
func (RenderDrinkPanel) Kind() string   { return "render_drink_panel" }
func (RenderServingPanel) Kind() string { return "render_serving_panel" }
func (ShowInput) Kind() string          { return "show_input" }
func (TermSelected) Kind() string       { return "term_selected" }
func (Notice) Kind() string             { return "notice" }
func (ShowScreen) Kind() string         { return "show_screen" }
func (RenderOrders) Kind() string       { return "render_orders" }
func (RenderHistory) Kind() string      { return "render_history" }
func (LoadContent) Kind() string        { return "load_content" }
func (OpenSecretPrompt) Kind() string   { return "open_secret_prompt" }
func (SecretRejected) Kind() string     { return "secret_rejected" }
func (CloseSecretPrompt) Kind() string  { return "close_secret_prompt" }

func (e ModeChanged) String() string {
	if e.On {
		return "mode on"
	}
	return "mode off"
}

func (e RenderOrder) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "order items=%d total=%s", len(e.Items), Money(e.Total))
	for _, it := range e.Items {
		b.WriteString("\n  ")
		b.WriteString(itemLine(it.Name, Money(it.Price), it.Customizations))
	}
	return b.String()
}

func (e OpenModal) String() string {
	if e.Message != "" {
		return fmt.Sprintf("open %s %q: %s", e.Modal, e.Title, e.Message)
	}
	return fmt.Sprintf("open %s %q", e.Modal, e.Title)
}

func (CloseModals) String() string { return "close modals" }

func (e RenderDrinkPanel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "drinks %s %s %d/%d", e.Category, e.Rule, e.Weighted, e.Max)
	if e.NoneChosen {
		b.WriteString(" none")
	}
	for _, c := range e.Controls {
		plus, minus := ".", "."
		if c.CanIncrement {
			plus = "+"
		}
		if c.CanDecrement {
			minus = "-"
		}
		fmt.Fprintf(&b, "\n  %s%s %s x%d", plus, minus, c.Option, c.Count)
	}
	return b.String()
}

func (e RenderServingPanel) String() string {
	chosen := e.Chosen
	if chosen == "" {
		chosen = "-"
	}
	return fmt.Sprintf("serving %s chosen=%s of %s", e.Category, chosen, strings.Join(e.Options, ", "))
}

func (e ShowInput) String() string    { return "input " + e.Field.String() }
func (e TermSelected) String() string { return "term " + e.Label }
func (e Notice) String() string       { return fmt.Sprintf("notice %q", e.Text) }
func (e ShowScreen) String() string   { return fmt.Sprintf("screen %s %q", e.Screen, e.Title) }
func (e RenderOrders) String() string { return renderList("orders", e.Orders, e.Empty) }
func (e RenderHistory) String() string {
	return renderList("history", e.Orders, e.Empty)
}
func (e LoadContent) String() string { return "load " + e.Category }
func (e OpenSecretPrompt) String() string {
	return fmt.Sprintf("secret prompt %q", e.Title)
}
func (e SecretRejected) String() string  { return fmt.Sprintf("secret rejected %q", e.Placeholder) }
func (CloseSecretPrompt) String() string { return "secret prompt closed" }

// Money formats an amount the way the order panel prints it: "$165.50".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func itemLine(name, price string, customizations []string) string {
	if len(customizations) == 0 {
		return name + " " + price
	}
	return name + " " + price + " (" + strings.Join(customizations, "; ") + ")"
}

func renderList(label string, orders []OrderView, empty string) string {
	if len(orders) == 0 {
		return fmt.Sprintf("%s empty %q", label, empty)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s n=%d", label, len(orders))
	for _, o := range orders {
		fmt.Fprintf(&b, "\n  %s [%s]", o.Heading, o.ID)
		if o.Deleted != "" {
			b.WriteString("\n    " + o.Deleted)
		}
		for _, it := range o.Items {
			b.WriteString("\n    " + itemLine(it.Name, it.Price, it.Customizations))
		}
		b.WriteString("\n    " + o.Total)
	}
	return b.String()
}
