package engine

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/roach88/techbar/internal/menu"
)

// Event is one user input. Kind is the stable snake_case name used in
// scripts and logs.
type Event interface {
	Kind() string
}

// ToggleOrderMode turns order mode on, or cancels the running order.
type ToggleOrderMode struct{}

// TapPrice is a tap on a price cell.
type TapPrice menu.Tap

// IncrementDrink adds one unit of an accompaniment on the bottle picker.
type IncrementDrink struct {
	Option string `json:"option" yaml:"option"`
}

// DecrementDrink removes one unit of an accompaniment on the bottle picker.
type DecrementDrink struct {
	Option string `json:"option" yaml:"option"`
}

// ChooseNoDrinks selects "Ninguno" on the bottle picker.
type ChooseNoDrinks struct{}

// ChooseServing picks the mixer of a liter or cup.
type ChooseServing struct {
	Option string `json:"option" yaml:"option"`
}

// ConfirmDrinks confirms the bottle, liter or cup picker.
type ConfirmDrinks struct{}

// CancelSelection closes any open picker and drops the product.
type CancelSelection struct{}

// KeepIngredients adds a food product as served.
type KeepIngredients struct{}

// CustomizeIngredients reveals the ingredients-to-remove input.
type CustomizeIngredients struct{}

// ConfirmIngredients adds a food product without the given ingredients.
type ConfirmIngredients struct {
	Text string `json:"text" yaml:"text"`
}

// SelectCookingTerm picks the doneness of a meat dish ("medio",
// "tres-cuartos", "bien-cocido").
type SelectCookingTerm struct {
	Term string `json:"term" yaml:"term"`
}

// ChangeGarnish reveals the garnish modification input.
type ChangeGarnish struct{}

// KeepGarnish adds a meat dish with the standard garnish.
type KeepGarnish struct{}

// ConfirmGarnish adds a meat dish with the given garnish change.
type ConfirmGarnish struct {
	Text string `json:"text" yaml:"text"`
}

// RemoveItem drops a line item from the running order.
type RemoveItem struct {
	ID string `json:"id" yaml:"id"`
}

// CompleteOrder asks to close the running order.
type CompleteOrder struct{}

// AcknowledgeCompletion accepts the completion confirmation and persists the
// order.
type AcknowledgeCompletion struct{}

// ShowOrders opens the saved orders screen. Category and Title describe the
// menu page being left so HideOrders can return to it.
type ShowOrders struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// HideOrders returns from the saved orders screen to the menu.
type HideOrders struct{}

// DeleteOrder moves a saved order into history.
type DeleteOrder struct {
	ID string `json:"id" yaml:"id"`
}

// ShowHistory opens the deleted orders screen.
type ShowHistory struct{}

// HideHistory returns from history to the saved orders screen.
type HideHistory struct{}

// PromptClearHistory opens the secret prompt guarding the history clear.
type PromptClearHistory struct{}

// SubmitHistorySecret submits the secret typed into the prompt.
type SubmitHistorySecret struct {
	Secret string `json:"secret" yaml:"secret"`
}

// DismissPrompt closes the secret prompt without clearing.
type DismissPrompt struct{}

func (ToggleOrderMode) Kind() string       { return "toggle_order_mode" }
func (TapPrice) Kind() string              { return "tap_price" }
func (IncrementDrink) Kind() string        { return "increment_drink" }
func (DecrementDrink) Kind() string        { return "decrement_drink" }
func (ChooseNoDrinks) Kind() string        { return "choose_no_drinks" }
func (ChooseServing) Kind() string         { return "choose_serving" }
func (ConfirmDrinks) Kind() string         { return "confirm_drinks" }
func (CancelSelection) Kind() string       { return "cancel_selection" }
func (KeepIngredients) Kind() string       { return "keep_ingredients" }
func (CustomizeIngredients) Kind() string  { return "customize_ingredients" }
func (ConfirmIngredients) Kind() string    { return "confirm_ingredients" }
func (SelectCookingTerm) Kind() string     { return "select_cooking_term" }
func (ChangeGarnish) Kind() string         { return "change_garnish" }
func (KeepGarnish) Kind() string           { return "keep_garnish" }
func (ConfirmGarnish) Kind() string        { return "confirm_garnish" }
func (RemoveItem) Kind() string            { return "remove_item" }
func (CompleteOrder) Kind() string         { return "complete_order" }
func (AcknowledgeCompletion) Kind() string { return "acknowledge_completion" }
func (ShowOrders) Kind() string            { return "show_orders" }
func (HideOrders) Kind() string            { return "hide_orders" }
func (DeleteOrder) Kind() string           { return "delete_order" }
func (ShowHistory) Kind() string           { return "show_history" }
func (HideHistory) Kind() string           { return "hide_history" }
func (PromptClearHistory) Kind() string    { return "prompt_clear_history" }
func (SubmitHistorySecret) Kind() string   { return "submit_history_secret" }
func (DismissPrompt) Kind() string         { return "dismiss_prompt" }

var eventKinds = map[string]func() any{
	"toggle_order_mode":      func() any { return new(ToggleOrderMode) },
	"tap_price":              func() any { return new(TapPrice) },
	"increment_drink":        func() any { return new(IncrementDrink) },
	"decrement_drink":        func() any { return new(DecrementDrink) },
	"choose_no_drinks":       func() any { return new(ChooseNoDrinks) },
	"choose_serving":         func() any { return new(ChooseServing) },
	"confirm_drinks":         func() any { return new(ConfirmDrinks) },
	"cancel_selection":       func() any { return new(CancelSelection) },
	"keep_ingredients":       func() any { return new(KeepIngredients) },
	"customize_ingredients":  func() any { return new(CustomizeIngredients) },
	"confirm_ingredients":    func() any { return new(ConfirmIngredients) },
	"select_cooking_term":    func() any { return new(SelectCookingTerm) },
	"change_garnish":         func() any { return new(ChangeGarnish) },
	"keep_garnish":           func() any { return new(KeepGarnish) },
	"confirm_garnish":        func() any { return new(ConfirmGarnish) },
	"remove_item":            func() any { return new(RemoveItem) },
	"complete_order":         func() any { return new(CompleteOrder) },
	"acknowledge_completion": func() any { return new(AcknowledgeCompletion) },
	"show_orders":            func() any { return new(ShowOrders) },
	"hide_orders":            func() any { return new(HideOrders) },
	"delete_order":           func() any { return new(DeleteOrder) },
	"show_history":           func() any { return new(ShowHistory) },
	"hide_history":           func() any { return new(HideHistory) },
	"prompt_clear_history":   func() any { return new(PromptClearHistory) },
	"submit_history_secret":  func() any { return new(SubmitHistorySecret) },
	"dismiss_prompt":         func() any { return new(DismissPrompt) },
}

// DecodeEvent builds an event of the given kind. decode fills the event's
// fields from the caller's encoding (a YAML node, a JSON object) and may be
// nil for events without fields.
func DecodeEvent(kind string, decode func(target any) error) (Event, error) {
	f, ok := eventKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	target := f()
	if decode != nil {
		if err := decode(target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
	}
	return reflect.ValueOf(target).Elem().Interface().(Event), nil
}

// EventKinds lists every event kind in alphabetical order.
func EventKinds() []string {
	kinds := make([]string, 0, len(eventKinds))
	for k := range eventKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
