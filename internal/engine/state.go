package engine

import "fmt"

// State is the order lifecycle state.
type State int

const (
	// StateIdle: order mode off; price taps are inert.
	StateIdle State = iota
	// StateComposing: order mode on; taps build the order.
	StateComposing
	// StateCompleting: the completion confirmation is showing.
	StateCompleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComposing:
		return "composing"
	case StateCompleting:
		return "completing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Screen is the view the host is showing.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenOrders
	ScreenHistory
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenOrders:
		return "orders"
	case ScreenHistory:
		return "history"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Modal names the dialog an OpenModal effect asks for.
type Modal int

const (
	ModalDrinks Modal = iota
	ModalServing
	ModalFood
	ModalMeat
	ModalCompletion
)

func (m Modal) String() string {
	switch m {
	case ModalDrinks:
		return "drinks"
	case ModalServing:
		return "serving"
	case ModalFood:
		return "food"
	case ModalMeat:
		return "meat"
	case ModalCompletion:
		return "completion"
	}
	return fmt.Sprintf("Modal(%d)", int(m))
}

// MarshalText renders the modal name in JSON output.
func (m Modal) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Field names a free-text input inside a modal.
type Field int

const (
	FieldIngredients Field = iota
	FieldGarnish
)

func (f Field) String() string {
	switch f {
	case FieldIngredients:
		return "ingredients"
	case FieldGarnish:
		return "garnish"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// MarshalText renders the field name in JSON output.
func (f Field) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// MarshalText renders the screen name in JSON output.
func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
