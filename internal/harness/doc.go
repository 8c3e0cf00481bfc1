// Package harness runs scripted order sessions against the engine.
//
// A scenario lists user events in the order the kiosk would send them,
// optional per-step expectations, and assertions on the state left behind.
//
// # Scenario Format
//
//	name: vodka_bottle_order
//	description: "Weighted accompaniments on a vodka bottle"
//	steps:
//	  - event: toggle_order_mode
//	  - event: tap_price
//	    args:
//	      category: VODKA
//	      product: Absolut Azul 750 ML
//	      price: "$1,250.00"
//	      headers: [PRODUCTO, PRECIO BOTELLA, PRECIO LITRO, PRECIO COPA]
//	      column: 1
//	  - event: confirm_drinks
//	    expect:
//	      notices: ["Por favor seleccione al menos un acompañamiento"]
//	  - event: increment_drink
//	    args: {option: Quina}
//	    expect:
//	      error: UNKNOWN_OPTION
//	assertions:
//	  - type: state
//	    value: composing
//	  - type: items
//	    count: 0
//
// Event names and argument fields are the ones engine.DecodeEvent accepts.
//
// # Assertion Types
//
//   - state: engine state ("idle", "composing", "completing")
//   - screen: current screen ("menu", "orders", "history")
//   - items: number of line items in the running order
//   - total: running order total, compared as a decimal
//   - orders: number of saved orders
//   - history: number of deleted orders
//   - effect_count: number of effects of a kind across the session
//   - effect_contains: some effect of a kind whose text contains a string
//
// # Deterministic Testing
//
// Every scenario runs on a fresh engine over an in-memory SQLite store, with
// sequential ids ("id-1", "id-2", ...) and a clock that starts at
// testutil.Epoch and advances one minute per date stamp. The same scenario
// always produces the same trace, which RunWithGolden compares against
// testdata/golden/<name>.golden.
package harness
