// Package engine implements the order engine of the bar's touch menu.
//
// The engine owns every piece of session state: whether order mode is on,
// the line items of the running order, the product being customized with its
// open picker, and which screen (menu, saved orders, history) is showing.
//
// ARCHITECTURE:
//
// Event In, Effects Out:
// The host translates each touch into an Event and calls Dispatch. Dispatch
// runs to completion, mutates the engine, and returns Effects: descriptions
// of what the display should do (open a picker, re-render the order, show a
// notice). The engine never touches a display surface, so every flow can be
// driven and checked from tests.
//
// Order Lifecycle:
//
//	Idle --toggle--> Composing --complete--> Completing --acknowledge--> Idle
//	                     |  ^                     |
//	                     |  +--(empty: notice)    +--toggle--> Idle
//	                     +--toggle--> Idle
//
// Guard conditions (empty order, no accompaniment, missing cooking term,
// wrong history secret) are answered with Notice or SecretRejected effects and
// leave state unchanged. Dispatch only returns an error for events the touch
// surface cannot produce in the current state (*Error) or for a failing
// ledger.
//
// Single Writer:
// Dispatch must be called from one goroutine. Every event is stamped with a
// sequence number from the engine's logical Clock.
package engine
