// Package menu holds the fixed vocabulary of the bar menu: liquor categories,
// price tiers, customization protocols and the accompaniment option lists.
//
// Everything here is a pure function over closed enumerations. The order
// engine asks this package which protocol a tapped price cell belongs to and
// which options to offer; it never stores state.
//
// Labels are the Spanish strings printed on the physical menu and are
// compared after NFC normalisation and Spanish upper-casing, so "Piña" typed
// with a combining tilde still matches.
package menu
