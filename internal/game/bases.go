// Package game implements the square-merge puzzle game on top of the
// registry: moves, input methods, text packs, and game events are all
// named children of base capabilities, resolved by name at game setup.
package game

import "pagoda/registry"

// Move is a board interaction. Apply mutates the state's board in place and
// reports whether anything changed.
type Move interface {
	registry.Named
	Apply(s *State) bool
}

// MoveMethod decodes raw user input into the name of a registered Move.
type MoveMethod interface {
	registry.Named
	Decode(input string) (string, bool)
}

// TextMethod supplies every user-visible string in the game by entry key.
type TextMethod interface {
	registry.Named
	Text(entry string) string
}

// Event is a condition checked against the state after every advance.
type Event interface {
	registry.Named
	Check(s *State) bool
}

// Base tables. One per capability; children register in this package's init
// and third parties may add their own.
var (
	Moves = registry.NewBase[Move, registry.NoArgs](
		registry.WithDescription("Type of possible interactions for the game."))

	MoveMethods = registry.NewBase[MoveMethod, registry.NoArgs](
		registry.WithDescription("The method to perform different moves."))

	TextMethods = registry.NewBase[TextMethod, registry.NoArgs](
		registry.WithDescription("Versions of all text contents in the game."))

	Events = registry.NewBase[Event, registry.NoArgs](
		registry.WithDescription("Different events in the game."))
)
