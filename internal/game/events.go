package game

import "pagoda/registry"

// winEvent fires once the target tile appears on the board.
type winEvent struct {
	registry.Entity
}

func (e *winEvent) Check(s *State) bool {
	target := s.Target
	if target <= 0 {
		target = DefaultTarget
	}
	return s.MaxTile() >= target
}

// loseEvent fires when no shift move can change the board.
type loseEvent struct {
	registry.Entity
}

func (e *loseEvent) Check(s *State) bool {
	return !CanMove(s.Board)
}

// scoreEvent fires when the most recent move gained points.
type scoreEvent struct {
	registry.Entity
}

func (e *scoreEvent) Check(s *State) bool {
	return s.LastGain() > 0
}

var (
	_ = registry.Bind(Events, "win", func(registry.NoArgs) Event { return &winEvent{} })
	_ = registry.Bind(Events, "lose", func(registry.NoArgs) Event { return &loseEvent{} })
	_ = registry.Bind(Events, "score", func(registry.NoArgs) Event { return &scoreEvent{} })
)
