// Package components defines ECS components for the tank.
package components

import "github.com/mlange-42/ark/ecs"

// Facing directions for fish sprites.
const (
	FacingRight = 1
	FacingLeft  = -1
)

// Fish holds per-fish behavior state.
type Fish struct {
	Direction int     // FacingRight or FacingLeft; selects the sprite
	TurnTimer float64 // ms since the last wander turn
	NextTurn  float64 // ms threshold for the next wander turn

	// Target is a weak handle to a food entity. It never keeps the food
	// alive; a zero, dead, or eaten target counts as no target.
	Target ecs.Entity

	// NoticeDelay counts down (ms) between sensing food and chasing it.
	// Zero means not armed.
	NoticeDelay float64
}

// HasTarget reports whether the fish holds a target handle.
// The handle may still be stale; callers validate it against the world.
func (f *Fish) HasTarget() bool {
	return f.Target != (ecs.Entity{})
}

// ClearTarget drops the target handle.
func (f *Fish) ClearTarget() {
	f.Target = ecs.Entity{}
}

// Food holds per-particle state for sinking food.
type Food struct {
	Eaten bool
}

// Bubble holds per-particle state for rising bubbles.
type Bubble struct {
	Glyph rune
}
