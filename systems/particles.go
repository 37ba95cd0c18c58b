package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
)

// FoodPhysics sinks food particles under gravity and drag.
type FoodPhysics struct {
	gravity  float64
	drag     float64
	sway     float64
	swayFreq float64
	floor    float64
	cutoff   float64
}

// NewFoodPhysics caches the food tunables from cfg.
func NewFoodPhysics(cfg *config.Config) *FoodPhysics {
	return &FoodPhysics{
		gravity:  cfg.Food.Gravity,
		drag:     cfg.Food.Drag,
		sway:     cfg.Food.Sway,
		swayFreq: cfg.Food.SwayFreq,
		floor:    cfg.Derived.FoodFloor,
		cutoff:   cfg.Derived.FoodCutoff,
	}
}

// Spawn returns the components for food dropped at column x.
func (p *FoodPhysics) Spawn(x float64) (components.Position, components.Velocity, components.Food) {
	return components.Position{X: x, Y: 0}, components.Velocity{}, components.Food{}
}

// Step advances one particle. now is the global frame time in ms; it drives
// a sway shared by every particle so they drift in phase.
func (p *FoodPhysics) Step(pos *components.Position, vel *components.Velocity, food *components.Food, now float64) {
	if food.Eaten {
		return
	}

	vel.Y += p.gravity
	vel.Y *= p.drag

	pos.Y += vel.Y
	pos.X += math.Sin(now*p.swayFreq) * p.sway

	// Rest on the floor, no bounce
	if pos.Y > p.floor {
		pos.Y = p.floor
		vel.Y = 0
	}
}

// Expired reports whether a particle should be removed on cleanup.
func (p *FoodPhysics) Expired(pos *components.Position, food *components.Food) bool {
	return food.Eaten || pos.Y >= p.cutoff
}

// TerminalVelocity returns the speed at which gravity and drag balance.
func (p *FoodPhysics) TerminalVelocity() float64 {
	if p.drag >= 1 {
		return math.Inf(1)
	}
	return p.gravity * p.drag / (1 - p.drag)
}

// BubblePhysics spawns bubbles near the floor and floats them upward.
type BubblePhysics struct {
	rng      *rand.Rand
	chance   float64
	speedMin float64
	speedMax float64
	glyphs   []rune
	startY   float64
	tankW    float64
}

// NewBubblePhysics caches the bubble tunables from cfg.
func NewBubblePhysics(cfg *config.Config, rng *rand.Rand) *BubblePhysics {
	return &BubblePhysics{
		rng:      rng,
		chance:   cfg.Bubbles.SpawnChance,
		speedMin: cfg.Bubbles.SpeedMin,
		speedMax: cfg.Bubbles.SpeedMax,
		glyphs:   []rune(cfg.Bubbles.Glyphs),
		startY:   cfg.Derived.BubbleStart,
		tankW:    cfg.Derived.TankW,
	}
}

// MaybeSpawn rolls the per-frame spawn chance. ok is false when no bubble
// should be created this frame.
func (p *BubblePhysics) MaybeSpawn() (pos components.Position, vel components.Velocity, bubble components.Bubble, ok bool) {
	if p.rng.Float64() >= p.chance {
		return pos, vel, bubble, false
	}
	return p.Spawn()
}

// Spawn returns the components for a new bubble unconditionally.
func (p *BubblePhysics) Spawn() (components.Position, components.Velocity, components.Bubble, bool) {
	pos := components.Position{
		X: RandRange(p.rng, 2, p.tankW-3),
		Y: p.startY,
	}
	vel := components.Velocity{Y: -RandRange(p.rng, p.speedMin, p.speedMax)}
	bubble := components.Bubble{Glyph: p.glyphs[p.rng.Intn(len(p.glyphs))]}
	return pos, vel, bubble, true
}

// Step rises one bubble. Bubbles have no horizontal motion or acceleration.
func (p *BubblePhysics) Step(pos *components.Position, vel *components.Velocity) {
	pos.Y += vel.Y
}

// Expired reports whether a bubble has reached the surface.
func (p *BubblePhysics) Expired(pos *components.Position) bool {
	return pos.Y <= 0
}
