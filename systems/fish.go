package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
)

// FoodLocator gives fish read access to food particles without owning them.
type FoodLocator interface {
	// FirstNear returns the first un-eaten food, in insertion order,
	// closer than radius to (x, y).
	FirstNear(x, y, radius float64) (ecs.Entity, bool)

	// Food resolves a handle to a live food particle.
	// ok is false when the handle is zero or the particle was removed.
	Food(e ecs.Entity) (pos *components.Position, food *components.Food, ok bool)
}

// FishEvent is a bitmask of things that happened to a fish during one step.
type FishEvent uint8

const (
	EventTurned    FishEvent = 1 << iota // Wander timer reversed direction
	EventNoticed                         // Food sensed, reaction delay armed
	EventCommitted                       // Reaction delay elapsed, target set
	EventAte                             // Target reached and eaten
	EventBounced                         // Wall forced a direction change
)

// Has reports whether flag is set.
func (e FishEvent) Has(flag FishEvent) bool {
	return e&flag != 0
}

// FishBehavior runs the per-frame fish update: wandering, noticing food,
// steering toward it, eating, drifting and bouncing off the walls.
type FishBehavior struct {
	rng *rand.Rand

	tankW, tankH float64
	spriteW      float64

	speedMin, speedMax float64
	minSpeed           float64
	initialVY          float64
	turnMin, turnMax   float64
	attraction         float64
	reactMin, reactMax float64
	steer              float64
	eatDistance        float64
	arrive             float64
	seekGain           float64
	vyLimit            float64
	drift              float64
	eatSlowdown        float64
	marginX, marginY   float64
}

// NewFishBehavior caches the fish tunables from cfg.
func NewFishBehavior(cfg *config.Config, rng *rand.Rand) *FishBehavior {
	f := &cfg.Fish
	return &FishBehavior{
		rng:         rng,
		tankW:       cfg.Derived.TankW,
		tankH:       cfg.Derived.TankH,
		spriteW:     float64(cfg.Derived.FishWidth),
		speedMin:    f.SpeedMin,
		speedMax:    f.SpeedMax,
		minSpeed:    f.MinSpeed,
		initialVY:   f.InitialVY,
		turnMin:     f.TurnMin,
		turnMax:     f.TurnMax,
		attraction:  f.AttractionRadius,
		reactMin:    f.ReactionMin,
		reactMax:    f.ReactionMax,
		steer:       f.SteerStrength,
		eatDistance: f.EatDistance,
		arrive:      f.ArriveThreshold,
		seekGain:    f.SeekGain,
		vyLimit:     f.VYLimit,
		drift:       f.Drift,
		eatSlowdown: f.EatSlowdown,
		marginX:     f.SpawnMarginX,
		marginY:     f.SpawnMarginY,
	}
}

// Spawn returns the components for a freshly placed fish.
func (b *FishBehavior) Spawn() (components.Position, components.Velocity, components.Fish) {
	dir := components.FacingLeft
	if b.rng.Float64() < 0.5 {
		dir = components.FacingRight
	}

	pos := components.Position{
		X: RandRange(b.rng, b.marginX, b.tankW-b.marginX),
		Y: RandRange(b.rng, b.marginY, b.tankH-b.marginY),
	}
	vel := components.Velocity{
		X: float64(dir) * RandRange(b.rng, b.speedMin, b.speedMax),
		Y: RandRange(b.rng, -b.initialVY, b.initialVY),
	}
	fish := components.Fish{
		Direction: dir,
		NextTurn:  RandRange(b.rng, b.turnMin, b.turnMax),
	}
	return pos, vel, fish
}

// Step advances one fish by dt milliseconds.
//
// Steering lerps by a fixed factor per call, so chase speed follows the
// call rate rather than dt.
func (b *FishBehavior) Step(pos *components.Position, vel *components.Velocity, fish *components.Fish, foods FoodLocator, dt float64) FishEvent {
	var events FishEvent

	// Resolve the weak target; anything that no longer resolves is dropped
	var targetPos *components.Position
	var target *components.Food
	if fish.HasTarget() {
		tp, tf, ok := foods.Food(fish.Target)
		if ok && !tf.Eaten {
			targetPos, target = tp, tf
		} else {
			fish.ClearTarget()
		}
	}

	if target == nil {
		// Undirected wandering
		fish.TurnTimer += dt
		if fish.TurnTimer > fish.NextTurn {
			vel.X = -vel.X
			fish.Direction = -fish.Direction
			fish.TurnTimer = 0
			fish.NextTurn = RandRange(b.rng, b.turnMin, b.turnMax)
			events |= EventTurned
		}

		// Notice nearby food, then react after a short delay
		if nearby, ok := foods.FirstNear(pos.X, pos.Y, b.attraction); ok {
			if fish.NoticeDelay == 0 {
				fish.NoticeDelay = RandRange(b.rng, b.reactMin, b.reactMax)
				events |= EventNoticed
			} else {
				fish.NoticeDelay -= dt
				if fish.NoticeDelay <= 0 {
					fish.Target = nearby
					fish.NoticeDelay = 0
					targetPos, target, _ = foods.Food(nearby)
					events |= EventCommitted
				}
			}
		}
	}

	if target != nil && !target.Eaten {
		dx := targetPos.X - pos.X
		dy := targetPos.Y - pos.Y
		speed := math.Abs(vel.X)

		desiredVX := Sign(dx) * speed
		if math.Abs(dx) < b.arrive {
			desiredVX = float64(fish.Direction) * speed
		}
		desiredVY := Clamp(dy*b.seekGain, -b.vyLimit, b.vyLimit)

		vel.X = Lerp(vel.X, desiredVX, b.steer)
		vel.Y = Lerp(vel.Y, desiredVY, b.steer)

		if Distance(pos.X, pos.Y, targetPos.X, targetPos.Y) < b.eatDistance {
			target.Eaten = true
			fish.ClearTarget()
			vel.X *= b.eatSlowdown
			vel.Y *= b.eatSlowdown
			events |= EventAte
		}
	}

	// Never stall mid-tank
	if math.Abs(vel.X) < b.minSpeed {
		vel.X = float64(fish.Direction) * b.minSpeed
	}

	pos.X += vel.X
	pos.Y += vel.Y

	// Gentle vertical drift, composed with any steering above
	vel.Y += RandRange(b.rng, -b.drift, b.drift)
	vel.Y = Clamp(vel.Y, -b.vyLimit, b.vyLimit)

	if b.bounceWalls(pos, vel, fish) {
		events |= EventBounced
	}

	pos.Y = Clamp(pos.Y, 2, b.tankH-2)

	return events
}

// bounceWalls flips the fish at the tank walls. Only the wall in front of
// the sprite is checked when facing left; the left-wall branch for a fish
// facing right covers fish that were dragged there by steering.
func (b *FishBehavior) bounceWalls(pos *components.Position, vel *components.Velocity, fish *components.Fish) bool {
	const leftBound = 1.0
	rightBound := b.tankW - 1

	if fish.Direction == components.FacingRight {
		if pos.X+b.spriteW >= rightBound {
			vel.X = -math.Abs(vel.X)
			fish.Direction = components.FacingLeft
			pos.X = rightBound - b.spriteW
			return true
		}
		if pos.X <= leftBound {
			vel.X = math.Abs(vel.X)
			fish.Direction = components.FacingRight
			pos.X = leftBound
			return true
		}
		return false
	}

	if pos.X <= leftBound {
		vel.X = math.Abs(vel.X)
		fish.Direction = components.FacingRight
		return true
	}
	return false
}
