package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
)

func addFood(tank *Tank, x, y float64) ecs.Entity {
	return tank.AddFood(components.Position{X: x, Y: y}, components.Velocity{}, components.Food{})
}

func TestFirstNearInsertionOrder(t *testing.T) {
	tank := NewTank()
	far := addFood(tank, 18, 5)
	eaten := addFood(tank, 11, 5)
	near := addFood(tank, 12, 5)

	_, food, _ := tank.Food(eaten)
	food.Eaten = true

	// far comes first in insertion order even though near is closer
	got, ok := tank.FirstNear(10, 5, 10)
	if !ok || got != far {
		t.Errorf("FirstNear = %v, %v; want the first inserted food", got, ok)
	}

	got, ok = tank.FirstNear(10, 5, 5)
	if !ok || got != near {
		t.Errorf("FirstNear within 5 = %v, %v; want the un-eaten near food", got, ok)
	}

	if _, ok := tank.FirstNear(30, 5, 2); ok {
		t.Error("FirstNear found food out of range")
	}
}

func TestStaleHandles(t *testing.T) {
	tank := NewTank()
	food := addFood(tank, 5, 5)
	fish := tank.AddFish(components.Position{X: 3, Y: 3}, components.Velocity{X: 0.3}, components.Fish{Direction: 1})

	if _, _, ok := tank.Food(ecs.Entity{}); ok {
		t.Error("zero handle resolved")
	}
	if _, _, ok := tank.Food(fish); ok {
		t.Error("fish handle resolved as food")
	}
	if _, _, _, ok := tank.FoodParticle(fish); ok {
		t.Error("fish handle resolved as a food particle")
	}
	if _, _, _, ok := tank.Fish(food); ok {
		t.Error("food handle resolved as fish")
	}
	if _, _, _, ok := tank.Bubble(fish); ok {
		t.Error("fish handle resolved as bubble")
	}
	if _, _, _, ok := tank.Fish(fish); !ok {
		t.Error("live fish handle did not resolve")
	}

	removed := tank.RemoveFoodIf(func(*components.Position, *components.Food) bool { return true })
	if removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	if _, _, ok := tank.Food(food); ok {
		t.Error("removed food still resolves")
	}

	// A fresh entity may reuse the slot, but never the old handle
	fresh := addFood(tank, 6, 6)
	if fresh == food {
		t.Error("new food reuses a stale handle")
	}
	if _, _, ok := tank.Food(food); ok {
		t.Error("stale handle resolves after slot reuse")
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	tank := NewTank()
	for i := 0; i < 5; i++ {
		addFood(tank, float64(2+i), float64(i))
		tank.AddBubble(components.Position{X: float64(2 + i), Y: float64(i) - 1}, components.Velocity{Y: -0.1}, components.Bubble{Glyph: 'o'})
	}

	_, food, _ := tank.Food(tank.FoodEntities()[2])
	food.Eaten = true

	foodExpired := func(pos *components.Position, f *components.Food) bool { return f.Eaten || pos.Y >= 4 }
	bubbleExpired := func(pos *components.Position) bool { return pos.Y <= 0 }

	if n := tank.RemoveFoodIf(foodExpired); n != 2 {
		t.Errorf("first food cleanup removed %d, want 2", n)
	}
	if n := tank.RemoveBubblesIf(bubbleExpired); n != 2 {
		t.Errorf("first bubble cleanup removed %d, want 2", n)
	}
	if n := tank.RemoveFoodIf(foodExpired); n != 0 {
		t.Errorf("second food cleanup removed %d, want 0", n)
	}
	if n := tank.RemoveBubblesIf(bubbleExpired); n != 0 {
		t.Errorf("second bubble cleanup removed %d, want 0", n)
	}

	var ys []float64
	tank.EachFood(func(pos components.Position) { ys = append(ys, pos.Y) })
	want := []float64{0, 1, 3}
	if len(ys) != len(want) {
		t.Fatalf("remaining food y = %v, want %v", ys, want)
	}
	for i := range want {
		if ys[i] != want[i] {
			t.Errorf("remaining food y = %v, want %v", ys, want)
			break
		}
	}
	if tank.BubbleCount() != 3 {
		t.Errorf("bubbles = %d, want 3", tank.BubbleCount())
	}
}

func TestChasingAndSpeeds(t *testing.T) {
	tank := NewTank()
	food := addFood(tank, 5, 5)
	tank.AddFish(components.Position{X: 3, Y: 3}, components.Velocity{X: -0.4}, components.Fish{Direction: -1, Target: food})
	tank.AddFish(components.Position{X: 9, Y: 3}, components.Velocity{X: 0.3}, components.Fish{Direction: 1})

	if got := tank.Chasing(); got != 1 {
		t.Errorf("Chasing = %d, want 1", got)
	}

	speeds := tank.FishSpeeds()
	if len(speeds) != 2 {
		t.Fatalf("speeds = %v, want 2 values", speeds)
	}
	for _, s := range speeds {
		if s != 0.4 && s != 0.3 {
			t.Errorf("unexpected speed %f", s)
		}
	}

	tank.RemoveFoodIf(func(*components.Position, *components.Food) bool { return true })
	if got := tank.Chasing(); got != 0 {
		t.Errorf("Chasing after food removed = %d, want 0", got)
	}
}

func TestElapsedAnchorsOnFirstCall(t *testing.T) {
	tank := NewTank()
	if dt := tank.Elapsed(5000); dt != 0 {
		t.Errorf("first Elapsed = %f, want 0", dt)
	}
	if dt := tank.Elapsed(5040); dt != 40 {
		t.Errorf("Elapsed = %f, want 40", dt)
	}
	tank.MarkFrame(5040)
	if dt := tank.Elapsed(5050); dt != 10 {
		t.Errorf("Elapsed after mark = %f, want 10", dt)
	}
}
