// Package telemetry provides tank activity counters, frame timing and CSV output.
package telemetry

// EventType identifies a countable tank event.
type EventType uint8

const (
	EventFoodDropped EventType = iota
	EventFoodEaten
	EventFoodSettled
	EventBubbleSpawned
	EventBubblePopped
	EventTurn
	EventNotice
	EventChase
	EventBounce

	numEventTypes
)

var eventNames = [numEventTypes]string{
	EventFoodDropped:   "food_dropped",
	EventFoodEaten:     "food_eaten",
	EventFoodSettled:   "food_settled",
	EventBubbleSpawned: "bubbles_spawned",
	EventBubblePopped:  "bubbles_popped",
	EventTurn:          "turns",
	EventNotice:        "notices",
	EventChase:         "chases",
	EventBounce:        "bounces",
}

// String returns the snake_case name used in logs and CSV headers.
func (e EventType) String() string {
	if e >= numEventTypes {
		return "unknown"
	}
	return eventNames[e]
}
