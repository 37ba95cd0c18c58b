package components

// Position represents an entity's location in tank cells.
// X is the column, Y the row, both real-valued; rendering floors them.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's motion in cells per update call.
type Velocity struct {
	X, Y float64
}
