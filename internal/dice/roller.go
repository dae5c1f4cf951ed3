package dice

// Roller provides an interface for rolling dice
// This allows us to inject seeded or scripted randomness into draws
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult holds the individual dice and their total
type RollResult struct {
	Total int
	Rolls []int
	Bonus int
	Count int
	Sides int
}
