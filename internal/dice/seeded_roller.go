package dice

import (
	"errors"
	"math/rand"
	"sync"
)

// seededRoller implements Roller on top of a private math/rand source so
// that identical seeds replay identical rolls
type seededRoller struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewSeededRoller creates a reproducible roller for the given seed
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewRandomRoller creates a roller seeded from crypto/rand and returns the
// seed so the caller can record it for replay
func NewRandomRoller() (Roller, int64, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, 0, err
	}
	return NewSeededRoller(seed), seed, nil
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll := r.rng.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	return &RollResult{
		Total: total + bonus,
		Rolls: rolls,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}
