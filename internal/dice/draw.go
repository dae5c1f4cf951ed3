package dice

import "fmt"

// Pick returns a uniformly random index in [0, n) using a single d(n) roll
func Pick(r Roller, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("cannot pick from %d options", n)
	}
	if n == 1 {
		return 0, nil
	}

	result, err := r.Roll(1, n, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to roll d%d: %w", n, err)
	}
	if len(result.Rolls) != 1 || result.Rolls[0] < 1 || result.Rolls[0] > n {
		return 0, fmt.Errorf("roller returned out of range result for d%d: %v", n, result.Rolls)
	}

	return result.Rolls[0] - 1, nil
}

// Shuffle performs a Fisher-Yates shuffle of n elements, rolling one die
// per position from the back of the slice
func Shuffle(r Roller, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := Pick(r, i+1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// Perm returns a random permutation of [0, n)
func Perm(r Roller, n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	if err := Shuffle(r, n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] }); err != nil {
		return nil, err
	}

	return perm, nil
}
