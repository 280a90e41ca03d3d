// Package random provides unbiased selection helpers driven by an injected
// dice roller, so every random choice in a run can be replayed from a seed.
package random

import (
	"math/rand/v2"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

// pcgRoller implements dice.Roller on a PCG generator. It is not safe for
// concurrent use; a seed run owns exactly one.
type pcgRoller struct {
	rng *rand.Rand
}

// NewRoller returns a dice.Roller seeded with seed. A zero seed uses the
// current time, so two unseeded runs draw different ids.
func NewRoller(seed uint64) dice.Roller {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) // nolint:gosec // wall clock is non-negative
	}
	return &pcgRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), // nolint:gosec // not used for secrets
	}
}

// Roll returns a uniform value in [1, size]
func (r *pcgRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *pcgRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Shuffle returns a new slice holding every element of items exactly once in
// uniformly random order (Fisher-Yates, last index down to 1). items is not
// modified.
func Shuffle[T any](roller dice.Roller, items []T) ([]T, error) {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		roll, err := roller.Roll(i + 1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll shuffle index")
		}
		j := roll - 1
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled, nil
}

// Pick returns count elements of a fresh shuffle of items. Elements never
// repeat within one call; separate calls are independent.
func Pick[T any](roller dice.Roller, items []T, count int) ([]T, error) {
	shuffled, err := Shuffle(roller, items)
	if err != nil {
		return nil, err
	}
	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled, nil
}

// SampleUnique draws uniform integers in [1, upperInclusive] until count
// distinct values have been seen and returns them in draw order.
//
// The caller must ensure upperInclusive >= count; otherwise this never
// returns.
func SampleUnique(roller dice.Roller, count, upperInclusive int) ([]int, error) {
	seen := make(map[int]struct{}, count)
	ids := make([]int, 0, count)

	for len(ids) < count {
		id, err := roller.Roll(upperInclusive)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll id")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}
