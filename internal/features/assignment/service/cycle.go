package service

import (
	"slices"

	"secret-santa-backend/internal/utils/random"
)

// BuildCycle maps every id to the id it gives a gift to. The ids are
// shuffled and each one gives to its successor, the last wrapping to the
// first, so for two or more distinct ids the result is a single cycle
// through all of them and nobody draws themselves.
func BuildCycle(src random.Source, ids []int64) map[int64]int64 {
	order := slices.Clone(ids)
	random.Shuffle(src, order)

	pairs := make(map[int64]int64, len(order))
	for i, id := range order {
		pairs[id] = order[(i+1)%len(order)]
	}
	return pairs
}
