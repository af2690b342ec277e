package service

import (
	"fmt"

	"secret-santa-backend/internal/common/validation"
	"secret-santa-backend/internal/utils/random"
)

const (
	minSuffix = 100
	maxSuffix = 999

	// randomDraws bounds the rejection sampling before Pick falls back to
	// choosing among the free codes directly.
	randomDraws = 32
)

// Generator produces codes of the form <prefix><100..999>. The code space is
// deliberately small so codes stay easy to relay by voice or chat: at most
// 900 codes exist per prefix.
type Generator struct {
	prefix string
	src    random.Source
}

// NewGenerator upper-cases prefix, matching how redeemed codes are normalized.
func NewGenerator(prefix string, src random.Source) *Generator {
	return &Generator{prefix: validation.NormalizeCode(prefix), src: src}
}

func (g *Generator) Prefix() string {
	return g.prefix
}

// Capacity is the number of distinct codes the generator can produce.
func (g *Generator) Capacity() int {
	return maxSuffix - minSuffix + 1
}

// Next draws a random code, which may already be taken.
func (g *Generator) Next() string {
	return g.format(minSuffix + g.src.IntN(g.Capacity()))
}

// Pick returns a random code absent from taken, or false when every code
// is taken.
func (g *Generator) Pick(taken map[string]struct{}) (string, bool) {
	for i := 0; i < randomDraws; i++ {
		code := g.Next()
		if _, ok := taken[code]; !ok {
			return code, true
		}
	}

	free := make([]string, 0, g.Capacity())
	for n := minSuffix; n <= maxSuffix; n++ {
		code := g.format(n)
		if _, ok := taken[code]; !ok {
			free = append(free, code)
		}
	}
	if len(free) == 0 {
		return "", false
	}
	return free[g.src.IntN(len(free))], true
}

func (g *Generator) format(n int) string {
	return fmt.Sprintf("%s%03d", g.prefix, n)
}
