package usecase

import (
	"context"
	"math/rand/v2"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/platform/metrics"
)

// ShortCodeGenerator draws random codes from an alphabet until a free one is found.
type ShortCodeGenerator struct {
	alphabet    []rune
	maxAttempts int
	intN        func(n int) int
}

// NewShortCodeGenerator returns a generator that gives up after maxAttempts draws.
func NewShortCodeGenerator(alphabet string, maxAttempts int) *ShortCodeGenerator {
	return &ShortCodeGenerator{
		alphabet:    []rune(alphabet),
		maxAttempts: maxAttempts,
		intN:        rand.IntN,
	}
}

// Generate returns a code for which taken reports false.
// It returns ErrShortCodeExhausted when every draw was taken.
func (g *ShortCodeGenerator) Generate(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error) {
	for range g.maxAttempts {
		code := g.draw()
		used, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !used {
			return code, nil
		}
		metrics.ShortCodeCollisions.Inc()
	}
	return "", ErrShortCodeExhausted
}

func (g *ShortCodeGenerator) draw() string {
	code := make([]rune, entity.ShortCodeLength)
	for i := range code {
		code[i] = g.alphabet[g.intN(len(g.alphabet))]
	}
	return string(code)
}
