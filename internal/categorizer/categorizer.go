// Package categorizer assigns a spend category to parsed transactions.
package categorizer

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/category"
)

// Input is what a Strategy gets to look at.
type Input struct {
	Merchant string
	Text     string
}

// Strategy is one way of categorizing a transaction.
//
// found is false when the strategy has no opinion about the input.
type Strategy interface {
	Categorize(ctx context.Context, in Input) (c category.Category, found bool, err error)
	Name() string
}

// Chain tries its strategies in order and returns the first match.
//
// A failing strategy is logged and skipped, so a Chain never returns an error.
type Chain []Strategy

func (c Chain) Name() string {
	return "chain"
}

func (c Chain) Categorize(ctx context.Context, in Input) (category.Category, bool, error) {
	for _, s := range c {
		result, found, err := s.Categorize(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("strategy", s.Name()).Msg("categorization strategy failed, skipping")
			continue
		}

		if found {
			log.Debug().Str("strategy", s.Name()).Str("merchant", in.Merchant).Str("category", string(result)).Msg("categorized")
			return result, true, nil
		}
	}

	return "", false, nil
}

// Categorize runs s and falls back to Others when s finds nothing or fails.
func Categorize(ctx context.Context, s Strategy, in Input) category.Category {
	result, found, err := s.Categorize(ctx, in)
	if err != nil {
		log.Warn().Err(err).Str("strategy", s.Name()).Msg("categorization failed, using fallback")
		return category.Others
	}

	if !found {
		return category.Others
	}

	return result
}
