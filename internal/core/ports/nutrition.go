package ports

import (
	"context"

	"go.alchm.dev/scullery/internal/core/domain"
)

// NutrientSource defines the interface for nutrition data lookups.
//
//go:generate mockgen -source=nutrition.go -destination=mocks/mock_nutrition.go -package=mocks
type NutrientSource interface {
	// Name identifies the upstream database for logs and profile Source fields.
	Name() string

	// Lookup fetches the nutrition profile for an ingredient name.
	// It returns domain.ErrIngredientNotFound when the upstream has no
	// match, letting callers fall through to the next source.
	Lookup(ctx context.Context, ingredient string) (*domain.NutritionProfile, error)
}
