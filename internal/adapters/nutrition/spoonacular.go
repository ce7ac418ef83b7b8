package nutrition

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
)

// DefaultSpoonacularBaseURL is the Spoonacular API endpoint.
const DefaultSpoonacularBaseURL = "https://api.spoonacular.com"

// SpoonacularSource implements ports.NutrientSource against Spoonacular.
// It is the fallback for ingredients FDC does not carry, mostly prepared
// and international items.
type SpoonacularSource struct {
	BaseURL string

	apiKey string
	client *client
}

// NewSpoonacularSource creates the Spoonacular client.
func NewSpoonacularSource(cfg domain.NutritionConfig, logger ports.Logger) *SpoonacularSource {
	return &SpoonacularSource{
		BaseURL: DefaultSpoonacularBaseURL,
		apiKey:  cfg.SpoonacularAPIKey,
		client:  newClient(cfg, logger),
	}
}

// Name identifies this source in logs and profile fields.
func (s *SpoonacularSource) Name() string { return "spoonacular" }

type spoonSearchResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

type spoonInfoResponse struct {
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// spoonNutrientNames maps Spoonacular nutrient names onto profile fields.
var spoonNutrientNames = map[string]func(*domain.NutritionProfile, float64){
	"calories":      func(p *domain.NutritionProfile, v float64) { p.Calories = v },
	"protein":       func(p *domain.NutritionProfile, v float64) { p.Protein = v },
	"carbohydrates": func(p *domain.NutritionProfile, v float64) { p.Carbohydrates = v },
	"fat":           func(p *domain.NutritionProfile, v float64) { p.Fat = v },
	"fiber":         func(p *domain.NutritionProfile, v float64) { p.Fiber = v },
	"sugar":         func(p *domain.NutritionProfile, v float64) { p.Sugar = v },
	"sodium":        func(p *domain.NutritionProfile, v float64) { p.Sodium = v },
	"potassium":     func(p *domain.NutritionProfile, v float64) { p.Potassium = v },
	"calcium":       func(p *domain.NutritionProfile, v float64) { p.Calcium = v },
	"iron":          func(p *domain.NutritionProfile, v float64) { p.Iron = v },
	"magnesium":     func(p *domain.NutritionProfile, v float64) { p.Magnesium = v },
	"vitamin c":     func(p *domain.NutritionProfile, v float64) { p.VitaminC = v },
	"vitamin a":     func(p *domain.NutritionProfile, v float64) { p.VitaminA = v },
	"vitamin k":     func(p *domain.NutritionProfile, v float64) { p.VitaminK = v },
	"folate":        func(p *domain.NutritionProfile, v float64) { p.Folate = v },
}

// Lookup resolves the ingredient in two steps: a name search for the
// ingredient ID, then an information request for 100 grams of it.
func (s *SpoonacularSource) Lookup(ctx context.Context, ingredient string) (*domain.NutritionProfile, error) {
	if s.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	searchURL := fmt.Sprintf("%s/food/ingredients/search?query=%s&number=1&apiKey=%s",
		s.BaseURL, url.QueryEscape(ingredient), url.QueryEscape(s.apiKey))

	var search spoonSearchResponse
	if err := s.client.getJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if len(search.Results) == 0 {
		return nil, domain.ErrIngredientNotFound
	}

	infoURL := fmt.Sprintf("%s/food/ingredients/%d/information?amount=100&unit=grams&apiKey=%s",
		s.BaseURL, search.Results[0].ID, url.QueryEscape(s.apiKey))

	var info spoonInfoResponse
	if err := s.client.getJSON(ctx, infoURL, &info); err != nil {
		return nil, err
	}

	profile := &domain.NutritionProfile{}
	for _, nutrient := range info.Nutrition.Nutrients {
		if set, ok := spoonNutrientNames[strings.ToLower(nutrient.Name)]; ok {
			set(profile, nutrient.Amount)
		}
	}
	if profile.Empty() {
		return nil, domain.ErrIngredientNotFound
	}

	return profile, nil
}
