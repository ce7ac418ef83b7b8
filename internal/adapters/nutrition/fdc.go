package nutrition

import (
	"context"
	"fmt"
	"net/url"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
)

// DefaultFDCBaseURL is the USDA FoodData Central API endpoint.
const DefaultFDCBaseURL = "https://api.nal.usda.gov/fdc/v1"

// FDC nutrient numbers, per the FoodData Central data dictionary.
var fdcNutrientIDs = map[int]func(*domain.NutritionProfile, float64){
	1008: func(p *domain.NutritionProfile, v float64) { p.Calories = v },
	1003: func(p *domain.NutritionProfile, v float64) { p.Protein = v },
	1005: func(p *domain.NutritionProfile, v float64) { p.Carbohydrates = v },
	1004: func(p *domain.NutritionProfile, v float64) { p.Fat = v },
	1079: func(p *domain.NutritionProfile, v float64) { p.Fiber = v },
	2000: func(p *domain.NutritionProfile, v float64) { p.Sugar = v },
	1093: func(p *domain.NutritionProfile, v float64) { p.Sodium = v },
	1092: func(p *domain.NutritionProfile, v float64) { p.Potassium = v },
	1087: func(p *domain.NutritionProfile, v float64) { p.Calcium = v },
	1089: func(p *domain.NutritionProfile, v float64) { p.Iron = v },
	1090: func(p *domain.NutritionProfile, v float64) { p.Magnesium = v },
	1162: func(p *domain.NutritionProfile, v float64) { p.VitaminC = v },
	1106: func(p *domain.NutritionProfile, v float64) { p.VitaminA = v },
	1185: func(p *domain.NutritionProfile, v float64) { p.VitaminK = v },
	1177: func(p *domain.NutritionProfile, v float64) { p.Folate = v },
}

// dataTypePreference ranks FDC data types; curated entries beat branded
// products with marketing names.
var dataTypePreference = map[string]int{
	"Foundation":     0,
	"SR Legacy":      1,
	"Survey (FNDDS)": 2,
	"Branded":        3,
}

// FDCSource implements ports.NutrientSource against FoodData Central.
type FDCSource struct {
	BaseURL string

	apiKey string
	client *client
}

// NewFDCSource creates the FDC client.
func NewFDCSource(cfg domain.NutritionConfig, logger ports.Logger) *FDCSource {
	return &FDCSource{
		BaseURL: DefaultFDCBaseURL,
		apiKey:  cfg.FDCAPIKey,
		client:  newClient(cfg, logger),
	}
}

// Name identifies this source in logs and profile fields.
func (s *FDCSource) Name() string { return "fdc" }

type fdcSearchResponse struct {
	Foods []fdcFood `json:"foods"`
}

type fdcFood struct {
	Description   string        `json:"description"`
	DataType      string        `json:"dataType"`
	FoodNutrients []fdcNutrient `json:"foodNutrients"`
}

type fdcNutrient struct {
	NutrientID int     `json:"nutrientId"`
	Value      float64 `json:"value"`
}

// Lookup searches FDC for the ingredient and maps the best match's
// nutrients onto a profile. Values are per 100g, matching the search
// endpoint's normalization.
func (s *FDCSource) Lookup(ctx context.Context, ingredient string) (*domain.NutritionProfile, error) {
	if s.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/foods/search?query=%s&pageSize=5&api_key=%s",
		s.BaseURL, url.QueryEscape(ingredient), url.QueryEscape(s.apiKey))

	var resp fdcSearchResponse
	if err := s.client.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Foods) == 0 {
		return nil, domain.ErrIngredientNotFound
	}

	best := resp.Foods[0]
	for _, food := range resp.Foods[1:] {
		if dataTypeRank(food.DataType) < dataTypeRank(best.DataType) {
			best = food
		}
	}

	profile := &domain.NutritionProfile{}
	for _, nutrient := range best.FoodNutrients {
		if set, ok := fdcNutrientIDs[nutrient.NutrientID]; ok {
			set(profile, nutrient.Value)
		}
	}
	if profile.Empty() {
		return nil, domain.ErrIngredientNotFound
	}

	return profile, nil
}

func dataTypeRank(dataType string) int {
	if rank, ok := dataTypePreference[dataType]; ok {
		return rank
	}
	return len(dataTypePreference)
}
