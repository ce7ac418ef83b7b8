package domain

// NutritionProfile mirrors the nutritionalProfile object literal stored in the
// web app's ingredient data files. Units follow the USDA FoodData Central
// conventions: grams for macros, milligrams for minerals, micrograms for
// vitamin K and folate.
type NutritionProfile struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
	Potassium     float64 `json:"potassium"`
	Calcium       float64 `json:"calcium"`
	Iron          float64 `json:"iron"`
	Magnesium     float64 `json:"magnesium"`
	VitaminC      float64 `json:"vitaminC"`
	VitaminA      float64 `json:"vitaminA"`
	VitaminK      float64 `json:"vitaminK"`
	Folate        float64 `json:"folate"`

	// Source names the upstream database the profile came from.
	Source string `json:"source,omitempty"`
}

// Empty reports whether the profile carries no data at all.
func (p NutritionProfile) Empty() bool {
	return p == NutritionProfile{Source: p.Source}
}

// Ingredient is one enrichment target: a named ingredient and the data file
// holding its TypeScript object literal.
type Ingredient struct {
	Name string
	File string
}
