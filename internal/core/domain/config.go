package domain

import (
	"regexp"
	"time"
)

// Config is the validated project configuration loaded from scullery.yaml.
type Config struct {
	// Root is the absolute path of the web app workspace.
	Root string

	// SourceDirs are the directories holding TypeScript sources, relative
	// to Root.
	SourceDirs []string

	// TypeScriptCommand produces compiler diagnostics on stdout,
	// e.g. ["npx", "tsc", "--noEmit"].
	TypeScriptCommand []string

	// LintCommand produces ESLint JSON on stdout,
	// e.g. ["npx", "eslint", ".", "--format", "json"].
	LintCommand []string

	// Campaigns holds per-category batch settings.
	Campaigns map[Category]CampaignSettings

	// PreservationPatterns are compiled from the configured allowlist.
	// Unused variables matching any of them are never renamed or removed;
	// the web app keeps astrological state in deliberately dormant
	// variables.
	PreservationPatterns []*regexp.Regexp

	// LoggerImport is the module specifier injected by the console
	// migration, e.g. "@/utils/logger".
	LoggerImport string

	// Nutrition configures the enrichment API clients.
	Nutrition NutritionConfig

	// Gates are the deployment readiness quality gates in evaluation order.
	Gates []QualityGate
}

// CampaignSettings tunes one category's campaign behavior.
type CampaignSettings struct {
	// BatchSize is the number of files fixed between validation runs.
	BatchSize int
	// MaxFiles caps the total files touched in one run; 0 means no cap.
	MaxFiles int
}

// NutritionConfig configures the nutrition data sources.
type NutritionConfig struct {
	// FDCAPIKey authenticates against USDA FoodData Central.
	FDCAPIKey string
	// SpoonacularAPIKey authenticates against the Spoonacular fallback.
	SpoonacularAPIKey string
	// RequestDelay is the minimum spacing between consecutive upstream
	// requests.
	RequestDelay time.Duration
	// MaxRetries caps retries after HTTP 429 responses.
	MaxRetries int
	// CacheTTL bounds the age of on-disk cached responses.
	CacheTTL time.Duration
	// IngredientDirs are the data directories scanned for ingredient
	// files, relative to Root.
	IngredientDirs []string
}

// Preserved reports whether an identifier matches any preservation pattern.
func (c *Config) Preserved(identifier string) bool {
	for _, pattern := range c.PreservationPatterns {
		if pattern.MatchString(identifier) {
			return true
		}
	}
	return false
}

// CampaignFor returns the settings for a category, falling back to defaults.
func (c *Config) CampaignFor(cat Category) CampaignSettings {
	if settings, ok := c.Campaigns[cat]; ok {
		if settings.BatchSize <= 0 {
			settings.BatchSize = DefaultBatchSize
		}
		return settings
	}
	return CampaignSettings{BatchSize: DefaultBatchSize}
}
