package config

// File mirrors the structure of scullery.yaml.
type File struct {
	Version    string              `yaml:"version"`
	Root       string              `yaml:"root"`
	SourceDirs []string            `yaml:"sourceDirs"`
	Commands   CommandsDTO         `yaml:"commands"`
	Campaigns  map[string]Campaign `yaml:"campaigns"`
	Preserve   []string            `yaml:"preserve"`
	Logger     LoggerDTO           `yaml:"logger"`
	Nutrition  NutritionDTO        `yaml:"nutrition"`
	Gates      []GateDTO           `yaml:"gates"`
}

// CommandsDTO holds the analysis commands.
type CommandsDTO struct {
	TypeScript []string `yaml:"typescript"`
	Lint       []string `yaml:"lint"`
}

// Campaign holds per-category batch settings.
type Campaign struct {
	BatchSize int `yaml:"batchSize"`
	MaxFiles  int `yaml:"maxFiles"`
}

// LoggerDTO configures the console migration target.
type LoggerDTO struct {
	Import string `yaml:"import"`
}

// NutritionDTO configures the enrichment clients. API keys are read from
// the environment, never from the file.
type NutritionDTO struct {
	RequestDelay   string   `yaml:"requestDelay"`
	MaxRetries     int      `yaml:"maxRetries"`
	CacheTTL       string   `yaml:"cacheTTL"`
	IngredientDirs []string `yaml:"ingredientDirs"`
}

// GateDTO is one deployment readiness gate.
type GateDTO struct {
	Name        string   `yaml:"name"`
	Cmd         []string `yaml:"cmd"`
	Source      string   `yaml:"source"`
	MaxErrors   int      `yaml:"maxErrors"`
	MaxWarnings int      `yaml:"maxWarnings"`
	Required    bool     `yaml:"required"`
}
