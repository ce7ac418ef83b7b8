// Package config loads and validates the scullery.yaml project
// configuration.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables holding the nutrition API credentials. Secrets
// never live in scullery.yaml.
const (
	EnvFDCAPIKey         = "FDC_API_KEY"
	EnvSpoonacularAPIKey = "SPOONACULAR_API_KEY"
)

// Defaults applied when scullery.yaml leaves a field empty.
var (
	defaultSourceDirs        = []string{"src"}
	defaultTypeScriptCommand = []string{"yarn", "tsc", "--noEmit", "--pretty", "false"}
	defaultLintCommand       = []string{"yarn", "eslint", ".", "--format", "json"}
	defaultIngredientDirs    = []string{"src/data/ingredients"}
)

const (
	defaultLoggerImport = "@/utils/logger"
	defaultRequestDelay = time.Second
	defaultMaxRetries   = 3
	defaultCacheTTL     = 30 * 24 * time.Hour
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd until it finds a directory containing
// scullery.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, domain.ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

// Load reads, validates, and defaults the configuration starting from cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, domain.ConfigFileName)
	//nolint:gosec // Path comes from the discovered workspace root
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return l.build(root, &file)
}

func (l *Loader) build(root string, file *File) (*domain.Config, error) {
	if file.Root != "" {
		if filepath.IsAbs(file.Root) {
			root = filepath.Clean(file.Root)
		} else {
			root = filepath.Clean(filepath.Join(root, file.Root))
		}
	}

	cfg := &domain.Config{
		Root:              root,
		SourceDirs:        orDefault(file.SourceDirs, defaultSourceDirs),
		TypeScriptCommand: orDefault(file.Commands.TypeScript, defaultTypeScriptCommand),
		LintCommand:       orDefault(file.Commands.Lint, defaultLintCommand),
		LoggerImport:      file.Logger.Import,
	}
	if cfg.LoggerImport == "" {
		cfg.LoggerImport = defaultLoggerImport
	}

	campaigns, err := buildCampaigns(file.Campaigns)
	if err != nil {
		return nil, err
	}
	cfg.Campaigns = campaigns

	patterns, err := compilePatterns(file.Preserve)
	if err != nil {
		return nil, err
	}
	cfg.PreservationPatterns = patterns

	nutrition, err := buildNutrition(file.Nutrition)
	if err != nil {
		return nil, err
	}
	cfg.Nutrition = nutrition

	gates, err := buildGates(file.Gates)
	if err != nil {
		return nil, err
	}
	cfg.Gates = gates

	return cfg, nil
}

func buildCampaigns(dtos map[string]Campaign) (map[domain.Category]domain.CampaignSettings, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	campaigns := make(map[domain.Category]domain.CampaignSettings, len(dtos))
	for name, dto := range dtos {
		cat, ok := domain.ParseCategory(name)
		if !ok {
			return nil, zerr.With(domain.ErrInvalidCategory, "category", name)
		}
		campaigns[cat] = domain.CampaignSettings{
			BatchSize: dto.BatchSize,
			MaxFiles:  dto.MaxFiles,
		}
	}
	return campaigns, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", pattern)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func buildNutrition(dto NutritionDTO) (domain.NutritionConfig, error) {
	cfg := domain.NutritionConfig{
		FDCAPIKey:         os.Getenv(EnvFDCAPIKey),
		SpoonacularAPIKey: os.Getenv(EnvSpoonacularAPIKey),
		RequestDelay:      defaultRequestDelay,
		MaxRetries:        defaultMaxRetries,
		CacheTTL:          defaultCacheTTL,
		IngredientDirs:    orDefault(dto.IngredientDirs, defaultIngredientDirs),
	}

	if dto.RequestDelay != "" {
		delay, err := time.ParseDuration(dto.RequestDelay)
		if err != nil {
			return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "nutrition.requestDelay")
		}
		cfg.RequestDelay = delay
	}
	if dto.MaxRetries > 0 {
		cfg.MaxRetries = dto.MaxRetries
	}
	if dto.CacheTTL != "" {
		ttl, err := time.ParseDuration(dto.CacheTTL)
		if err != nil {
			return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "nutrition.cacheTTL")
		}
		cfg.CacheTTL = ttl
	}

	return cfg, nil
}

func buildGates(dtos []GateDTO) ([]domain.QualityGate, error) {
	gates := make([]domain.QualityGate, 0, len(dtos))
	for _, dto := range dtos {
		gate := domain.QualityGate{
			Name:        dto.Name,
			Command:     dto.Cmd,
			MaxErrors:   dto.MaxErrors,
			MaxWarnings: dto.MaxWarnings,
			Required:    dto.Required,
		}
		switch dto.Source {
		case "":
			// Exit-code-only gate.
		case string(domain.SourceTypeScript):
			gate.Source = domain.SourceTypeScript
		case string(domain.SourceESLint):
			gate.Source = domain.SourceESLint
		default:
			return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "gate", dto.Name), "source", dto.Source)
		}
		gates = append(gates, gate)
	}
	return gates, nil
}

func orDefault(value, fallback []string) []string {
	if len(value) > 0 {
		return value
	}
	return fallback
}
