package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/adapters/config"
	"go.alchm.dev/scullery/internal/adapters/logger"
	"go.alchm.dev/scullery/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func newLoader() *config.Loader {
	return config.NewLoader(logger.New())
}

func TestLoad_FullConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
version: "1"
sourceDirs: [src, lib]
commands:
  typescript: [npx, tsc, --noEmit]
  lint: [npx, eslint, ., --format, json]
campaigns:
  type-safety:
    batchSize: 5
    maxFiles: 50
preserve:
  - "^(planet|sign|zodiac)"
  - "^UNUSED_"
logger:
  import: "@/lib/logger"
nutrition:
  requestDelay: 2s
  maxRetries: 5
  cacheTTL: 168h
  ingredientDirs: [src/data/ingredients, src/data/herbs]
gates:
  - name: typescript
    cmd: [npx, tsc, --noEmit]
    source: typescript
    maxErrors: 0
    required: true
  - name: build
    cmd: [yarn, build]
    required: false
`)

	cfg, err := newLoader().Load(root)

	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, []string{"src", "lib"}, cfg.SourceDirs)
	assert.Equal(t, []string{"npx", "tsc", "--noEmit"}, cfg.TypeScriptCommand)
	assert.Equal(t, "@/lib/logger", cfg.LoggerImport)

	settings := cfg.CampaignFor(domain.CategoryTypeSafety)
	assert.Equal(t, 5, settings.BatchSize)
	assert.Equal(t, 50, settings.MaxFiles)

	assert.True(t, cfg.Preserved("planetaryHours"))
	assert.True(t, cfg.Preserved("UNUSED_fallback"))
	assert.False(t, cfg.Preserved("recipeCount"))

	assert.Equal(t, 2*time.Second, cfg.Nutrition.RequestDelay)
	assert.Equal(t, 5, cfg.Nutrition.MaxRetries)
	assert.Equal(t, 168*time.Hour, cfg.Nutrition.CacheTTL)

	require.Len(t, cfg.Gates, 2)
	assert.Equal(t, domain.SourceTypeScript, cfg.Gates[0].Source)
	assert.True(t, cfg.Gates[0].Required)
	assert.Equal(t, domain.Source(""), cfg.Gates[1].Source)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `version: "1"`)

	cfg, err := newLoader().Load(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, cfg.SourceDirs)
	assert.Equal(t, []string{"yarn", "tsc", "--noEmit", "--pretty", "false"}, cfg.TypeScriptCommand)
	assert.Equal(t, []string{"yarn", "eslint", ".", "--format", "json"}, cfg.LintCommand)
	assert.Equal(t, "@/utils/logger", cfg.LoggerImport)
	assert.Equal(t, time.Second, cfg.Nutrition.RequestDelay)
	assert.Equal(t, 3, cfg.Nutrition.MaxRetries)
	assert.Equal(t, []string{"src/data/ingredients"}, cfg.Nutrition.IngredientDirs)
}

func TestLoad_APIKeysFromEnvironment(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `version: "1"`)
	t.Setenv(config.EnvFDCAPIKey, "fdc-key-123")
	t.Setenv(config.EnvSpoonacularAPIKey, "spoon-key-456")

	cfg, err := newLoader().Load(root)

	require.NoError(t, err)
	assert.Equal(t, "fdc-key-123", cfg.Nutrition.FDCAPIKey)
	assert.Equal(t, "spoon-key-456", cfg.Nutrition.SpoonacularAPIKey)
}

func TestDiscoverRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `version: "1"`)
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := newLoader().DiscoverRoot(nested)

	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestDiscoverRoot_NotFound(t *testing.T) {
	_, err := newLoader().DiscoverRoot(t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_UnknownCampaignCategory(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
campaigns:
  cosmic-alignment:
    batchSize: 5
`)

	_, err := newLoader().Load(root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestLoad_InvalidPreservePattern(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
preserve:
  - "([unclosed"
`)

	_, err := newLoader().Load(root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestLoad_UnknownGateSource(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
gates:
  - name: custom
    cmd: [true]
    source: pylint
`)

	_, err := newLoader().Load(root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_MalformedYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "gates: [unbalanced")

	_, err := newLoader().Load(root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
