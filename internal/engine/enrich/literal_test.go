package enrich_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/engine/enrich"
)

const fruitsFile = `import type { IngredientMap } from '@/types/ingredients';

export const berries: IngredientMap = {
  'blackberry': {
    name: 'Blackberry',
    elementalProperties: { Water: 0.6, Earth: 0.2, Air: 0.1, Fire: 0.1 },
    nutritionalProfile: {},
  },
  'blueberry': {
    name: 'Blueberry',
    nutritionalProfile: {
      calories: 57,
      protein: 0.7,
    },
  },
};
`

func TestScanIngredients(t *testing.T) {
	names := enrich.ScanIngredients(fruitsFile)

	assert.Equal(t, []string{"blackberry", "blueberry"}, names)
}

func TestScanIngredients_BareIdentifiers(t *testing.T) {
	content := "export const m = {\n  spinach: {\n    name: 'Spinach',\n  },\n};\n"

	assert.Equal(t, []string{"spinach"}, enrich.ScanIngredients(content))
}

func TestHasProfileData(t *testing.T) {
	assert.False(t, enrich.HasProfileData(fruitsFile, "blackberry"))
	assert.True(t, enrich.HasProfileData(fruitsFile, "blueberry"))
	assert.False(t, enrich.HasProfileData(fruitsFile, "missing"))
}

func TestRewriteProfile_FillsEmptyLiteral(t *testing.T) {
	profile := domain.NutritionProfile{
		Calories: 43,
		Protein:  1.4,
		Fiber:    5.3,
		Source:   "fdc",
	}

	out, err := enrich.RewriteProfile(fruitsFile, "blackberry", profile)

	require.NoError(t, err)
	assert.Contains(t, out, "calories: 43,")
	assert.Contains(t, out, "protein: 1.4,")
	assert.Contains(t, out, "fiber: 5.3,")
	assert.Contains(t, out, "source: 'fdc',")
	// The sibling ingredient's literal is untouched.
	assert.Contains(t, out, "calories: 57,")
	// The surrounding entry structure survives.
	assert.Contains(t, out, "elementalProperties: { Water: 0.6, Earth: 0.2, Air: 0.1, Fire: 0.1 },")
	assert.True(t, enrich.HasProfileData(out, "blackberry"))
}

func TestRewriteProfile_PreservesIndentation(t *testing.T) {
	profile := domain.NutritionProfile{Calories: 43}

	out, err := enrich.RewriteProfile(fruitsFile, "blackberry", profile)

	require.NoError(t, err)
	assert.Contains(t, out, "    nutritionalProfile: {\n      calories: 43,")
	assert.Contains(t, out, "\n    },")
}

func TestRewriteProfile_MissingLiteral(t *testing.T) {
	content := "export const m = {\n  'kale': {\n    name: 'Kale',\n  },\n};\n"

	_, err := enrich.RewriteProfile(content, "kale", domain.NutritionProfile{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProfileLiteralNotFound)
}

func TestRewriteProfile_UnknownIngredient(t *testing.T) {
	_, err := enrich.RewriteProfile(fruitsFile, "dragonfruit", domain.NutritionProfile{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProfileLiteralNotFound)
}

func TestRewriteProfile_BracesInsideStringsIgnored(t *testing.T) {
	content := strings.Join([]string{
		"export const m = {",
		"  'fig': {",
		"    description: 'sweet } fruit {',",
		"    nutritionalProfile: {},",
		"  },",
		"};",
	}, "\n")

	out, err := enrich.RewriteProfile(content, "fig", domain.NutritionProfile{Calories: 74})

	require.NoError(t, err)
	assert.Contains(t, out, "calories: 74,")
	assert.Contains(t, out, "description: 'sweet } fruit {',")
}
