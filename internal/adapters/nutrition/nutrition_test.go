package nutrition_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/adapters/nutrition"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const fdcSpinachResponse = `{
  "foods": [
    {
      "description": "Spinach chips",
      "dataType": "Branded",
      "foodNutrients": [{"nutrientId": 1008, "value": 450}]
    },
    {
      "description": "Spinach, raw",
      "dataType": "Foundation",
      "foodNutrients": [
        {"nutrientId": 1008, "value": 23},
        {"nutrientId": 1003, "value": 2.9},
        {"nutrientId": 1005, "value": 3.6},
        {"nutrientId": 1090, "value": 79},
        {"nutrientId": 1185, "value": 482.9}
      ]
    }
  ]
}`

func testLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return logger
}

func testConfig(apiKey string) domain.NutritionConfig {
	return domain.NutritionConfig{
		FDCAPIKey:         apiKey,
		SpoonacularAPIKey: apiKey,
		RequestDelay:      0,
		MaxRetries:        2,
	}
}

func TestFDCSource_PrefersFoundationData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/search", r.URL.Path)
		assert.Equal(t, "spinach", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(fdcSpinachResponse))
	}))
	defer server.Close()

	source := nutrition.NewFDCSource(testConfig("test-key"), testLogger(t))
	source.BaseURL = server.URL

	profile, err := source.Lookup(context.Background(), "spinach")

	require.NoError(t, err)
	assert.Equal(t, 23.0, profile.Calories)
	assert.Equal(t, 2.9, profile.Protein)
	assert.Equal(t, 79.0, profile.Magnesium)
	assert.Equal(t, 482.9, profile.VitaminK)
}

func TestFDCSource_NoResultsIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods": []}`))
	}))
	defer server.Close()

	source := nutrition.NewFDCSource(testConfig("test-key"), testLogger(t))
	source.BaseURL = server.URL

	_, err := source.Lookup(context.Background(), "unobtainium")

	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestFDCSource_MissingKeyFails(t *testing.T) {
	source := nutrition.NewFDCSource(testConfig(""), testLogger(t))

	_, err := source.Lookup(context.Background(), "spinach")

	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestFDCSource_RetriesThrottledRequests(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(fdcSpinachResponse))
	}))
	defer server.Close()

	source := nutrition.NewFDCSource(testConfig("test-key"), testLogger(t))
	source.BaseURL = server.URL

	profile, err := source.Lookup(context.Background(), "spinach")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 23.0, profile.Calories)
}

func TestFDCSource_RateLimitBudgetExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := testConfig("test-key")
	cfg.MaxRetries = 0
	source := nutrition.NewFDCSource(cfg, testLogger(t))
	source.BaseURL = server.URL

	_, err := source.Lookup(context.Background(), "spinach")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestSpoonacularSource_TwoStepLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/food/ingredients/search":
			assert.Equal(t, "ghee", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"results": [{"id": 93663, "name": "ghee"}]}`))
		case "/food/ingredients/93663/information":
			assert.Equal(t, "100", r.URL.Query().Get("amount"))
			assert.Equal(t, "grams", r.URL.Query().Get("unit"))
			_, _ = w.Write([]byte(`{
              "nutrition": {
                "nutrients": [
                  {"name": "Calories", "amount": 876, "unit": "kcal"},
                  {"name": "Fat", "amount": 99.5, "unit": "g"},
                  {"name": "Vitamin A", "amount": 840, "unit": "µg"}
                ]
              }
            }`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	source := nutrition.NewSpoonacularSource(testConfig("test-key"), testLogger(t))
	source.BaseURL = server.URL

	profile, err := source.Lookup(context.Background(), "ghee")

	require.NoError(t, err)
	assert.Equal(t, 876.0, profile.Calories)
	assert.Equal(t, 99.5, profile.Fat)
	assert.Equal(t, 840.0, profile.VitaminA)
}

func TestSpoonacularSource_EmptySearchIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	source := nutrition.NewSpoonacularSource(testConfig("test-key"), testLogger(t))
	source.BaseURL = server.URL

	_, err := source.Lookup(context.Background(), "moon dust")

	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestCachedSource_HitSkipsDelegate(t *testing.T) {
	ctrl := gomock.NewController(t)
	delegate := mocks.NewMockNutrientSource(ctrl)
	delegate.EXPECT().Name().Return("fdc").AnyTimes()
	delegate.EXPECT().
		Lookup(gomock.Any(), "spinach").
		Return(&domain.NutritionProfile{Calories: 23, Source: "fdc"}, nil).
		Times(1)

	cached := nutrition.NewCachedSource(delegate, t.TempDir(), time.Hour)

	first, err := cached.Lookup(context.Background(), "spinach")
	require.NoError(t, err)

	// Second call must come from disk; the delegate expectation above
	// allows exactly one lookup.
	second, err := cached.Lookup(context.Background(), "spinach")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCachedSource_NormalizedNamesShareEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	delegate := mocks.NewMockNutrientSource(ctrl)
	delegate.EXPECT().Name().Return("fdc").AnyTimes()
	delegate.EXPECT().
		Lookup(gomock.Any(), "Tomatoes, raw").
		Return(&domain.NutritionProfile{Calories: 18, Source: "fdc"}, nil).
		Times(1)

	cached := nutrition.NewCachedSource(delegate, t.TempDir(), time.Hour)

	first, err := cached.Lookup(context.Background(), "Tomatoes, raw")
	require.NoError(t, err)

	// Punctuation and case differences hit the same cache entry.
	second, err := cached.Lookup(context.Background(), "tomatoes raw")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCachedSource_ExpiredEntryRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	delegate := mocks.NewMockNutrientSource(ctrl)
	delegate.EXPECT().Name().Return("fdc").AnyTimes()
	delegate.EXPECT().
		Lookup(gomock.Any(), "spinach").
		Return(&domain.NutritionProfile{Calories: 23, Source: "fdc"}, nil).
		Times(2)

	dir := t.TempDir()
	cached := nutrition.NewCachedSource(delegate, dir, time.Hour)

	_, err := cached.Lookup(context.Background(), "spinach")
	require.NoError(t, err)

	// Age the cache entry past the TTL.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, entries[0].Name()), stale, stale))

	_, err = cached.Lookup(context.Background(), "spinach")
	require.NoError(t, err)
}

func TestCachedSource_DelegateErrorNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	delegate := mocks.NewMockNutrientSource(ctrl)
	delegate.EXPECT().Name().Return("fdc").AnyTimes()
	delegate.EXPECT().
		Lookup(gomock.Any(), "ghost").
		Return(nil, domain.ErrIngredientNotFound).
		Times(2)

	dir := t.TempDir()
	cached := nutrition.NewCachedSource(delegate, dir, time.Hour)

	_, err := cached.Lookup(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = cached.Lookup(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLimiter_SpacesRequests(t *testing.T) {
	limiter := nutrition.NewLimiter(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	require.NoError(t, limiter.Wait(ctx))
	require.NoError(t, limiter.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestLimiter_CanceledContext(t *testing.T) {
	limiter := nutrition.NewLimiter(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, limiter.Wait(ctx))
	cancel()

	assert.ErrorIs(t, limiter.Wait(ctx), context.Canceled)
}
