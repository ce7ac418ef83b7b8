package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
)

// CachedSource wraps a NutrientSource with an on-disk response cache.
// Profiles barely change between API snapshots, so caching for weeks is
// safe and keeps re-runs within the free-tier quota.
type CachedSource struct {
	delegate ports.NutrientSource
	dir      string
	ttl      time.Duration
}

// NewCachedSource wraps delegate with a cache rooted at dir.
func NewCachedSource(delegate ports.NutrientSource, dir string, ttl time.Duration) *CachedSource {
	return &CachedSource{delegate: delegate, dir: dir, ttl: ttl}
}

// Name reports the delegate's name.
func (s *CachedSource) Name() string { return s.delegate.Name() }

// Lookup serves from the cache when a fresh entry exists, otherwise asks
// the delegate and stores the result. Cache failures fall through to the
// delegate silently.
func (s *CachedSource) Lookup(ctx context.Context, ingredient string) (*domain.NutritionProfile, error) {
	path := s.entryPath(ingredient)

	if profile := s.load(path); profile != nil {
		return profile, nil
	}

	profile, err := s.delegate.Lookup(ctx, ingredient)
	if err != nil {
		return nil, err
	}

	s.store(path, profile)
	return profile, nil
}

func (s *CachedSource) load(path string) *domain.NutritionProfile {
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.ttl {
		return nil
	}

	//nolint:gosec // Path is derived from the hashed ingredient name
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var profile domain.NutritionProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return &profile
}

func (s *CachedSource) store(path string, profile *domain.NutritionProfile) {
	raw, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return
	}
	_ = os.WriteFile(path, raw, domain.FilePerm)
}

// entryPath keys cache files by source and normalized ingredient name, so
// "Tomatoes, raw" and "tomatoes raw" share an entry.
func (s *CachedSource) entryPath(ingredient string) string {
	sum := xxhash.Sum64String(s.delegate.Name() + ":" + normalizeName(ingredient))
	return filepath.Join(s.dir, fmt.Sprintf("%016x.json", sum))
}

// normalizeName lowercases, strips punctuation, and collapses runs of
// whitespace so cosmetic naming differences hash to the same entry.
func normalizeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
