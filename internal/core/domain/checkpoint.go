package domain

import "time"

// Progress is the on-disk resumption checkpoint for long-running batch work.
// A key being present means the item has already been handled; there are no
// further invariants. Corrupt checkpoints are discarded, never fatal.
type Progress struct {
	Name                 string                      `json:"name"`
	ProcessedFiles       map[string]bool             `json:"processedFiles"`
	ProcessedIngredients map[string]NutritionProfile `json:"processedIngredients,omitempty"`
	IssuesFixed          int                         `json:"issuesFixed"`
	LastUpdateTime       time.Time                   `json:"lastUpdateTime"`
}

// NewProgress creates an empty checkpoint for the given campaign or job name.
func NewProgress(name string) *Progress {
	return &Progress{
		Name:                 name,
		ProcessedFiles:       make(map[string]bool),
		ProcessedIngredients: make(map[string]NutritionProfile),
	}
}

// MarkFile records a file as handled.
func (p *Progress) MarkFile(path string) {
	if p.ProcessedFiles == nil {
		p.ProcessedFiles = make(map[string]bool)
	}
	p.ProcessedFiles[path] = true
	p.LastUpdateTime = time.Now().UTC()
}

// FileDone reports whether a file has already been handled.
func (p *Progress) FileDone(path string) bool {
	return p.ProcessedFiles[path]
}

// MarkIngredient records an enriched ingredient with its fetched profile.
func (p *Progress) MarkIngredient(key string, profile NutritionProfile) {
	if p.ProcessedIngredients == nil {
		p.ProcessedIngredients = make(map[string]NutritionProfile)
	}
	p.ProcessedIngredients[key] = profile
	p.LastUpdateTime = time.Now().UTC()
}

// IngredientDone reports whether an ingredient has already been enriched.
func (p *Progress) IngredientDone(key string) bool {
	_, ok := p.ProcessedIngredients[key]
	return ok
}
