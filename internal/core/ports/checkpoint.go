package ports

import "go.alchm.dev/scullery/internal/core/domain"

// ProgressStore defines the interface for persisting resumption checkpoints.
//
//go:generate mockgen -source=checkpoint.go -destination=mocks/mock_checkpoint.go -package=mocks
type ProgressStore interface {
	// Load retrieves the checkpoint for the given job name.
	// Returns nil, nil if not found. Unreadable or corrupt checkpoints
	// return an error so callers can warn before starting fresh; a lost
	// checkpoint only costs re-processing, it must never abort a run.
	Load(root, name string) (*domain.Progress, error)

	// Save persists the checkpoint.
	Save(root string, progress *domain.Progress) error

	// Delete removes the checkpoint for the given job name.
	Delete(root, name string) error
}
