// Package checkpoint persists resumption progress using a file-per-job
// strategy under the workspace metadata directory.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ProgressStore on the local filesystem.
type Store struct{}

// NewStore creates a checkpoint store. All operations take the workspace
// root explicitly; the store itself is stateless.
func NewStore() *Store {
	return &Store{}
}

// Load reads the checkpoint for a job. Missing checkpoints return nil, nil;
// corrupt ones return an error so the caller can warn before discarding.
func (s *Store) Load(root, name string) (*domain.Progress, error) {
	//nolint:gosec // Path is constructed from trusted root and hashed filename
	data, err := os.ReadFile(s.filename(root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCheckpointReadFailed.Error())
	}

	var progress domain.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCheckpointReadFailed.Error())
	}

	return &progress, nil
}

// Save writes the checkpoint atomically: a temp file in the same directory
// renamed over the target, so an interrupted run never leaves a torn file.
func (s *Store) Save(root string, progress *domain.Progress) error {
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	filename := s.filename(root, progress.Name)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	return nil
}

// Delete removes a job's checkpoint. Deleting a missing checkpoint is fine.
func (s *Store) Delete(root, name string) error {
	err := os.Remove(s.filename(root, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	return nil
}

// filename hashes the job name so arbitrary campaign names map onto safe
// filesystem paths.
func (s *Store) filename(root, name string) string {
	sum := xxhash.Sum64String(name)
	dir := filepath.Join(root, domain.DefaultCheckpointPath())
	return filepath.Join(dir, fmt.Sprintf("%016x.json", sum))
}
