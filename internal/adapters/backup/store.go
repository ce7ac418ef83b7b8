// Package backup implements the copy-then-restore safety net used before
// campaigns mutate source files.
package backup

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BackupStore on the local filesystem. Each run gets
// its own directory under .scullery/backups keyed by run ID; files keep
// their relative paths inside it.
type Store struct{}

// NewStore creates a backup store.
func NewStore() *Store {
	return &Store{}
}

// Backup copies each file into the run's backup set.
func (s *Store) Backup(root, runID string, paths []string) error {
	for _, rel := range paths {
		src := filepath.Join(root, rel)
		dst := filepath.Join(s.runDir(root, runID), rel)

		data, err := os.ReadFile(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBackupFailed.Error()), "file", rel)
		}
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBackupFailed.Error()), "file", rel)
		}
		if err := os.WriteFile(dst, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBackupFailed.Error()), "file", rel)
		}
	}
	return nil
}

// Restore copies each file in the set back to its original location and
// verifies the restored bytes hash identically to the backup.
func (s *Store) Restore(root, runID string, paths []string) error {
	for _, rel := range paths {
		src := filepath.Join(s.runDir(root, runID), rel)
		dst := filepath.Join(root, rel)

		data, err := os.ReadFile(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRestoreFailed.Error()), "file", rel)
		}
		if err := os.WriteFile(dst, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRestoreFailed.Error()), "file", rel)
		}

		restored, err := os.ReadFile(dst)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRestoreFailed.Error()), "file", rel)
		}
		if hash(restored) != hash(data) {
			return zerr.With(domain.ErrRestoreMismatch, "file", rel)
		}
	}
	return nil
}

// Remove deletes the run's backup set.
func (s *Store) Remove(root, runID string) error {
	return os.RemoveAll(s.runDir(root, runID))
}

func (s *Store) runDir(root, runID string) string {
	return filepath.Join(root, domain.DefaultBackupPath(), runID)
}

func hash(data []byte) string {
	sum := xxhash.Sum64(data)
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(sum >> (8 * (7 - i)))
	}
	return hex.EncodeToString(buf[:])
}
