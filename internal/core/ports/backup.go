package ports

// BackupStore defines the copy-then-restore safety mechanism used before
// mutating source files.
//
//go:generate mockgen -source=backup.go -destination=mocks/mock_backup.go -package=mocks
type BackupStore interface {
	// Backup copies the given files into the backup set identified by runID.
	Backup(root, runID string, paths []string) error

	// Restore copies every file in the backup set back to its original
	// location and verifies the restored content matches byte-for-byte.
	Restore(root, runID string, paths []string) error

	// Remove deletes the backup set after a successful batch.
	Remove(root, runID string) error
}
