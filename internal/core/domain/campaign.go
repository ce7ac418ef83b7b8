package domain

import "time"

// CampaignStatus represents the overall status of a campaign run.
type CampaignStatus string

const (
	// CampaignPending indicates the campaign has been planned but not started.
	CampaignPending CampaignStatus = "pending"
	// CampaignRunning indicates batches are currently being processed.
	CampaignRunning CampaignStatus = "running"
	// CampaignCompleted indicates all planned batches finished.
	CampaignCompleted CampaignStatus = "completed"
	// CampaignFailed indicates the run aborted before processing all batches.
	CampaignFailed CampaignStatus = "failed"
)

// BatchStatus represents the outcome of a single batch.
type BatchStatus string

const (
	// BatchPending indicates the batch has not been processed yet.
	BatchPending BatchStatus = "pending"
	// BatchCompleted indicates the batch's fixes were applied and validated.
	BatchCompleted BatchStatus = "completed"
	// BatchRolledBack indicates post-fix validation regressed and the
	// batch's files were restored from backup.
	BatchRolledBack BatchStatus = "rolled-back"
	// BatchSkipped indicates every file in the batch was already processed
	// according to the checkpoint, or nothing was fixable.
	BatchSkipped BatchStatus = "skipped"
	// BatchFailed indicates an I/O or subprocess failure while processing.
	BatchFailed BatchStatus = "failed"
)

// CampaignSpec describes one campaign run: which categories to target and
// how aggressively to batch.
type CampaignSpec struct {
	Name       string
	Categories []Category
	BatchSize  int
	MaxFiles   int
	DryRun     bool

	// NoCheckpoint ignores any saved checkpoint and does not write one,
	// so every targeted file is processed regardless of earlier runs.
	NoCheckpoint bool

	// Validate is the command re-run after each batch to confirm the fixes
	// did not regress the build, e.g. ["npx", "tsc", "--noEmit"].
	Validate []string
}

// DefaultBatchSize is used when a campaign spec does not set one.
const DefaultBatchSize = 10

// Batch is a unit of campaign work: a group of files and the issues
// targeted in them.
type Batch struct {
	Number int
	Files  []InternedString
	Issues []Issue
}

// BatchResult records the outcome of processing one batch.
type BatchResult struct {
	Number       int           `json:"number"`
	Status       BatchStatus   `json:"status"`
	Files        []string      `json:"files"`
	IssuesBefore int           `json:"issuesBefore"`
	IssuesAfter  int           `json:"issuesAfter"`
	FilesChanged int           `json:"filesChanged"`
	Duration     time.Duration `json:"duration"`
	Error        string        `json:"error,omitempty"`
}

// Fixed returns the net number of issues removed by the batch.
// Rolled back batches fix nothing by definition.
func (r BatchResult) Fixed() int {
	if r.Status != BatchCompleted {
		return 0
	}
	if n := r.IssuesBefore - r.IssuesAfter; n > 0 {
		return n
	}
	return 0
}

// RunSummary aggregates a full campaign run for reporting.
type RunSummary struct {
	RunID      string         `json:"runId"`
	Campaign   string         `json:"campaign"`
	Categories []Category     `json:"categories"`
	Status     CampaignStatus `json:"status"`
	DryRun     bool           `json:"dryRun"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Batches    []BatchResult  `json:"batches"`
}

// TotalFixed sums the fixed issues across all batches.
func (s RunSummary) TotalFixed() int {
	total := 0
	for _, b := range s.Batches {
		total += b.Fixed()
	}
	return total
}

// RolledBack counts batches that were restored from backup.
func (s RunSummary) RolledBack() int {
	count := 0
	for _, b := range s.Batches {
		if b.Status == BatchRolledBack {
			count++
		}
	}
	return count
}
