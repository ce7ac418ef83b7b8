package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no scullery.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find scullery.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidCategory is returned when a user supplies an unknown category name.
	ErrInvalidCategory = zerr.New("unknown issue category")

	// ErrInvalidPattern is returned when a preservation pattern does not compile.
	ErrInvalidPattern = zerr.New("invalid preservation pattern")

	// ErrCommandSpawnFailed is returned when a subprocess cannot be started.
	// A subprocess exiting non-zero is not an error: compilers exit non-zero
	// whenever issues exist.
	ErrCommandSpawnFailed = zerr.New("failed to spawn command")

	// ErrCheckpointReadFailed is returned when a checkpoint cannot be read.
	ErrCheckpointReadFailed = zerr.New("failed to read checkpoint")

	// ErrCheckpointWriteFailed is returned when a checkpoint cannot be written.
	ErrCheckpointWriteFailed = zerr.New("failed to write checkpoint")

	// ErrBackupFailed is returned when the pre-modification backup cannot be created.
	ErrBackupFailed = zerr.New("failed to back up file")

	// ErrRestoreFailed is returned when restoring a file from backup fails.
	ErrRestoreFailed = zerr.New("failed to restore file from backup")

	// ErrRestoreMismatch is returned when a restored file's content hash does
	// not match the backed-up original.
	ErrRestoreMismatch = zerr.New("restored file does not match backup")

	// ErrUnbalancedEdit is returned when a textual fix would change the
	// brace/bracket/paren balance of a file.
	ErrUnbalancedEdit = zerr.New("fix would unbalance delimiters")

	// ErrCampaignFailed is returned when a campaign run aborts.
	ErrCampaignFailed = zerr.New("campaign run failed")

	// ErrNotReady is returned by the readiness check when a required gate fails.
	ErrNotReady = zerr.New("deployment readiness gates failed")

	// ErrIssuesFound is returned by analysis in exit-code mode when the
	// workspace has outstanding issues.
	ErrIssuesFound = zerr.New("analysis found outstanding issues")

	// ErrRateLimited is returned when the upstream nutrition API keeps
	// responding 429 after all retries.
	ErrRateLimited = zerr.New("nutrition API rate limit exhausted")

	// ErrIngredientNotFound is returned when no upstream food entry matches
	// an ingredient name.
	ErrIngredientNotFound = zerr.New("no nutrition data found for ingredient")

	// ErrNutritionRequestFailed is returned when a nutrition API request fails.
	ErrNutritionRequestFailed = zerr.New("nutrition API request failed")

	// ErrMissingAPIKey is returned when a nutrition source is queried without
	// a configured API key.
	ErrMissingAPIKey = zerr.New("nutrition API key not configured")

	// ErrProfileLiteralNotFound is returned when an ingredient data file has
	// no nutritionalProfile object literal to rewrite.
	ErrProfileLiteralNotFound = zerr.New("nutritionalProfile literal not found")

	// ErrNoIngredients is returned when an enrichment run has nothing to do.
	ErrNoIngredients = zerr.New("no ingredients specified")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileWriteFailed is returned when a source file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")
)
