package api

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"adsync/internal/creatives"
	"adsync/internal/journal"
	"adsync/internal/logging"
	"adsync/internal/services"
)

// lockFileName guards against concurrent syncs hammering the same ad account.
const lockFileName = "adsync.lock"

// SyncOutcome reports a finished sync run.
type SyncOutcome struct {
	RunID   string
	Results []creatives.UploadResult
	Summary creatives.Summary
}

// RunSync executes the full sync workflow for one package: acquire the sync
// lock, run the pipeline, record the run in the journal, release the lock.
// A held lock means another sync is already running and yields an error
// rather than waiting.
func RunSync(ctx context.Context, rt *Runtime, packageID string, variants ...int) (SyncOutcome, error) {
	lockPath := filepath.Join(rt.Config.Paths.DataDir, lockFileName)
	lock := flock.New(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return SyncOutcome{}, fmt.Errorf("acquire sync lock %s: %w", lockPath, err)
	}
	if !acquired {
		return SyncOutcome{}, services.Wrap(services.ErrValidation, "sync", "lock",
			"another sync is already running", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	started := time.Now().UTC()

	results, err := rt.Pipeline.SyncPackage(ctx, packageID, variants...)
	if err != nil {
		return SyncOutcome{RunID: runID}, err
	}
	summary := creatives.Summarize(results)

	store, err := OpenJournal(rt.Config)
	if err != nil {
		rt.Logger.Warn("journal unavailable, run not recorded",
			logging.String(logging.FieldRunID, runID),
			logging.Error(err))
		return SyncOutcome{RunID: runID, Results: results, Summary: summary}, nil
	}
	defer func() {
		_ = store.Close()
	}()

	run := journal.Run{
		ID:         runID,
		PackageID:  packageID,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		Assets:     journal.OutcomesFromResults(results),
	}
	if err := store.RecordRun(ctx, run); err != nil {
		rt.Logger.Warn("recording sync run failed",
			logging.String(logging.FieldRunID, runID),
			logging.Error(err))
	}

	return SyncOutcome{RunID: runID, Results: results, Summary: summary}, nil
}
