package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"adsync/internal/config"
	"adsync/internal/creatives"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; operators clear the journal database after schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// timeLayout pads fractional seconds to fixed width so the lexicographic
// ORDER BY on started_at matches chronological order. RFC3339Nano trims
// trailing zeros, which would sort "…05.5Z" before "…05Z".
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AssetOutcome is the persisted form of one UploadResult.
type AssetOutcome struct {
	FileID     string
	Name       string
	Variant    int
	Aspect     string
	Kind       string
	Success    bool
	PlatformID string
	Error      string
}

// Run is one recorded sync run.
type Run struct {
	ID         string
	PackageID  string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Failed     int
	Assets     []AssetOutcome
}

// OutcomesFromResults converts pipeline results into persistable outcomes.
func OutcomesFromResults(results []creatives.UploadResult) []AssetOutcome {
	outcomes := make([]AssetOutcome, 0, len(results))
	for _, r := range results {
		outcome := AssetOutcome{
			FileID:     r.Asset.FileID,
			Name:       r.Asset.Name,
			Variant:    r.Asset.Variant,
			Aspect:     string(r.Asset.Aspect),
			Kind:       string(r.Asset.Kind),
			Success:    r.Success,
			PlatformID: r.PlatformID(),
		}
		if r.Err != nil {
			outcome.Error = r.Err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database in the data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun persists a run and its asset outcomes atomically.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sync_runs (id, package_id, started_at, finished_at, succeeded, failed)
         VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.PackageID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Succeeded,
		run.Failed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, asset := range run.Assets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sync_assets (run_id, file_id, name, variant, aspect, kind, success, platform_id, error)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			asset.FileID,
			asset.Name,
			asset.Variant,
			asset.Aspect,
			asset.Kind,
			asset.Success,
			nullableString(asset.PlatformID),
			nullableString(asset.Error),
		); err != nil {
			return fmt.Errorf("insert asset outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, without asset detail.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, package_id, started_at, finished_at, succeeded, failed
         FROM sync_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.PackageID, &started, &finished, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its asset outcomes.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	var started, finished string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, package_id, started_at, finished_at, succeeded, failed
         FROM sync_runs WHERE id = ?`, runID).
		Scan(&run.ID, &run.PackageID, &started, &finished, &run.Succeeded, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT file_id, name, variant, aspect, kind, success, platform_id, error
         FROM sync_assets WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query asset outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome AssetOutcome
		var platformID, errText sql.NullString
		if err := rows.Scan(&outcome.FileID, &outcome.Name, &outcome.Variant,
			&outcome.Aspect, &outcome.Kind, &outcome.Success, &platformID, &errText); err != nil {
			return nil, fmt.Errorf("scan asset outcome: %w", err)
		}
		outcome.PlatformID = platformID.String
		outcome.Error = errText.String
		run.Assets = append(run.Assets, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
