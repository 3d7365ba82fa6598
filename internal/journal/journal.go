package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/celianv/vikibot/internal/model"
)

// Journal provides SQLite-based storage for run outcomes and seen-page
// tracking.
//
// Design decision: one database file for all tasks rather than a file
// per task. The history command reads across tasks, and a single file
// keeps backup and cleanup to one artifact.
type Journal struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Journal behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; the watch
	// command reads the journal while a maintenance run writes it.
	EnableWAL bool
}

// DefaultOptions returns the default journal options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Journal in the specified directory.
func Open(dir string, opts Options) (*Journal, error) {
	dbPath := filepath.Join(dir, "vikibot.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("journal not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check journal path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create
	// a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	j := &Journal{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := j.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// createTables creates the journal schema if it doesn't exist.
func (j *Journal) createTables() error {
	schema := `
	-- Runs record each maintenance command invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		command TEXT NOT NULL,
		started DATETIME NOT NULL,
		finished DATETIME NOT NULL,
		dry_run INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);

	-- Outcomes record what happened to each page in a run
	CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		action TEXT NOT NULL,
		detail TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id);

	-- Seen pages track what each task already handled across runs
	CREATE TABLE IF NOT EXISTS seen_pages (
		task TEXT NOT NULL,
		title TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (task, title)
	);

	-- State is a small key-value store for cross-run data
	CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := j.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a finished run report with all its page outcomes.
func (j *Journal) SaveRun(ctx context.Context, report *model.RunReport) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dryRun := 0
	if report.DryRun {
		dryRun = 1
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (command, started, finished, dry_run) VALUES (?, ?, ?, ?)`,
		report.Command,
		report.Started.UTC().Format(time.RFC3339),
		report.Finished.UTC().Format(time.RFC3339),
		dryRun,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	for _, o := range report.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, title, action, detail, error) VALUES (?, ?, ?, ?, ?)`,
			runID, o.Title, o.Action.String(), o.Detail, o.Err,
		); err != nil {
			return fmt.Errorf("failed to insert outcome for %s: %w", o.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first, with their
// outcomes attached. A command filter of "" matches all commands.
func (j *Journal) RecentRuns(ctx context.Context, command string, limit int) ([]*model.RunReport, error) {
	query := `SELECT id, command, started, finished, dry_run FROM runs`
	args := make([]any, 0, 2)
	if command != "" {
		query += ` WHERE command = ?`
		args = append(args, command)
	}
	query += ` ORDER BY started DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	type storedRun struct {
		id     int64
		report *model.RunReport
	}
	var runs []storedRun
	for rows.Next() {
		var (
			id                int64
			cmd               string
			started, finished string
			dryRun            int
		)
		if err := rows.Scan(&id, &cmd, &started, &finished, &dryRun); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		report := &model.RunReport{
			Command: cmd,
			DryRun:  dryRun != 0,
		}
		report.Started = parseTimestamp(started)
		report.Finished = parseTimestamp(finished)
		runs = append(runs, storedRun{id: id, report: report})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	for _, run := range runs {
		if err := j.loadOutcomes(ctx, run.id, run.report); err != nil {
			return nil, err
		}
	}

	reports := make([]*model.RunReport, len(runs))
	for i, run := range runs {
		reports[i] = run.report
	}
	return reports, nil
}

// LastRun returns the most recent run of a command, or nil if the
// command has never run.
func (j *Journal) LastRun(ctx context.Context, command string) (*model.RunReport, error) {
	runs, err := j.RecentRuns(ctx, command, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func (j *Journal) loadOutcomes(ctx context.Context, runID int64, report *model.RunReport) error {
	rows, err := j.db.QueryContext(ctx,
		`SELECT title, action, detail, error FROM outcomes WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o      model.PageOutcome
			action string
			detail sql.NullString
			errMsg sql.NullString
		)
		if err := rows.Scan(&o.Title, &action, &detail, &errMsg); err != nil {
			return fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.Action = model.ParseOutcomeAction(action)
		o.Detail = detail.String
		o.Err = errMsg.String
		report.Record(o)
	}
	return rows.Err()
}

// MarkSeen records that a task handled a page. Marking a page twice is
// not an error.
func (j *Journal) MarkSeen(task, title string) error {
	_, err := j.db.ExecContext(context.Background(),
		`INSERT INTO seen_pages (task, title) VALUES (?, ?)
		 ON CONFLICT(task, title) DO NOTHING`,
		task, title,
	)
	if err != nil {
		return fmt.Errorf("failed to mark %s as seen: %w", title, err)
	}
	return nil
}

// WasSeen reports whether a task already handled a page.
func (j *Journal) WasSeen(task, title string) (bool, error) {
	var count int
	err := j.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM seen_pages WHERE task = ? AND title = ?`,
		task, title,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check seen status of %s: %w", title, err)
	}
	return count > 0, nil
}

// SetState stores a value under a key, replacing any previous value.
func (j *Journal) SetState(ctx context.Context, key, value string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO state (key, value, timestamp) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, timestamp = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set state %s: %w", key, err)
	}
	return nil
}

// State returns the value stored under a key, or "" if the key is unset.
func (j *Journal) State(ctx context.Context, key string) (string, error) {
	var value string
	err := j.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return value, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a stored timestamp, returning zero time when no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
