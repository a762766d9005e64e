package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sweeper/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "sweeper.db"

// ErrSweepNotFound is returned when a sweep ID does not exist.
var ErrSweepNotFound = errors.New("sweep not found")

// HistoryDB records sweeps and their removal outcomes.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database inside dbDir.
// When CreateIfNotExists is false a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	dsn := dbPath + "?mode=rwc"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("database not available at %s: %w", dbPath, err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sweeps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		roots TEXT NOT NULL,
		odd_count INTEGER NOT NULL,
		removed_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sweeps_timestamp ON sweeps(timestamp);

	CREATE TABLE IF NOT EXISTS removals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sweep_id INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_removals_sweep ON removals(sweep_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SweepRecord is one row of the sweeps table.
type SweepRecord struct {
	ID           int64
	Timestamp    time.Time
	Roots        []string
	OddCount     int
	RemovedCount int
	FailedCount  int
}

// SaveSweep records a scan and the removal that followed it in a single
// transaction and returns the new sweep ID.
func (hdb *HistoryDB) SaveSweep(ctx context.Context, scan *model.ScanReport, removal *model.RemovalReport) (int64, error) {
	rootsJSON, err := json.Marshal(scan.Roots)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize roots: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO sweeps (timestamp, roots, odd_count, removed_count, failed_count)
	VALUES (?, ?, ?, ?, ?)
	`,
		removal.StartedAt.UTC().Format(timestampLayout),
		string(rootsJSON),
		len(scan.Files),
		removal.Count(model.OutcomeRemoved),
		removal.Count(model.OutcomeFailed),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save sweep: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get sweep ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO removals (sweep_id, path, outcome, error)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare removal insert: %w", err)
	}
	defer stmt.Close()

	for _, fo := range removal.Outcomes {
		if _, err := stmt.ExecContext(ctx, id, fo.Path, string(fo.Outcome), nullString(fo.Error)); err != nil {
			return 0, fmt.Errorf("failed to save removal of %s: %w", fo.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sweep: %w", err)
	}
	return id, nil
}

// ListSweeps returns every recorded sweep, newest first.
func (hdb *HistoryDB) ListSweeps(ctx context.Context) ([]SweepRecord, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, timestamp, roots, odd_count, removed_count, failed_count
	FROM sweeps
	ORDER BY timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweeps: %w", err)
	}
	defer rows.Close()

	var records []SweepRecord
	for rows.Next() {
		rec, err := scanSweep(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetSweep returns a single sweep or ErrSweepNotFound.
func (hdb *HistoryDB) GetSweep(ctx context.Context, id int64) (*SweepRecord, error) {
	row := hdb.db.QueryRowContext(ctx, `
	SELECT id, timestamp, roots, odd_count, removed_count, failed_count
	FROM sweeps
	WHERE id = ?
	`, id)

	rec, err := scanSweep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSweepNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRemovals returns the per-file outcomes of a sweep in the order they
// were recorded. It returns ErrSweepNotFound for an unknown ID.
func (hdb *HistoryDB) GetRemovals(ctx context.Context, sweepID int64) ([]model.FileOutcome, error) {
	if _, err := hdb.GetSweep(ctx, sweepID); err != nil {
		return nil, err
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT path, outcome, error
	FROM removals
	WHERE sweep_id = ?
	ORDER BY id
	`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to get removals: %w", err)
	}
	defer rows.Close()

	outcomes := make([]model.FileOutcome, 0)
	for rows.Next() {
		var (
			fo      model.FileOutcome
			outcome string
			msg     sql.NullString
		)
		if err := rows.Scan(&fo.Path, &outcome, &msg); err != nil {
			return nil, fmt.Errorf("failed to scan removal: %w", err)
		}
		fo.Outcome = model.Outcome(outcome)
		fo.Error = msg.String
		outcomes = append(outcomes, fo)
	}
	return outcomes, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweep(row rowScanner) (SweepRecord, error) {
	var (
		rec       SweepRecord
		timestamp string
		roots     string
	)
	err := row.Scan(&rec.ID, &timestamp, &roots, &rec.OddCount, &rec.RemovedCount, &rec.FailedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("failed to scan sweep: %w", err)
	}

	rec.Timestamp = parseTimestamp(timestamp)
	if err := json.Unmarshal([]byte(roots), &rec.Roots); err != nil {
		rec.Roots = nil
	}
	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// timestampLayout is the fixed-width UTC layout written to the database,
// so that text ordering matches time ordering.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp tries every known format and returns the zero time
// when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
