package runreport

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path to the database file; ":memory:" keeps reports for the process only
	Path string
}

// Validate ensures the path is set
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Path == "" {
		return errors.InvalidArgument("sqlite path is required")
	}
	return nil
}

// SQLiteRepository keeps run reports in a local SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (and migrates) the database at cfg.Path
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open report database %s", cfg.Path)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS seed_reports (
			run_id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seed_reports_started_at ON seed_reports(started_at)`,
	}

	for _, m := range migrations {
		if _, err := r.db.ExecContext(ctx, m); err != nil {
			return errors.Wrapf(err, "report database migration failed")
		}
	}
	return nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Save stores a report, replacing any report with the same run id
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateReport(input.Report); err != nil {
		return nil, err
	}

	body, err := json.Marshal(input.Report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO seed_reports (run_id, started_at, body) VALUES (?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET started_at = excluded.started_at, body = excluded.body`,
		input.Report.RunID, input.Report.StartedAt.UnixMilli(), string(body),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store report %s", input.Report.RunID)
	}

	return &SaveOutput{Report: input.Report}, nil
}

// Get retrieves a report by run id
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM seed_reports WHERE run_id = ?`, input.RunID).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("run report %s not found", input.RunID)
		}
		return nil, errors.Wrapf(err, "failed to get report %s", input.RunID)
	}

	report, err := decodeReport(body)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Report: report}, nil
}

// ListRecent returns the most recently started reports
func (r *SQLiteRepository) ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT body FROM seed_reports ORDER BY started_at DESC, run_id DESC LIMIT ?`,
		listLimit(input.Limit),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list reports")
	}
	defer func() { _ = rows.Close() }()

	var reports []*RunReport
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Wrapf(err, "failed to scan report")
		}
		report, err := decodeReport(body)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list reports")
	}

	return &ListRecentOutput{Reports: reports}, nil
}

func decodeReport(body string) (*RunReport, error) {
	var report RunReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal report")
	}
	return &report, nil
}
