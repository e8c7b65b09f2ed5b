// sqlite.go provides SQLite connection management and the Store
// implementation.
//
// This is the only file that imports the SQLite driver, which keeps
// driver-specific concerns (pragmas, registration) in one place.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes, and the 5-second busy
// timeout prevents "database is locked" errors without waiting forever on
// stuck connections.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/qiwen-lab/papertrack/internal/paper"
)

// SQLiteStore implements Store using SQLite with WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has
// the wrong signature, the build fails immediately with a clear error
// rather than at the call site.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: allows concurrent readers while writing. Trade-off: creates
	// -wal and -shm files alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: how long to wait when another connection holds a lock.
	// Most operations complete in milliseconds, so 5 seconds is generous.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// With WAL, synchronous NORMAL is safe against corruption; FULL would
	// fsync every commit for no benefit in a local tracker.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call
// multiple times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for the audit log and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Upsert keyed on uid. created_at survives updates; updated_at doesn't.
const insertSQL = `
INSERT INTO papers (
    uid, doi, title, authors, date, category,
    summary_motivation, summary_innovation, summary_method,
    summary_conclusion, summary_limitation,
    paper_url, project_url, conference, title_translation, analogy_summary,
    pipeline_image, abstract, contributor, notes,
    show_in_readme, status, submission_time, conflict_marker, invalid_fields,
    created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(uid) DO UPDATE SET
    doi=excluded.doi, title=excluded.title, authors=excluded.authors,
    date=excluded.date, category=excluded.category,
    summary_motivation=excluded.summary_motivation,
    summary_innovation=excluded.summary_innovation,
    summary_method=excluded.summary_method,
    summary_conclusion=excluded.summary_conclusion,
    summary_limitation=excluded.summary_limitation,
    paper_url=excluded.paper_url, project_url=excluded.project_url,
    conference=excluded.conference,
    title_translation=excluded.title_translation,
    analogy_summary=excluded.analogy_summary,
    pipeline_image=excluded.pipeline_image, abstract=excluded.abstract,
    contributor=excluded.contributor, notes=excluded.notes,
    show_in_readme=excluded.show_in_readme, status=excluded.status,
    submission_time=excluded.submission_time,
    conflict_marker=excluded.conflict_marker,
    invalid_fields=excluded.invalid_fields,
    updated_at=excluded.updated_at`

const selectSQL = `
SELECT uid, doi, title, authors, date, category,
       summary_motivation, summary_innovation, summary_method,
       summary_conclusion, summary_limitation,
       paper_url, project_url, conference, title_translation, analogy_summary,
       pipeline_image, abstract, contributor, notes,
       show_in_readme, status, submission_time, conflict_marker, invalid_fields,
       created_at, updated_at
FROM papers`

// Put inserts or updates a paper keyed by its identity UID.
func (s *SQLiteStore) Put(ctx context.Context, p *paper.Paper) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, insertSQL,
		p.UID(), p.DOI, p.Title, p.Authors, p.Date, p.Category,
		p.SummaryMotivation, p.SummaryInnovation, p.SummaryMethod,
		p.SummaryConclusion, p.SummaryLimitation,
		p.PaperURL, p.ProjectURL, p.Conference, p.TitleTranslation, p.AnalogySummary,
		p.PipelineImage, p.Abstract, p.Contributor, p.Notes,
		boolToInt(p.ShowInReadme), p.Status, p.SubmissionTime,
		boolToInt(p.ConflictMarker), p.InvalidFields,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("put paper %s: %w", p.UID(), err)
	}
	return nil
}

// Get returns the paper with the given UID.
func (s *SQLiteStore) Get(ctx context.Context, uid string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectSQL+` WHERE uid = ?`, uid)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get paper %s: %w", uid, err)
	}
	return &rec, nil
}

// List returns papers matching the options, ordered by category then
// submission time then title for stable output.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	query := selectSQL
	var args []any
	var where []string
	if opts.Category != "" {
		where = append(where, "category = ?")
		args = append(args, opts.Category)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY category, submission_time, title"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the paper with the given UID.
func (s *SQLiteStore) Delete(ctx context.Context, uid string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM papers WHERE uid = ?`, uid)
	if err != nil {
		return fmt.Errorf("delete paper %s: %w", uid, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored papers.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count papers: %w", err)
	}
	return n, nil
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord extracts a Record from a database row.
func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var show, conflict int
	err := sc.Scan(
		&rec.UID, &rec.Paper.DOI, &rec.Paper.Title, &rec.Paper.Authors,
		&rec.Paper.Date, &rec.Paper.Category,
		&rec.Paper.SummaryMotivation, &rec.Paper.SummaryInnovation,
		&rec.Paper.SummaryMethod, &rec.Paper.SummaryConclusion,
		&rec.Paper.SummaryLimitation,
		&rec.Paper.PaperURL, &rec.Paper.ProjectURL, &rec.Paper.Conference,
		&rec.Paper.TitleTranslation, &rec.Paper.AnalogySummary,
		&rec.Paper.PipelineImage, &rec.Paper.Abstract, &rec.Paper.Contributor,
		&rec.Paper.Notes,
		&show, &rec.Paper.Status, &rec.Paper.SubmissionTime,
		&conflict, &rec.Paper.InvalidFields,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return rec, err
	}
	rec.Paper.ShowInReadme = show != 0
	rec.Paper.ConflictMarker = conflict != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
