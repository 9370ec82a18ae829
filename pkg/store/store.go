// Package store manages SQLite persistence for the chrono CLI.
//
// Two tables hold saved values: stamps (an instant plus the ID of the
// chronology it was read in) and periods (a canonical CBOR payload plus
// its digest). Labels are unique per table; saving under an existing
// label replaces the value but keeps the record ID.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daviddao/chronology/pkg/clock"
	"github.com/daviddao/chronology/pkg/model"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record carries the requested label.
var ErrNotFound = errors.New("not found")

// Store manages all SQLite operations with WAL mode for concurrent access.
type Store struct {
	db *sql.DB

	mu  sync.Mutex
	seq *clock.Monotonic
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	return NewWithClock(path, nil)
}

// NewWithClock is New with an explicit source for save sequence numbers.
func NewWithClock(path string, src clock.Source) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, seq: clock.NewMonotonic(src)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	var last int64
	if err := db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM stamps`).Scan(&last); err != nil {
		db.Close()
		return nil, fmt.Errorf("read sequence: %w", err)
	}
	s.seq.Observe(last)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// retryOnContention wraps retryOp from retry.go with the default config.
// All store write operations should use this to handle transient SQLite
// errors (BUSY, LOCKED, IOERR_SHORT_READ) under concurrent access.
func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stamps (
		id         TEXT PRIMARY KEY,
		label      TEXT NOT NULL UNIQUE,
		millis     INTEGER NOT NULL,
		chronology TEXT NOT NULL,
		seq        INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_stamps_order ON stamps(millis, seq, id);

	CREATE TABLE IF NOT EXISTS periods (
		id         TEXT PRIMARY KEY,
		label      TEXT NOT NULL UNIQUE,
		digest     TEXT NOT NULL,
		payload    BLOB NOT NULL,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_periods_digest ON periods(digest);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.NowMillis()
}

// ---------------------------------------------------------------------------
// Stamps
// ---------------------------------------------------------------------------

// SaveStamp inserts st, or replaces the stamp with the same label. ID, Seq
// and CreatedAt are filled in on st.
func (s *Store) SaveStamp(st *model.Stamp) error {
	if st.Label == "" {
		return fmt.Errorf("save stamp: empty label")
	}
	st.Seq = s.nextSeq()
	st.CreatedAt = time.Now().UTC()
	id := uuid.NewString()
	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO stamps (id, label, millis, chronology, seq, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(label) DO UPDATE SET
			   millis = excluded.millis,
			   chronology = excluded.chronology,
			   seq = excluded.seq,
			   created_at = excluded.created_at`,
			id, st.Label, st.Millis, st.Chronology, st.Seq,
			st.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save stamp %s: %w", st.Label, err)
	}
	return s.db.QueryRow(`SELECT id FROM stamps WHERE label = ?`, st.Label).Scan(&st.ID)
}

// GetStamp retrieves a stamp by label.
func (s *Store) GetStamp(label string) (*model.Stamp, error) {
	row := s.db.QueryRow(
		`SELECT id, label, millis, chronology, seq, created_at FROM stamps WHERE label = ?`, label,
	)
	st, err := scanStamp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stamp %s: %w", label, ErrNotFound)
	}
	return st, err
}

// ListStamps returns every stamp in instant order; ties go to the earlier
// save.
func (s *Store) ListStamps() ([]model.Stamp, error) {
	rows, err := s.db.Query(
		`SELECT id, label, millis, chronology, seq, created_at
		 FROM stamps ORDER BY millis ASC, seq ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stamps []model.Stamp
	for rows.Next() {
		st, err := scanStamp(rows)
		if err != nil {
			return nil, err
		}
		stamps = append(stamps, *st)
	}
	return stamps, rows.Err()
}

// DeleteStamp removes the stamp with label.
func (s *Store) DeleteStamp(label string) error {
	return deleteByLabel(s.db, "stamps", label)
}

// CountStamps returns the number of saved stamps.
func (s *Store) CountStamps() int64 {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stamps`).Scan(&count); err != nil {
		return 0
	}
	return count
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStamp(row scanner) (*model.Stamp, error) {
	var st model.Stamp
	var createdStr string
	if err := row.Scan(&st.ID, &st.Label, &st.Millis, &st.Chronology, &st.Seq, &createdStr); err != nil {
		return nil, err
	}
	var parseErr error
	st.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parse created_at for stamp %s: %w", st.Label, parseErr)
	}
	return &st, nil
}

// ---------------------------------------------------------------------------
// Periods
// ---------------------------------------------------------------------------

// SavePeriod inserts r, or replaces the period with the same label. ID and
// CreatedAt are filled in on r.
func (s *Store) SavePeriod(r *model.PeriodRecord) error {
	if r.Label == "" {
		return fmt.Errorf("save period: empty label")
	}
	r.CreatedAt = time.Now().UTC()
	id := uuid.NewString()
	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO periods (id, label, digest, payload, text, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(label) DO UPDATE SET
			   digest = excluded.digest,
			   payload = excluded.payload,
			   text = excluded.text,
			   created_at = excluded.created_at`,
			id, r.Label, r.Digest, r.Payload, r.Text,
			r.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save period %s: %w", r.Label, err)
	}
	return s.db.QueryRow(`SELECT id FROM periods WHERE label = ?`, r.Label).Scan(&r.ID)
}

// GetPeriod retrieves a period by label.
func (s *Store) GetPeriod(label string) (*model.PeriodRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, label, digest, payload, text, created_at FROM periods WHERE label = ?`, label,
	)
	r, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("period %s: %w", label, ErrNotFound)
	}
	return r, err
}

// ListPeriods returns every period ordered by label.
func (s *Store) ListPeriods() ([]model.PeriodRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, label, digest, payload, text, created_at FROM periods ORDER BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

// FindPeriodsByDigest returns the periods whose payload hashes to digest,
// which are exactly the saved periods equal to the one that produced it.
func (s *Store) FindPeriodsByDigest(digest string) ([]model.PeriodRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, label, digest, payload, text, created_at
		 FROM periods WHERE digest = ? ORDER BY label`, digest,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

// DeletePeriod removes the period with label.
func (s *Store) DeletePeriod(label string) error {
	return deleteByLabel(s.db, "periods", label)
}

func scanPeriods(rows *sql.Rows) ([]model.PeriodRecord, error) {
	var records []model.PeriodRecord
	for rows.Next() {
		r, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func scanPeriod(row scanner) (*model.PeriodRecord, error) {
	var r model.PeriodRecord
	var createdStr string
	if err := row.Scan(&r.ID, &r.Label, &r.Digest, &r.Payload, &r.Text, &createdStr); err != nil {
		return nil, err
	}
	var parseErr error
	r.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parse created_at for period %s: %w", r.Label, parseErr)
	}
	return &r, nil
}

// deleteByLabel removes one row from table. table is always a constant
// from this package.
func deleteByLabel(db *sql.DB, table, label string) error {
	var affected int64
	err := retryOnContention(func() error {
		res, err := db.Exec(`DELETE FROM `+table+` WHERE label = ?`, label)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete %s: %w", label, ErrNotFound)
	}
	return nil
}
