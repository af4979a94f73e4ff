// Package store persists an assignment in a SQLite database so other tools
// can look codes up with plain SQL.
//
// Schema:
//
//	meta(key TEXT PRIMARY KEY, value TEXT)
//	codes(seq INTEGER PRIMARY KEY, word TEXT UNIQUE, code TEXT UNIQUE,
//	      tier INTEGER, category TEXT)
//
// seq keeps the assignment order. The pure-Go modernc.org/sqlite driver is
// used, so no cgo toolchain is needed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/errs"
	"github.com/arloliu/zqx/format"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS codes (
	seq      INTEGER PRIMARY KEY,
	word     TEXT    NOT NULL,
	code     TEXT    NOT NULL,
	tier     INTEGER NOT NULL,
	category TEXT    NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS codes_word ON codes(word);
CREATE UNIQUE INDEX IF NOT EXISTS codes_code ON codes(code);
`

// Store is a handle to one database file. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema to %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored assignment and metadata in one transaction.
//
// Saving an assignment whose codes collide fails on the unique index and
// leaves the previous contents untouched.
func (s *Store) Save(ctx context.Context, a *assign.Assignment, meta map[string]string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM codes`); err != nil {
		return fmt.Errorf("clear codes: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM meta`); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO codes (seq, word, code, tier, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	seq := 0
	for r := range a.All() {
		if _, err = insert.ExecContext(ctx, seq, r.Word, r.Code, int(r.Tier), r.Category); err != nil {
			return fmt.Errorf("insert %q: %w", r.Word, err)
		}
		seq++
	}

	for _, k := range slices.Sorted(maps.Keys(meta)) {
		if _, err = tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, meta[k]); err != nil {
			return fmt.Errorf("insert meta %q: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Load reads the stored assignment in its original order.
//
// Returns errs.ErrEmptyStore when nothing has been saved.
func (s *Store) Load(ctx context.Context) (*assign.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, code, tier, category FROM codes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query codes: %w", err)
	}
	defer rows.Close()

	var records []assign.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read codes: %w", err)
	}

	if len(records) == 0 {
		return nil, errs.ErrEmptyStore
	}

	return assign.FromRecords(records)
}

// Lookup returns the record for word, or errs.ErrWordNotFound.
func (s *Store) Lookup(ctx context.Context, word string) (assign.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT word, code, tier, category FROM codes WHERE word = ?`, word)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return assign.Record{}, fmt.Errorf("%w: %q", errs.ErrWordNotFound, word)
	}

	return r, err
}

// LookupCode returns the record bound to code, or errs.ErrWordNotFound.
func (s *Store) LookupCode(ctx context.Context, code string) (assign.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT word, code, tier, category FROM codes WHERE code = ?`, code)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return assign.Record{}, fmt.Errorf("%w: no word for code %q", errs.ErrWordNotFound, code)
	}

	return r, err
}

// Meta returns the stored metadata.
func (s *Store) Meta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		meta[k] = v
	}

	return meta, rows.Err()
}

// Count returns the number of stored records per tier.
func (s *Store) Count(ctx context.Context) (assign.Counts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tier, COUNT(*) FROM codes GROUP BY tier`)
	if err != nil {
		return assign.Counts{}, fmt.Errorf("count codes: %w", err)
	}
	defer rows.Close()

	var c assign.Counts
	for rows.Next() {
		var tier, n int
		if err := rows.Scan(&tier, &n); err != nil {
			return assign.Counts{}, fmt.Errorf("scan count: %w", err)
		}
		switch format.Tier(tier) { //nolint:gosec
		case format.Tier1:
			c.Tier1 = n
		case format.Tier2:
			c.Tier2 = n
		case format.Tier3:
			c.Tier3 = n
		}
	}

	return c, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (assign.Record, error) {
	var (
		r    assign.Record
		tier int
	)
	if err := row.Scan(&r.Word, &r.Code, &tier, &r.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assign.Record{}, err
		}
		return assign.Record{}, fmt.Errorf("scan record: %w", err)
	}
	r.Tier = format.Tier(tier) //nolint:gosec

	return r, nil
}
