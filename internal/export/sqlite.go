// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// Store is a SQLite database holding the publications of generated pages.
// It is written after each successful run and never read back by the
// generator.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and creates the schema
// if it does not exist.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			profile_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			venue TEXT,
			year INTEGER,
			citations INTEGER,
			citation_key TEXT,
			bibtex TEXT,
			badges TEXT,
			url TEXT,
			PRIMARY KEY (profile_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_category ON publications(profile_id, category)`,
		`CREATE TABLE IF NOT EXISTS runs (
			profile_id TEXT PRIMARY KEY,
			name TEXT,
			generated_at TEXT,
			total INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// WritePage replaces the stored publications of profileID with those of
// secs, recording each one's position on the page. It returns the number
// of rows written.
func (s *Store) WritePage(ctx context.Context, profileID, name string, secs []types.Section) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM publications WHERE profile_id = ?`, profileID); err != nil {
		return 0, fmt.Errorf("deleting old publications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (profile_id, id, position, category, title, authors, venue, year, citations, citation_key, bibtex, badges, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	for _, sec := range secs {
		for _, p := range sec.Publications {
			authorsJSON, _ := json.Marshal(p.Authors)
			badgesJSON, _ := json.Marshal(p.Badges)
			_, err := stmt.ExecContext(ctx,
				profileID, p.ID, position, string(p.Category), p.Title,
				string(authorsJSON), p.Venue, p.Year, p.Citations,
				p.CitationKey, p.BibTeX, string(badgesJSON), p.URL,
			)
			if err != nil {
				return 0, fmt.Errorf("inserting publication %s: %w", p.ID, err)
			}
			position++
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (profile_id, name, generated_at, total) VALUES (?, ?, ?, ?)
		 ON CONFLICT(profile_id) DO UPDATE SET name=excluded.name, generated_at=excluded.generated_at, total=excluded.total`,
		profileID, name, time.Now().UTC().Format(time.RFC3339), position,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return position, nil
}

// StoredPublication is one row of the publications table.
type StoredPublication struct {
	ID          string
	Position    int
	Category    types.Category
	Title       string
	Authors     []string
	Year        int
	CitationKey string
	Badges      []types.Badge
}

// Publications returns the stored publications of profileID in page order.
func (s *Store) Publications(ctx context.Context, profileID string) ([]StoredPublication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, category, title, authors, year, citation_key, badges
		 FROM publications WHERE profile_id = ? ORDER BY position`, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var out []StoredPublication
	for rows.Next() {
		var (
			p                   StoredPublication
			category            string
			authorsJSON, badges sql.NullString
			year                sql.NullInt64
			key                 sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Position, &category, &p.Title, &authorsJSON, &year, &key, &badges); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		p.Category = types.Category(category)
		p.Year = int(year.Int64)
		p.CitationKey = key.String
		if authorsJSON.Valid {
			_ = json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
		}
		if badges.Valid {
			_ = json.Unmarshal([]byte(badges.String), &p.Badges)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
