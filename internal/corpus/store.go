// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	indexDirName = "index"
	dbFile       = "corpus.db"
)

// Store is the SQLite corpus index: authoring tooling for full-text search
// over passage bodies. The deterministic evidence selector never consults
// it. Selection scans the in-memory corpus in natural order.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the corpus index database under cfg.IndexDir
// (default cfg.DataDir/index), creating the schema if needed.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := cfg.IndexDir
	if dbDir == "" {
		dbDir = filepath.Join(cfg.DataDir, indexDirName)
	}
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening corpus index: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS passages (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			pos INTEGER NOT NULL,
			text TEXT NOT NULL,
			role TEXT,
			symbols TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_passages_pos ON passages(pos)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='passages_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE passages_fts USING fts5(text, content=passages, content_rowid=rowid)`,
			`CREATE TRIGGER passages_ai AFTER INSERT ON passages BEGIN
				INSERT INTO passages_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER passages_ad AFTER DELETE ON passages BEGIN
				INSERT INTO passages_fts(passages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
			`CREATE TRIGGER passages_au AFTER UPDATE ON passages BEGIN
				INSERT INTO passages_fts(passages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
				INSERT INTO passages_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IndexSummary holds counts from a corpus indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
}

// Total returns the number of passages processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped
}

// Index ingests the passage corpus into the database, preserving corpus
// order in the pos column. Unchanged passages are skipped; changed ones are
// updated in place. Progress lines go to w.
func (s *Store) Index(ctx context.Context, passages []types.Passage, w io.Writer) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IndexSummary

	for pos, p := range passages {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		symbolsJSON, _ := json.Marshal(p.Symbols)

		var storedText, storedRole, storedSymbols string
		var storedPos int
		err := tx.QueryRowContext(ctx,
			`SELECT text, COALESCE(role, ''), COALESCE(symbols, ''), pos FROM passages WHERE id = ?`, p.ID,
		).Scan(&storedText, &storedRole, &storedSymbols, &storedPos)

		exists := err == nil
		if exists && storedText == p.Text && storedRole == string(p.Role) &&
			storedSymbols == string(symbolsJSON) && storedPos == pos {
			fmt.Fprintf(w, "skipped %s\n", p.ID)
			summary.Skipped++
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO passages (id, pos, text, role, symbols) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				pos=excluded.pos, text=excluded.text, role=excluded.role, symbols=excluded.symbols`,
			p.ID, pos, p.Text, string(p.Role), string(symbolsJSON),
		)
		if err != nil {
			return summary, fmt.Errorf("indexing passage %s: %w", p.ID, err)
		}

		if exists {
			fmt.Fprintf(w, "updated %s\n", p.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", p.ID)
			summary.Indexed++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped)
	return summary, nil
}

// SearchOptions holds corpus search parameters.
type SearchOptions struct {
	// Query is the FTS5 full-text search string over passage bodies.
	Query string

	// Symbol filters to passages substantiating the given symbol.
	Symbol string

	// Role filters by passage role (backbone or concept).
	Role types.PassageRole

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the search has no terms or filters.
func (o SearchOptions) IsEmpty() bool {
	return o.Query == "" && o.Symbol == "" && o.Role == ""
}

// Search queries the corpus index. Full-text queries rank by FTS5 relevance;
// filter-only queries return corpus order.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.Passage, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.text, COALESCE(p.role, ''), COALESCE(p.symbols, '')
			FROM passages_fts
			JOIN passages p ON p.rowid = passages_fts.rowid
			WHERE passages_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.id, p.text, COALESCE(p.role, ''), COALESCE(p.symbols, '')
			FROM passages p
			WHERE 1=1`)
	}

	if opts.Symbol != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.symbols) WHERE value = ?)`)
		args = append(args, opts.Symbol)
	}

	if opts.Role != "" {
		if opts.Role == types.RoleConcept {
			// The empty role means concept in the data files.
			qb.WriteString(` AND COALESCE(p.role, '') != ?`)
			args = append(args, string(types.RoleBackbone))
		} else {
			qb.WriteString(` AND p.role = ?`)
			args = append(args, string(opts.Role))
		}
	}

	if useFTS {
		qb.WriteString(` ORDER BY passages_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.pos`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus index: %w", err)
	}
	defer rows.Close()

	var results []types.Passage
	for rows.Next() {
		var p types.Passage
		var role, symbolsJSON string
		if err := rows.Scan(&p.ID, &p.Text, &role, &symbolsJSON); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		p.Role = types.PassageRole(role)
		if symbolsJSON != "" {
			if err := json.Unmarshal([]byte(symbolsJSON), &p.Symbols); err != nil {
				return nil, fmt.Errorf("parsing symbols for %s: %w", p.ID, err)
			}
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
