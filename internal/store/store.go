// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated articles and posts in a SQLite history
// database so they can be listed, re-exported, and regenerated later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-engine/pkg/types"
)

const (
	dbFile       = "history.db"
	defaultDir   = "data"
	defaultLimit = 20
)

// ErrNotFound is returned when no generation has the requested ID.
var ErrNotFound = errors.New("generation not found")

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
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

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			topic TEXT NOT NULL,
			template TEXT,
			tone TEXT,
			audience TEXT,
			keyword TEXT,
			title TEXT,
			content TEXT NOT NULL,
			summary TEXT,
			quotes TEXT,
			seo TEXT,
			readability REAL,
			image_suggestion TEXT,
			warnings TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_kind ON generations(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts g, replacing any generation with the same ID.
func (s *Store) Save(ctx context.Context, g *types.Generation) error {
	if g.ID == "" {
		return errors.New("generation has no id")
	}
	warningsJSON, err := json.Marshal(g.Warnings)
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}
	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generations (id, kind, topic, template, tone, audience, keyword, title,
			content, summary, quotes, seo, readability, image_suggestion, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			kind=excluded.kind, topic=excluded.topic, template=excluded.template,
			tone=excluded.tone, audience=excluded.audience, keyword=excluded.keyword,
			title=excluded.title, content=excluded.content, summary=excluded.summary,
			quotes=excluded.quotes, seo=excluded.seo, readability=excluded.readability,
			image_suggestion=excluded.image_suggestion, warnings=excluded.warnings,
			created_at=excluded.created_at`,
		g.ID, string(g.Kind), g.Topic, string(g.Template), string(g.Tone), string(g.Audience),
		g.Keyword, g.Title, g.Content, g.Summary, g.Quotes, g.SEO, g.Readability,
		g.ImageSuggestion, string(warningsJSON), createdAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving generation %s: %w", g.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, kind, topic, template, tone, audience, keyword, title,
	content, summary, quotes, seo, readability, image_suggestion, warnings, created_at
	FROM generations`

// Get returns the generation with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*types.Generation, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading generation %s: %w", id, err)
	}
	return g, nil
}

// ListOptions filters List and the exports.
type ListOptions struct {
	// Kind restricts results to articles or posts.
	Kind types.ContentKind

	// Query matches case-insensitively against topic, title, and content.
	Query string

	// Limit caps the result count. Zero uses the store default; negative
	// means no limit.
	Limit int
}

// List returns generations newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Generation, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns + ` WHERE 1=1`)

	if opts.Kind != "" {
		qb.WriteString(` AND kind = ?`)
		args = append(args, string(opts.Kind))
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		qb.WriteString(` AND (topic LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(q) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	qb.WriteString(` ORDER BY created_at DESC, rowid DESC`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Delete removes the generation with the given ID, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM generations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting generation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(sc scanner) (*types.Generation, error) {
	var (
		g                                   types.Generation
		kind                                string
		template, tone, audience, keyword   sql.NullString
		title, summary, quotes, seo, images sql.NullString
		warnings                            sql.NullString
		readability                         sql.NullFloat64
		createdAt                           int64
	)
	err := sc.Scan(&g.ID, &kind, &g.Topic, &template, &tone, &audience, &keyword, &title,
		&g.Content, &summary, &quotes, &seo, &readability, &images, &warnings, &createdAt)
	if err != nil {
		return nil, err
	}

	g.Kind = types.ContentKind(kind)
	g.Template = types.ArticleTemplate(template.String)
	g.Tone = types.Tone(tone.String)
	g.Audience = types.Audience(audience.String)
	g.Keyword = keyword.String
	g.Title = title.String
	g.Summary = summary.String
	g.Quotes = quotes.String
	g.SEO = seo.String
	g.Readability = readability.Float64
	g.ImageSuggestion = images.String
	g.CreatedAt = time.Unix(0, createdAt).UTC()

	if warnings.Valid && warnings.String != "" && warnings.String != "null" {
		if err := json.Unmarshal([]byte(warnings.String), &g.Warnings); err != nil {
			return nil, fmt.Errorf("decoding warnings: %w", err)
		}
	}
	return &g, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
