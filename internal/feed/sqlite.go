package feed

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"virtual-museum/internal/gallery"
)

const schema = `CREATE TABLE IF NOT EXISTS artworks (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL DEFAULT 0,
	image_ref   TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	technique   TEXT NOT NULL DEFAULT '',
	year        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	album       TEXT NOT NULL DEFAULT ''
)`

// Catalog is an artwork collection stored in SQLite.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens (or creates) the catalog database at path.
// Use ":memory:" for a throwaway catalog.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("feed: open sqlite db: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("feed: ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("feed: create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Artworks returns the collection ordered by position.
func (c *Catalog) Artworks(ctx context.Context) ([]gallery.ArtworkRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, image_ref, title, technique, year, description, album FROM artworks ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("feed: query artworks: %w", err)
	}
	defer rows.Close()

	var out []gallery.ArtworkRecord
	for rows.Next() {
		var r gallery.ArtworkRecord
		if err := rows.Scan(&r.ID, &r.ImageRef, &r.Title, &r.Technique, &r.Year, &r.Description, &r.Album); err != nil {
			return nil, fmt.Errorf("feed: scan artwork: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feed: iterate artworks: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoArtworks
	}
	return out, nil
}

// Import upserts records, keeping their order as the catalog position.
func (c *Catalog) Import(ctx context.Context, records []gallery.ArtworkRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("feed: begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO artworks (id, position, image_ref, title, technique, year, description, album)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET position = excluded.position, image_ref = excluded.image_ref,
			title = excluded.title, technique = excluded.technique, year = excluded.year,
			description = excluded.description, album = excluded.album`)
	if err != nil {
		return fmt.Errorf("feed: prepare import: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID, i, r.ImageRef, r.Title, r.Technique, r.Year, r.Description, r.Album); err != nil {
			return fmt.Errorf("feed: import %q: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("feed: commit import: %w", err)
	}
	return nil
}
