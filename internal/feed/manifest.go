package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"

	"virtual-museum/internal/gallery"
)

// ManifestEntry is one image of an images-index.json manifest.
type ManifestEntry struct {
	ID          string `json:"id"`
	AlbumID     string `json:"albumId"`
	AlbumName   string `json:"albumName" copier:"Album"`
	Filename    string `json:"filename"`
	Path        string `json:"path" copier:"ImageRef"`
	Index       int    `json:"index"`
	Title       string `json:"title,omitempty"`
	Technique   string `json:"technique,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// JSONManifest reads artworks from an images-index.json file.
// Relative image paths are resolved against Root, or against BaseURL when set.
type JSONManifest struct {
	Path    string
	Root    string
	BaseURL string
}

// Artworks reads and maps the manifest.
func (m JSONManifest) Artworks(ctx context.Context) ([]gallery.ArtworkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(m.Path)
	if err != nil {
		return nil, fmt.Errorf("feed: open manifest: %w", err)
	}
	defer f.Close()
	entries, err := DecodeManifest(f)
	if err != nil {
		return nil, err
	}
	recs, err := Records(entries)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].ImageRef = m.resolve(recs[i].ImageRef)
	}
	return recs, nil
}

func (m JSONManifest) resolve(ref string) string {
	switch {
	case ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return ref
	case m.BaseURL != "":
		return strings.TrimRight(m.BaseURL, "/") + "/" + strings.TrimLeft(ref, "/")
	case m.Root != "":
		return filepath.Join(m.Root, filepath.FromSlash(strings.TrimLeft(ref, "/")))
	}
	return ref
}

// DecodeManifest parses a manifest: a JSON array of entries.
func DecodeManifest(r io.Reader) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("feed: decode manifest: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoArtworks
	}
	return entries, nil
}

// Records maps manifest entries to artwork records. Entries without a title
// are titled after their album; entries without an ID get album_index.
func Records(entries []ManifestEntry) ([]gallery.ArtworkRecord, error) {
	out := make([]gallery.ArtworkRecord, 0, len(entries))
	for _, e := range entries {
		var r gallery.ArtworkRecord
		if err := copier.Copy(&r, &e); err != nil {
			return nil, fmt.Errorf("feed: map entry %q: %w", e.ID, err)
		}
		if r.ID == "" {
			r.ID = fmt.Sprintf("%s_%d", e.AlbumID, e.Index)
		}
		if r.Title == "" {
			r.Title = e.AlbumName
		}
		if r.Title == "" {
			r.Title = e.Filename
		}
		out = append(out, r)
	}
	return out, nil
}
