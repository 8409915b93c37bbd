// Package feed supplies artwork records to the museum: from a JSON image
// manifest or a SQLite catalog, filtered per room.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"virtual-museum/internal/gallery"
)

// ErrNoArtworks is returned by sources that resolve to an empty collection.
var ErrNoArtworks = errors.New("feed: no artworks")

// Source produces the full, ordered artwork collection.
type Source interface {
	Artworks(ctx context.Context) ([]gallery.ArtworkRecord, error)
}

// ForRoom selects the artworks shown in room. Rooms without keywords take
// the first Limit records; themed rooms keep records whose album name
// contains one of the keywords, case-insensitively, capped at Limit.
// Limit <= 0 means no cap.
func ForRoom(records []gallery.ArtworkRecord, room gallery.Room) []gallery.ArtworkRecord {
	var out []gallery.ArtworkRecord
	if len(room.Keywords) == 0 {
		out = records
	} else {
		keywords := make([]string, 0, len(room.Keywords))
		for _, k := range room.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		for _, r := range records {
			if matches(r, keywords) {
				out = append(out, r)
			}
		}
	}
	if room.Limit > 0 && len(out) > room.Limit {
		out = out[:room.Limit]
	}
	return append([]gallery.ArtworkRecord(nil), out...)
}

func matches(r gallery.ArtworkRecord, keywords []string) bool {
	album := strings.ToLower(r.Album)
	for _, k := range keywords {
		if strings.Contains(album, k) {
			return true
		}
	}
	return false
}

// PlaceholderCount is how many stand-in artworks Placeholders returns.
const PlaceholderCount = 5

// Placeholders returns stand-in records with no image, used when the real
// feed cannot be read. They render as solid colour panels.
func Placeholders() []gallery.ArtworkRecord {
	out := make([]gallery.ArtworkRecord, PlaceholderCount)
	for i := range out {
		out[i] = gallery.ArtworkRecord{
			ID:    fmt.Sprintf("placeholder-%d", i+1),
			Title: fmt.Sprintf("Obra %d", i+1),
		}
	}
	return out
}

// Static is a Source over a fixed slice.
type Static []gallery.ArtworkRecord

// Artworks returns a copy of the slice.
func (s Static) Artworks(context.Context) ([]gallery.ArtworkRecord, error) {
	if len(s) == 0 {
		return nil, ErrNoArtworks
	}
	return append([]gallery.ArtworkRecord(nil), s...), nil
}
