package feed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"virtual-museum/internal/gallery"
)

const sampleManifest = `[
  {"id": "101_0", "albumId": "101", "albumName": "DiviNos VaiVenes", "filename": "a.jpg", "path": "/images/raw_albums/101/a.jpg", "index": 0},
  {"id": "101_1", "albumId": "101", "albumName": "DiviNos VaiVenes", "filename": "b.jpg", "path": "/images/raw_albums/101/b.jpg", "index": 1},
  {"albumId": "202", "albumName": "Retratos 2019", "filename": "c.png", "path": "https://cdn.example.org/c.png", "index": 0, "title": "Autorretrato"},
  {"id": "303_0", "albumId": "303", "albumName": "", "filename": "d.webp", "path": "d.webp", "index": 0}
]`

func TestDecodeAndMapManifest(t *testing.T) {
	entries, err := DecodeManifest(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("DecodeManifest: %v", err)
	}
	recs, err := Records(entries)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("len = %d, want 4", len(recs))
	}
	if recs[0].ImageRef != "/images/raw_albums/101/a.jpg" || recs[0].Album != "DiviNos VaiVenes" {
		t.Errorf("rec 0 = %+v", recs[0])
	}
	if recs[0].Title != "DiviNos VaiVenes" {
		t.Errorf("title = %q, want album name", recs[0].Title)
	}
	if recs[2].ID != "202_0" || recs[2].Title != "Autorretrato" {
		t.Errorf("rec 2 = %+v", recs[2])
	}
	if recs[3].Title != "d.webp" {
		t.Errorf("title = %q, want filename fallback", recs[3].Title)
	}
}

func TestManifestResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "images-index.json")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := JSONManifest{Path: path, Root: "/srv/site"}.Artworks(context.Background())
	if err != nil {
		t.Fatalf("Artworks: %v", err)
	}
	if want := filepath.Join("/srv/site", "images", "raw_albums", "101", "a.jpg"); recs[0].ImageRef != want {
		t.Errorf("ImageRef = %q, want %q", recs[0].ImageRef, want)
	}
	if recs[2].ImageRef != "https://cdn.example.org/c.png" {
		t.Errorf("absolute URL rewritten to %q", recs[2].ImageRef)
	}

	recs, _ = JSONManifest{Path: path, BaseURL: "https://museo.example.org/"}.Artworks(context.Background())
	if recs[1].ImageRef != "https://museo.example.org/images/raw_albums/101/b.jpg" {
		t.Errorf("ImageRef = %q", recs[1].ImageRef)
	}
}

func TestEmptyManifest(t *testing.T) {
	if _, err := DecodeManifest(strings.NewReader("[]")); !errors.Is(err, ErrNoArtworks) {
		t.Errorf("err = %v, want ErrNoArtworks", err)
	}
	if _, err := (JSONManifest{Path: filepath.Join(t.TempDir(), "missing.json")}).Artworks(context.Background()); err == nil {
		t.Error("missing manifest returned no error")
	}
}

func collection() []gallery.ArtworkRecord {
	var out []gallery.ArtworkRecord
	albums := []string{"DiviNos VaiVenes", "Retratos", "Walking Gallery", "Paisajes"}
	for i := 0; i < 40; i++ {
		out = append(out, gallery.ArtworkRecord{
			ID:    string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Album: albums[i%len(albums)],
		})
	}
	return out
}

func TestForRoom(t *testing.T) {
	rooms := gallery.NewCatalog(gallery.DefaultRooms())
	recs := collection()

	main, _ := rooms.Lookup(gallery.MainRoomID)
	if got := ForRoom(recs, main); len(got) != 20 || got[0].ID != recs[0].ID {
		t.Errorf("main got %d records, want the first 20", len(got))
	}

	divinos, _ := rooms.Lookup("divinos")
	got := ForRoom(recs, divinos)
	if len(got) != 10 {
		t.Errorf("divinos got %d, want 10", len(got))
	}
	for _, r := range got {
		if r.Album != "DiviNos VaiVenes" {
			t.Errorf("divinos got album %q", r.Album)
		}
	}

	retratos, _ := rooms.Lookup("retratos")
	retratos.Limit = 4
	if got := ForRoom(recs, retratos); len(got) != 4 {
		t.Errorf("retratos got %d, want limit 4", len(got))
	}

	none := gallery.Room{Keywords: []string{"escultura"}}
	if got := ForRoom(recs, none); len(got) != 0 {
		t.Errorf("unmatched keywords got %d records", len(got))
	}
}

func TestForRoomMatchesAlbumOnly(t *testing.T) {
	recs := []gallery.ArtworkRecord{
		{ID: "a", Album: "Retratos de familia", Title: "Abuela"},
		{ID: "b", Album: "Paisajes", Title: "Retrato del valle"},
		{ID: "c", Album: "", Title: "Retrato sin álbum"},
	}
	got := ForRoom(recs, gallery.Room{Keywords: []string{"retrato"}})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ForRoom = %v, want only the album match", got)
	}
}

func TestForRoomDoesNotAlias(t *testing.T) {
	recs := collection()
	got := ForRoom(recs, gallery.Room{})
	got[0].Title = "changed"
	if recs[0].Title == "changed" {
		t.Error("ForRoom result aliases its input")
	}
}

func TestCatalogImportAndRead(t *testing.T) {
	cat, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	defer cat.Close()
	ctx := context.Background()

	if _, err := cat.Artworks(ctx); !errors.Is(err, ErrNoArtworks) {
		t.Errorf("empty catalog err = %v, want ErrNoArtworks", err)
	}

	recs := []gallery.ArtworkRecord{
		{ID: "z", Title: "Primera", ImageRef: "z.jpg", Album: "Retratos"},
		{ID: "a", Title: "Segunda", ImageRef: "a.jpg", Year: "2019"},
	}
	if err := cat.Import(ctx, recs); err != nil {
		t.Fatalf("Import: %v", err)
	}
	recs[1].Title = "Segunda (rev)"
	if err := cat.Import(ctx, recs); err != nil {
		t.Fatalf("re-Import: %v", err)
	}
	got, err := cat.Artworks(ctx)
	if err != nil {
		t.Fatalf("Artworks: %v", err)
	}
	if len(got) != 2 || got[0].ID != "z" || got[1].Title != "Segunda (rev)" || got[1].Year != "2019" {
		t.Errorf("Artworks = %+v", got)
	}
}

func TestPlaceholdersHaveNoImage(t *testing.T) {
	ps := Placeholders()
	if len(ps) != PlaceholderCount {
		t.Fatalf("len = %d", len(ps))
	}
	for _, p := range ps {
		if p.ImageRef != "" || p.ID == "" {
			t.Errorf("placeholder %+v", p)
		}
	}
}
