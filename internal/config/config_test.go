package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"virtual-museum/internal/museum"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if f.MuseumOptions() != museum.DefaultOptions() {
		t.Fatalf("options = %+v", f.MuseumOptions())
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := write(t, "museum.yaml", `
start_room: retratos
navigation:
  speed: 30
tour:
  dwell: 5s
rooms:
  - id: retratos
    name: Retratos II
    width: 22
    depth: 26
    height: 6
  - id: sotano
    name: Sótano
    width: 12
    depth: 12
    height: 4
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	opts := f.MuseumOptions()
	if opts.StartRoom != "retratos" {
		t.Errorf("start room = %q", opts.StartRoom)
	}
	if opts.Navigation.Speed != 30 {
		t.Errorf("speed = %v", opts.Navigation.Speed)
	}
	if def := museum.DefaultOptions(); opts.Navigation.Deceleration != def.Navigation.Deceleration {
		t.Errorf("deceleration = %v, want default", opts.Navigation.Deceleration)
	}
	if opts.Tour.Dwell != 5*time.Second {
		t.Errorf("dwell = %v", opts.Tour.Dwell)
	}

	cat := f.Catalog()
	if got := len(cat.Rooms()); got != 5 {
		t.Fatalf("rooms = %d, want 5", got)
	}
	r, ok := cat.Lookup("retratos")
	if !ok || r.Name != "Retratos II" || r.Width != 22 {
		t.Errorf("retratos = %+v", r)
	}
	if cat.IDs()[2] != "retratos" {
		t.Errorf("replaced room moved: %v", cat.IDs())
	}
}

func TestLoadMalformed(t *testing.T) {
	path := write(t, "museum.yaml", "navigation: [1, 2\n")
	f, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if f.MuseumOptions() != museum.DefaultOptions() {
		t.Fatal("malformed file did not fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	f := Default()
	f.StartRoom = "sotano"
	if f.Validate() == nil {
		t.Error("unknown start room accepted")
	}
	f = Default()
	f.Rooms = append(f.Rooms, f.Catalog().Rooms()[0])
	f.Rooms[0].Width = 0
	if f.Validate() == nil {
		t.Error("zero width room accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "museum.yaml")
	want := Default()
	want.Navigation.Speed = 42
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.MuseumOptions() != want.MuseumOptions() {
		t.Fatalf("got %+v", got.MuseumOptions())
	}
}

func TestLoadEnv(t *testing.T) {
	dotenv := write(t, ".env", `
# local overrides
MUSEO_FEED="feeds/obras.db"
export MUSEO_FEED_DRIVER=sqlite
MUSEO_LOAD_WORKERS=2
MUSEO_LISTEN='0.0.0.0:9000'
`)
	for _, k := range []string{"MUSEO_FEED", "MUSEO_FEED_DRIVER", "MUSEO_LOAD_WORKERS", "MUSEO_LISTEN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("MUSEO_LOAD_WORKERS", "8")

	e, err := LoadEnv(dotenv)
	if err != nil {
		t.Fatal(err)
	}
	if e.Feed != "feeds/obras.db" || e.FeedDriver != DriverSQLite {
		t.Errorf("feed = %q (%s)", e.Feed, e.FeedDriver)
	}
	if e.LoadWorkers != 8 {
		t.Errorf("workers = %d, environment should win over .env", e.LoadWorkers)
	}
	if e.Listen != "0.0.0.0:9000" {
		t.Errorf("listen = %q", e.Listen)
	}
	if e.CacheDir != "cache/artworks" {
		t.Errorf("cache dir default = %q", e.CacheDir)
	}
}

func TestLoadEnvRejectsDriver(t *testing.T) {
	t.Setenv("MUSEO_FEED_DRIVER", "postgres")
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("unknown driver accepted")
	}
}

func TestShippedConfig(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", DefaultPath))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Catalog().Lookup("paisajes"); !ok {
		t.Error("paisajes room missing")
	}
	if len(f.Catalog().Rooms()) != 5 {
		t.Errorf("rooms = %d, want the four built-in plus one", len(f.Catalog().Rooms()))
	}
	if f.Tour.Dwell != 3*time.Second {
		t.Errorf("dwell = %v", f.Tour.Dwell)
	}
}
