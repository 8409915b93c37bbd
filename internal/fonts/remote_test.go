package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFolders(t *testing.T) {
	if got := Folders("Open Sans"); !reflect.DeepEqual(got, []string{"opensans", "open-sans"}) {
		t.Errorf("Folders(Open Sans) = %v", got)
	}
	if got := Folders(" Inter "); !reflect.DeepEqual(got, []string{"inter"}) {
		t.Errorf("Folders(Inter) = %v", got)
	}
	if got := Folders(""); got != nil {
		t.Errorf("Folders(\"\") = %v", got)
	}
}

// fakeGoogle serves a listing for "lora" and the files it names.
func fakeGoogle(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	downloads := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/lora":
			raw := srv.URL + "/raw/ofl/lora/"
			_ = json.NewEncoder(w).Encode([]githubFile{
				{Name: "OFL.txt", Type: "file", DownloadURL: raw + "OFL.txt"},
				{Name: "Lora-Italic.ttf", Type: "file", DownloadURL: raw + "Lora-Italic.ttf"},
				{Name: "Evil.ttf", Type: "file", DownloadURL: "https://example.com/Evil.ttf"},
				{Name: "Lora[wght].ttf", Type: "file", DownloadURL: raw + "Lora[wght].ttf"},
			})
		case strings.HasPrefix(r.URL.Path, "/raw/"):
			downloads++
			_, _ = w.Write([]byte("font bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &downloads
}

func TestRemoteURL(t *testing.T) {
	srv, _ := fakeGoogle(t)
	r := Remote{APIBase: srv.URL + "/api", RawBase: srv.URL + "/raw/"}

	u, err := r.URL(context.Background(), "Lora")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(u, "/Lora[wght].ttf") {
		t.Errorf("URL = %s, want the upright face", u)
	}
	if _, err := r.URL(context.Background(), "Comic Neue"); !errors.Is(err, ErrNoFont) {
		t.Errorf("missing family err = %v", err)
	}
}

func TestRemoteFetch(t *testing.T) {
	srv, downloads := fakeGoogle(t)
	r := Remote{APIBase: srv.URL + "/api", RawBase: srv.URL + "/raw/"}
	dir := t.TempDir()

	path, err := r.Fetch(context.Background(), "Lora", dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "Lora", "Lora[wght].ttf"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != "font bytes" {
		t.Fatalf("file = %q, %v", data, err)
	}

	again, err := r.Fetch(context.Background(), "Lora", dir)
	if err != nil || again != path {
		t.Fatalf("second fetch = %s, %v", again, err)
	}
	if *downloads != 1 {
		t.Errorf("downloads = %d, want 1", *downloads)
	}
}
