package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Google Fonts publishes its OFL families on GitHub.
const (
	DefaultAPIBase = "https://api.github.com/repos/google/fonts/contents/ofl"
	DefaultRawBase = "https://raw.githubusercontent.com/google/fonts/"
)

// ErrNoFont is returned when a family has no downloadable font file.
var ErrNoFont = errors.New("fonts: no font file for family")

// Remote downloads families from Google Fonts. The zero value uses the
// public endpoints; only files under RawBase are ever downloaded.
type Remote struct {
	APIBase string
	RawBase string
	HTTP    *http.Client
}

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

func (r Remote) client() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (r Remote) apiBase() string {
	if r.APIBase != "" {
		return strings.TrimRight(r.APIBase, "/")
	}
	return DefaultAPIBase
}

func (r Remote) rawBase() string {
	if r.RawBase != "" {
		return r.RawBase
	}
	return DefaultRawBase
}

// Folders returns the folder names a display name may live under,
// e.g. "Open Sans" -> ["opensans", "open-sans"].
func Folders(family string) []string {
	lower := strings.ToLower(strings.TrimSpace(family))
	if lower == "" {
		return nil
	}
	joined := strings.ReplaceAll(lower, " ", "")
	out := []string{joined}
	if hyphen := strings.ReplaceAll(lower, " ", "-"); hyphen != joined {
		out = append(out, hyphen)
	}
	return out
}

// URL finds the download URL of a family's upright font file.
func (r Remote) URL(ctx context.Context, family string) (string, error) {
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("%w %q", ErrNoFont, family)
	}
	var lastErr error
	for _, folder := range folders {
		u, err := r.folderURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (r Remote) folderURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.apiBase()+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w %q", ErrNoFont, folder)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("fonts: listing %s: HTTP %d", folder, resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: listing %s: %w", folder, err)
	}

	var italic string
	for _, f := range files {
		if f.Type != "file" || !isFont(f.Name) || !strings.HasPrefix(f.DownloadURL, r.rawBase()) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "italic") {
			if italic == "" {
				italic = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("%w %q", ErrNoFont, folder)
}

// Fetch downloads family into dir/<family>/ and returns the file path.
// A family already present in dir is not downloaded again.
func (r Remote) Fetch(ctx context.Context, family, dir string) (string, error) {
	if p, err := Find([]string{dir}, family); err == nil {
		return p, nil
	}
	u, err := r.URL(ctx, family)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: download %s: HTTP %d", u, resp.StatusCode)
	}

	name := path.Base(strings.SplitN(u, "?", 2)[0])
	dest := filepath.Join(dir, strings.ReplaceAll(strings.TrimSpace(family), " ", "_"), name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("fonts: download %s: %w", u, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", err
	}
	return dest, nil
}
