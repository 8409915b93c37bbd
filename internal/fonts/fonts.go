// Package fonts finds the overlay font on disk.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// DefaultFamily is the family the overlay asks for first.
const DefaultFamily = "Inter"

// BaseDirs returns candidate font directories, relative to the process working directory.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// Glyphs is the character set loaded for the overlay: printable ASCII plus
// the Spanish letters and marks used in artwork titles.
func Glyphs() []rune {
	out := make([]rune, 0, 96+16)
	for r := rune(32); r < 127; r++ {
		out = append(out, r)
	}
	return append(out, []rune("áéíóúÁÉÍÓÚñÑüÜ¿¡ºª")...)
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find searches dirs for a font whose path contains search, ignoring case,
// spaces, dashes and underscores. When several match, a "Regular" face wins.
// It returns the full path of the match, or os.ErrNotExist.
func Find(dirs []string, search string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var candidates []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(candidates) == 0 {
		return "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(filepath.Base(c)), "regular") {
			return c, nil
		}
	}
	return candidates[0], nil
}

// FindAny returns the first font found for any of the searches, falling back
// to whatever font lives in dirs.
func FindAny(dirs []string, searches ...string) (string, error) {
	for _, s := range searches {
		if path, err := Find(dirs, s); err == nil {
			return path, nil
		}
	}
	for _, base := range dirs {
		if list, err := ScanDir(base); err == nil && len(list) > 0 {
			return filepath.Join(base, filepath.FromSlash(list[0])), nil
		}
	}
	return "", os.ErrNotExist
}
