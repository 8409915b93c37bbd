// Package config loads the museum's YAML configuration and process settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"virtual-museum/internal/camera"
	"virtual-museum/internal/gallery"
	"virtual-museum/internal/layout"
	"virtual-museum/internal/museum"
	"virtual-museum/internal/navigation"
	"virtual-museum/internal/proximity"
	"virtual-museum/internal/tour"
)

// DefaultPath is the museum config file, relative to the process working directory.
const DefaultPath = "configs/museum.yaml"

// File is the YAML configuration. Every field is optional: Load starts from
// Default and only overrides what the file sets. Rooms are merged into the
// built-in rooms by ID.
type File struct {
	StartRoom    string            `yaml:"start_room"`
	Rooms        []gallery.Room    `yaml:"rooms,omitempty"`
	Layout       layout.Options    `yaml:"layout"`
	Navigation   navigation.Tuning `yaml:"navigation"`
	Camera       camera.Tuning     `yaml:"camera"`
	Proximity    proximity.Tuning  `yaml:"proximity"`
	Tour         tour.Tuning       `yaml:"tour"`
	Padding      float32           `yaml:"padding"`
	PickDistance float32           `yaml:"pick_distance"`
}

// Default returns the built-in configuration.
func Default() File {
	o := museum.DefaultOptions()
	return File{
		StartRoom:    o.StartRoom,
		Layout:       o.Layout,
		Navigation:   o.Navigation,
		Camera:       o.Camera,
		Proximity:    o.Proximity,
		Tour:         o.Tour,
		Padding:      o.Padding,
		PickDistance: o.PickDistance,
	}
}

// Load reads path over Default. A missing file is not an error.
// A malformed file returns Default and the decode error.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path, creating its directory if needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Catalog returns the built-in rooms with the configured rooms merged in.
func (f File) Catalog() *gallery.Catalog {
	return gallery.NewCatalog(append(gallery.DefaultRooms(), f.Rooms...))
}

// MuseumOptions converts the file into museum options.
func (f File) MuseumOptions() museum.Options {
	return museum.Options{
		StartRoom:    f.StartRoom,
		Layout:       f.Layout,
		Navigation:   f.Navigation,
		Camera:       f.Camera,
		Proximity:    f.Proximity,
		Tour:         f.Tour,
		Padding:      f.Padding,
		PickDistance: f.PickDistance,
	}
}

// Validate reports settings the museum cannot run with.
func (f File) Validate() error {
	var errs []error
	if _, ok := f.Catalog().Lookup(f.StartRoom); f.StartRoom != "" && !ok {
		errs = append(errs, fmt.Errorf("start_room %q is not a room", f.StartRoom))
	}
	for _, r := range f.Rooms {
		if r.ID == "" {
			errs = append(errs, errors.New("room without id"))
		}
		if r.Width <= 0 || r.Depth <= 0 {
			errs = append(errs, fmt.Errorf("room %q: width and depth must be positive", r.ID))
		}
	}
	if f.Padding < 0 {
		errs = append(errs, errors.New("padding must not be negative"))
	}
	if f.Proximity.Distance <= 0 {
		errs = append(errs, errors.New("proximity distance must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
