package main

import (
	"fmt"
	"path/filepath"

	"virtual-museum/internal/assets"
	"virtual-museum/internal/config"
	"virtual-museum/internal/feed"
	"virtual-museum/internal/logger"
	"virtual-museum/internal/museum"
)

// settings is everything a subcommand needs to build a museum.
type settings struct {
	env  config.Env
	file config.File
	log  *logger.Logger
}

func loadSettings(env config.Env) (settings, error) {
	log := logger.New(env.Log)
	file, err := config.Load(env.Config)
	if err != nil {
		// keep walking with the built-in rooms
		log.Logf("museum: %v", err)
	}
	if err := file.Validate(); err != nil {
		return settings{}, err
	}
	return settings{env: env, file: file, log: log}, nil
}

// openSource opens the configured artwork feed. close releases it.
func (s settings) openSource() (src feed.Source, close func(), err error) {
	switch s.env.FeedDriver {
	case config.DriverSQLite:
		cat, err := feed.OpenCatalog(s.env.Feed)
		if err != nil {
			return nil, nil, err
		}
		return cat, func() { _ = cat.Close() }, nil
	case config.DriverJSON:
		return feed.JSONManifest{Path: s.env.Feed, Root: filepath.Dir(s.env.Feed)}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown feed driver %q", s.env.FeedDriver)
}

func (s settings) loader() *assets.Loader {
	opts := assets.DefaultOptions()
	opts.CacheDir = s.env.CacheDir
	if s.env.LoadWorkers > 0 {
		opts.Workers = s.env.LoadWorkers
	}
	return assets.NewLoader(opts)
}

// newMuseum builds a closed museum over the configured feed.
func (s settings) newMuseum() (*museum.Museum, func(), error) {
	src, closeSrc, err := s.openSource()
	if err != nil {
		return nil, nil, err
	}
	m, err := museum.New(s.file.MuseumOptions(), s.file.Catalog(), src, s.loader(), s.log)
	if err != nil {
		closeSrc()
		return nil, nil, err
	}
	return m, closeSrc, nil
}
