package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"virtual-museum/internal/config"
	"virtual-museum/internal/feed"
)

func newImportCommand(env *config.Env) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "import <images-index.json> <catalog.db>",
		Short: "Copy a JSON manifest into a SQLite catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := runImport(cmd.Context(), feed.JSONManifest{Path: args[0], Root: filepath.Dir(args[0]), BaseURL: baseURL}, args[1])
			if err != nil {
				return err
			}
			cmd.Printf("%d artworks imported into %s\n", n, args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "prefix relative image paths with this URL instead of the manifest directory")
	return cmd
}

func runImport(ctx context.Context, src feed.Source, dbPath string) (int, error) {
	recs, err := src.Artworks(ctx)
	if err != nil {
		return 0, err
	}
	cat, err := feed.OpenCatalog(dbPath)
	if err != nil {
		return 0, err
	}
	defer cat.Close()
	if err := cat.Import(ctx, recs); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return len(recs), nil
}
