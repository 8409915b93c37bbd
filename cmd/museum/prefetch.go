package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"virtual-museum/internal/config"
	"virtual-museum/internal/download"
)

func newPrefetchCommand(env *config.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch",
		Short: "Download every remote artwork image into the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(*env)
			if err != nil {
				return err
			}
			fetched, failed, err := runPrefetch(cmd.Context(), s, download.Client{})
			if err != nil {
				return err
			}
			cmd.Printf("%d images cached in %s, %d failed\n", fetched, s.env.CacheDir, failed)
			return nil
		},
	}
}

// runPrefetch fetches the feed's remote images with LoadWorkers concurrent
// downloads. A failed image is logged and counted, not fatal.
func runPrefetch(ctx context.Context, s settings, client download.Client) (fetched, failed int, err error) {
	src, closeSrc, err := s.openSource()
	if err != nil {
		return 0, 0, err
	}
	defer closeSrc()
	recs, err := src.Artworks(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("prefetch: %w", err)
	}

	var ok, bad atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(max(s.env.LoadWorkers, 1)))
	for _, r := range recs {
		if !download.IsRemote(r.ImageRef) {
			continue
		}
		g.Go(func() error {
			if _, err := client.Fetch(gctx, r.ImageRef, s.env.CacheDir); err != nil {
				s.log.Logf("prefetch: %s: %v", r.ID, err)
				bad.Add(1)
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(ok.Load()), int(bad.Load()), ctx.Err()
}
