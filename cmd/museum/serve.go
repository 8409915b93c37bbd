package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"virtual-museum/internal/config"
	"virtual-museum/internal/museum"
	"virtual-museum/internal/navigation"
	"virtual-museum/internal/server"
)

// tickRate is the headless simulation rate.
const tickRate = 60

func newServeCommand(env *config.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the museum headless behind the websocket bridge",
		Long: `serve runs the museum without a window. Web pages connect to /ws on
--listen, send switch_room, start_tour, stop_tour, release and select
messages, and receive every museum event as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(*env)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), s)
		},
	}
}

func runServe(ctx context.Context, s settings) error {
	m, closeSrc, err := s.newMuseum()
	if err != nil {
		return err
	}
	defer closeSrc()

	srv := server.New(m, s.log)
	m.On(srv.OnEvent)
	if err := m.Open(ctx); err != nil {
		return fmt.Errorf("museum: %w", err)
	}
	defer m.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, s.env.Listen)
	})
	g.Go(func() error {
		simulate(ctx, m)
		return nil
	})
	return g.Wait()
}

// simulate ticks m at tickRate until ctx is done.
func simulate(ctx context.Context, m *museum.Museum) {
	t := time.NewTicker(time.Second / tickRate)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.Tick(float32(now.Sub(last).Seconds()), navigation.Input{})
			last = now
		}
	}
}
