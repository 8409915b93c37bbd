// Command museum opens the virtual museum: a first-person gallery walk
// through the artist's portfolio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"virtual-museum/internal/config"
)

func main() {
	env, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(&env).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(env *config.Env) *cobra.Command {
	var listen bool
	root := &cobra.Command{
		Use:   "museum",
		Short: "Walk the virtual museum",
		Long: `museum - a first-person walk through the portfolio gallery.

Controls:
  Click        - Look around (captures the pointer), then select the artwork in sight
  W/A/S/D      - Walk, Shift to run
  E / Enter    - Inspect the artwork you are facing, again to step back
  T            - Start or stop the guided tour
  M            - Toggle the minimap
  Esc          - Step back, stop the tour, or free the pointer
  ` + "`" + `            - Console (cmd help)`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(*env)
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), s, listen)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&env.Config, "config", env.Config, "museum YAML config")
	pf.StringVar(&env.Feed, "feed", env.Feed, "artwork feed: images-index.json or a SQLite catalog")
	pf.StringVar(&env.FeedDriver, "feed-driver", env.FeedDriver, "feed driver: json or sqlite")
	pf.StringVar(&env.CacheDir, "cache-dir", env.CacheDir, "where remote images are cached")
	pf.StringVar(&env.Log, "log", env.Log, "log file")
	pf.Int64Var(&env.LoadWorkers, "load-workers", env.LoadWorkers, "concurrent image loads")
	pf.StringVar(&env.Listen, "listen", env.Listen, "websocket bridge address")

	root.Flags().BoolVar(&env.Fullscreen, "fullscreen", env.Fullscreen, "open fullscreen")
	root.Flags().BoolVar(&listen, "bridge", false, "also serve the websocket bridge on --listen")

	root.AddCommand(
		newServeCommand(env),
		newPrefetchCommand(env),
		newLayoutCommand(env),
		newImportCommand(env),
		newFontsCommand(),
	)
	return root
}
