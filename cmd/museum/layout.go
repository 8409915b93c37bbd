package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"virtual-museum/internal/config"
	"virtual-museum/internal/feed"
	"virtual-museum/internal/gallery"
	"virtual-museum/internal/layout"
)

func newLayoutCommand(env *config.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [room...]",
		Short: "Print where each artwork hangs",
		Long:  "layout runs the wall layout for the given rooms (all rooms by default) over the configured feed and prints every placement.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(*env)
			if err != nil {
				return err
			}
			src, closeSrc, err := s.openSource()
			if err != nil {
				return err
			}
			defer closeSrc()
			recs, err := src.Artworks(cmd.Context())
			if err != nil {
				return err
			}
			cat := s.file.Catalog()
			ids := args
			if len(ids) == 0 {
				ids = cat.IDs()
			}
			for _, id := range ids {
				room, ok := cat.Lookup(id)
				if !ok {
					return fmt.Errorf("unknown room %q", id)
				}
				printLayout(cmd.OutOrStdout(), room, feed.ForRoom(recs, room), s.file.Layout)
			}
			return nil
		},
	}
}

func printLayout(out io.Writer, room gallery.Room, recs []gallery.ArtworkRecord, opts layout.Options) {
	res := layout.Place(room, recs, opts)
	fmt.Fprintf(out, "%s (%s) %gx%g: %d placed, %d dropped, spacing %g, capacity %d/%d/%d\n",
		room.ID, room.Name, room.Width, room.Depth, len(res.Placements), res.Dropped,
		res.Spacing, res.BackCapacity, res.SideCapacity, res.SideCapacity)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  WALL\tSLOT\tX\tZ\tID\tTITLE")
	for _, p := range res.Placements {
		fmt.Fprintf(tw, "  %s\t%d\t%.2f\t%.2f\t%s\t%s\n", p.Wall, p.Slot, p.Position.X(), p.Position.Z(), p.Artwork.ID, p.Artwork.Title)
	}
	_ = tw.Flush()
}
