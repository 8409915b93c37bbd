package main

import (
	"github.com/spf13/cobra"

	"virtual-museum/internal/fonts"
)

func newFontsCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fonts [family]",
		Short: "Download the overlay font from Google Fonts",
		Long: `Downloads a family from the google/fonts repository into the font
directory the viewer searches. Defaults to ` + fonts.DefaultFamily + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family := fonts.DefaultFamily
			if len(args) == 1 {
				family = args[0]
			}
			path, err := fonts.Remote{}.Fetch(cmd.Context(), family, dir)
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", fonts.BaseDirs()[0], "font directory")
	return cmd
}
