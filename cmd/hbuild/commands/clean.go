package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/hbuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := app.CleanOptions{}
			opts.Dir, _ = flags.GetString("directory")
			opts.Prefix, _ = flags.GetString("prefix")
			opts.BuildType, _ = flags.GetString("build-type")
			opts.Architecture, _ = flags.GetString("arch")
			opts.All, _ = flags.GetBool("all")
			return c.app.Clean(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Remove the whole prefix instead of one build type")
	return cmd
}
