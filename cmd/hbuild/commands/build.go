package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/hbuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [description]",
		Short: "Compile every target of a build description",
		Long: "Compile every target of a build description.\n\n" +
			"The description defaults to hbuild.yaml, hbuild.yml or hbuild.hcl in the working directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.BuildOptions{}
			if len(args) == 1 {
				opts.File = args[0]
			}

			flags := cmd.Flags()
			opts.Dir, _ = flags.GetString("directory")
			if file, _ := flags.GetString("file"); file != "" {
				opts.File = file
			}
			opts.Prefix, _ = flags.GetString("prefix")
			opts.Compiler, _ = flags.GetString("compiler")
			opts.BuildType, _ = flags.GetString("build-type")
			opts.Architecture, _ = flags.GetString("arch")
			opts.Reconfigure, _ = flags.GetBool("reconfigure")
			opts.Timeout, _ = flags.GetDuration("timeout")
			opts.Verbose, _ = flags.GetBool("verbose")
			opts.JSON, _ = flags.GetBool("json")
			opts.Echo, _ = flags.GetBool("echo")
			opts.DryRun, _ = flags.GetBool("dry-run")
			opts.Progress, _ = flags.GetBool("progress")

			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Build description file or directory")
	cmd.Flags().String("compiler", "", "Compiler backend (detected when empty)")
	cmd.Flags().Bool("reconfigure", false, "Capture the toolchain environment again")
	cmd.Flags().Duration("timeout", 0, "Timeout for every compiler and linker invocation (0 disables it)")
	cmd.Flags().BoolP("echo", "e", false, "Print every command line before it runs")
	cmd.Flags().BoolP("dry-run", "n", false, "Print commands without running them")
	cmd.Flags().BoolP("progress", "p", false, "Show a live view of the build")
	return cmd
}
