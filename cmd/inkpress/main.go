package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inkpress",
		Short:        "A blog publishing engine for Markdown files with front matter",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		serveCmd(),
		checkCmd(),
		syncCmd(),
		newCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inkpress version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("inkpress %s\n", version)
		},
	}
}
