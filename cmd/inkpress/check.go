package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kylekorndoerfer/inkpress"
	"github.com/kylekorndoerfer/inkpress/content"
)

func checkCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate Markdown content without touching the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := content.CheckDir(dir)
			if err != nil {
				return err
			}
			for _, p := range report.Problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p.String())
			}
			if !report.OK() {
				return fmt.Errorf("%d problem(s) in %d file(s)", len(report.Problems), report.Files)
			}
			cmd.Printf("%d file(s) checked, no problems found\n", report.Files)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "content", inkpress.EnvOr("CONTENT_DIR", "content"), "Markdown content directory")
	return cmd
}
