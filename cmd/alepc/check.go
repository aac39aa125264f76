package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alepc/internal/check"
	domainerr "alepc/internal/domain/errors"
)

func newCheckCmd(c *cli) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report posts whose header, file name, heading or image disagree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			chk := check.New(cfg)
			out := cmd.OutOrStdout()

			if watch {
				return chk.Watch(cmd.Context(), func(rep check.Report) { printReport(out, rep) })
			}

			rep, err := chk.Run()
			if err != nil {
				return err
			}
			printReport(out, rep)
			if n := len(rep.Findings); n > 0 {
				return domainerr.Validation("%d problem(s) found in %d post(s)", n, rep.Checked)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "check again whenever posts or images change")
	return cmd
}

func printReport(w io.Writer, rep check.Report) {
	for _, f := range rep.Findings {
		fmt.Fprintln(w, f.String())
	}
	fmt.Fprintf(w, "%d post(s) checked, %d problem(s)\n", rep.Checked, len(rep.Findings))
}
