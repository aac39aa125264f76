package main

import (
	"github.com/spf13/cobra"

	"alepc/internal/app"
	"alepc/internal/domain/config"
)

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and repository URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				cfg = config.Default()
			}
			return app.VersionAction{}.Run(cfg, cmd.OutOrStdout())
		},
	}
}
