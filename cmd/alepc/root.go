package main

import (
	"github.com/spf13/cobra"

	"alepc/internal/app"
	"alepc/internal/domain/config"
	"alepc/internal/prompt"
)

type cli struct {
	cfgPath string
}

// config loads the file named by --config, $ALEPC_CONFIG or the user config
// dir, writing the defaults there first if it does not exist.
func (c *cli) config() (config.Config, error) {
	path := c.cfgPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.LoadOrDefault(path)
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Create and update blog posts interactively",
		Long: `alepc asks a few questions and writes a post file with its header
and header image, or updates an existing post: slug, title, tags, image,
draft status and modified date.

Run without a subcommand for the interactive session.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return app.Interactive(cfg, prompt.SurveyAsker{}, cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default $ALEPC_CONFIG or <user config dir>/alepc/config.yaml)")

	root.AddCommand(
		newListCmd(c),
		newCheckCmd(c),
		newVersionCmd(c),
	)
	return root
}
