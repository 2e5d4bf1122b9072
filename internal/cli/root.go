// Package cli implements the webmarcas command line: offline viability analysis,
// contract rendering and catalogue maintenance against the service database.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"webmarcas/backend/internal/config"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "webmarcas",
		Short:         "Trademark viability and contract tooling",
		Long:          "webmarcas runs brand viability analyses, renders service contracts and maintains the famous-mark and template catalogues.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (overrides database.path)")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newFamousCmd(opts))
	cmd.AddCommand(newTemplatesCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if err := cfg.Log.ConfigureLogging(); err != nil {
		return nil, err
	}
	logrus.WithField("db", cfg.Database.Path).Debug("configuration loaded")
	return cfg, nil
}
