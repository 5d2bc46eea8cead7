// Package cli implements the podflow administrative command line: organization
// provisioning and schema migrations. It talks to the database directly and
// is meant to be run from the deployment environment, not by end users.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
)

var configFile string

// NewRootCmd creates the root command for the podflow CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "podflow",
		Short: "podflow administers PodcastFlow Pro deployments",
		Long: `podflow is the administrative command line for PodcastFlow Pro.
It provisions organizations, manages their users and applies database
migrations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(configFile); err != nil {
				return err
			}
			return db.Init(context.Background())
		},
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")

	addCommands(cmd)
	return cmd
}

func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newOrgCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newKeysCmd())
}
