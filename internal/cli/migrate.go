package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
)

// newMigrateCmd applies the public-schema migrations and re-applies the
// org-schema migrations for every known organization.
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.MigratePublic(); err != nil {
				return err
			}
			fmt.Println("public schema up to date")

			ctx := db.ConnCtx(context.Background())
			defer db.DB(ctx).Close(ctx)

			orgs, err := db.DB(ctx).ListOrganizations(ctx)
			if err != nil {
				return err
			}
			for _, org := range orgs {
				if err := db.MigrateOrgSchema(org.SchemaName); err != nil {
					return fmt.Errorf("org %s: %w", org.Slug, err)
				}
				fmt.Printf("org schema %s up to date\n", org.SchemaName)
			}
			return nil
		},
	}
}
