package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/orgmanager"
)

func newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}
	cmd.AddCommand(newOrgCreateCmd())
	cmd.AddCommand(newOrgListCmd())
	cmd.AddCommand(newOrgDeleteCmd())
	return cmd
}

func newOrgCreateCmd() *cobra.Command {
	var name, slug, plan, adminEmail, adminPassword string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization and provision its schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := db.ConnCtx(context.Background())
			defer db.DB(ctx).Close(ctx)

			org, err := orgmanager.CreateOrganization(ctx, &orgmanager.OrganizationRequest{
				Name: name,
				Slug: slug,
				Plan: plan,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created organization %s (%s)\n", org.Slug, org.OrgID)

			if adminEmail != "" {
				user, err := orgmanager.CreateUser(ctx, org.OrgID, &orgmanager.UserRequest{
					Email:    adminEmail,
					FullName: "Administrator",
					Role:     "admin",
					Password: adminPassword,
				})
				if err != nil {
					return err
				}
				fmt.Printf("created admin user %s (%s)\n", user.Email, user.UserID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "organization display name")
	cmd.Flags().StringVar(&slug, "slug", "", "organization slug (lowercase, unique)")
	cmd.Flags().StringVar(&plan, "plan", "", "plan: standard, pro or enterprise")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "create an admin user with this email")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for the admin user")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("slug")
	return cmd
}

func newOrgListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := db.ConnCtx(context.Background())
			defer db.DB(ctx).Close(ctx)

			orgs, err := orgmanager.ListOrganizations(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORG ID\tSLUG\tNAME\tPLAN\tSTATUS")
			for _, org := range orgs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", org.OrgID, org.Slug, org.Name, org.Plan, org.Status)
			}
			return w.Flush()
		},
	}
}

func newOrgDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <org-id>",
		Short: "Delete an organization record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid org id: %w", err)
			}
			ctx := db.ConnCtx(context.Background())
			defer db.DB(ctx).Close(ctx)

			if err := orgmanager.DeleteOrganization(ctx, orgID); err != nil {
				return err
			}
			fmt.Printf("deleted organization %s\n", orgID)
			return nil
		},
	}
}
