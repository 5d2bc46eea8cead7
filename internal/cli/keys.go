package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/auth"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage session token signing keys",
	}
	cmd.AddCommand(newKeysRotateCmd())
	return cmd
}

func newKeysRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Retire the active signing key and install a fresh one",
		Long: `rotate deactivates the current signing key and generates a new one.
All outstanding session tokens stop validating, so every user has to log in
again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := db.ConnCtx(context.Background())
			defer db.DB(ctx).Close(ctx)

			keyID, err := auth.RotateSigningKey(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("rotated signing key, new key id %s\n", keyID)
			return nil
		},
	}
}
