package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mixelka/codefetch/internal/config"
	"github.com/mixelka/codefetch/internal/database"
	"github.com/mixelka/codefetch/pkg/models"
)

func addCmd() *cobra.Command {
	var imapServer, imapPassword string

	cmd := &cobra.Command{
		Use:   "add <email> <account-id> <session-token>",
		Short: "Register an account or refresh its session token",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, db *database.DB) error {
				account := &models.Account{
					Email:        args[0],
					AccountID:    args[1],
					SessionToken: args[2],
					IMAPServer:   imapServer,
					IMAPPassword: imapPassword,
				}
				if err := db.UpsertAccount(ctx, account); err != nil {
					return err
				}
				fmt.Printf("registered %s\n", account.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&imapServer, "imap-server", "", "IMAP server host:port (imap mode)")
	cmd.Flags().StringVar(&imapPassword, "imap-password", "", "IMAP app password (imap mode)")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, db *database.DB) error {
				accounts, err := db.ListAccounts(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "EMAIL\tACCOUNT ID\tLAST USED")
				for _, a := range accounts {
					fmt.Fprintf(w, "%s\t%s\t%s\n", a.Email, a.AccountID, a.LastUsedAt.Format(time.DateTime))
				}
				return w.Flush()
			})
		},
	}
}

func withDB(fn func(context.Context, *database.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return fn(ctx, db)
}
