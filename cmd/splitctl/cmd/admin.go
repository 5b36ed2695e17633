package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/recurring"
	"github.com/mmynk/splitledger/internal/storage"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a bearer token for the API server",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if !cfg.AuthEnabled() {
			return errors.New("JWT_SECRET is not set")
		}
		token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL).Generate(args[0], tokenEmail)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Materialize every recurring expense that is due",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			count, err := recurring.NewProcessor(store).ProcessDue(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("%d expenses created\n", count)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(recurringCmd)
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim to embed.")
}
