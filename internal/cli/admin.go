package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative ledger commands (require --admin-password)",
	}

	cmd.AddCommand(newAdminSetBalanceCmd())
	cmd.AddCommand(newAdminSetCreditsCmd())

	return cmd
}

func newAdminSetBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-balance <player> <amount>",
		Short: "Overwrite a player's chip balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			req := map[string]any{"amount": amount}
			var result Entry

			if err := client.Put("/api/v1/admin/players/"+args[0]+"/balance", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminSetCreditsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-credits <player> <amount>",
		Short: "Overwrite a player's credits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			req := map[string]any{"amount": amount}
			var result Entry

			if err := client.Put("/api/v1/admin/players/"+args[0]+"/credits", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
