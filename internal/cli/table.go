package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table session commands",
	}

	cmd.AddCommand(newTableStartCmd())
	cmd.AddCommand(newTableShowCmd())
	cmd.AddCommand(newTablePromptCmd())
	cmd.AddCommand(newTableHitCmd())
	cmd.AddCommand(newTableStandCmd())
	cmd.AddCommand(newTableAbandonCmd())
	cmd.AddCommand(newTableResultCmd())

	return cmd
}

func requirePlayer() (string, error) {
	if cfg.PlayerID == "" {
		return "", fmt.Errorf("player ID required: set --player or BJGAME_PLAYER")
	}
	return cfg.PlayerID, nil
}

func newTableStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <wager>",
		Short: "Start a new blackjack session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := requirePlayer()
			if err != nil {
				return err
			}

			wager, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid wager: %w", err)
			}

			req := map[string]any{"player_id": player, "wager": wager}
			var result Session

			if err := client.Post("/api/v1/tables", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the current state of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/tables/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTablePromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <id>",
		Short: "Show the pending decision prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Prompt

			if err := client.Get("/api/v1/tables/"+args[0]+"/prompt", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableHitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hit <id>",
		Short: "Take another card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/tables/"+args[0]+"/hit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableStandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stand <id>",
		Short: "Stand and let the dealer play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/tables/"+args[0]+"/stand", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a session without settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tables/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session abandoned")
			return nil
		},
	}
}

func newTableResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Show the final result of a resolved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Result

			if err := client.Get("/api/v1/tables/"+args[0]+"/result", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
