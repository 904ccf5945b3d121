package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// newPlayCmd runs a whole session interactively: start, then prompt for
// hit/stand until the hand resolves
func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <wager>",
		Short: "Play a blackjack hand interactively",
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

			out := NewOutput(cfg.Output)

			req := map[string]any{"player_id": player, "wager": wager}
			var session Session
			if err := client.Post("/api/v1/tables", req, &session); err != nil {
				return err
			}
			out.Print(session)

			reader := bufio.NewReader(os.Stdin)
			for session.Phase == "player_turn" {
				fmt.Print("\n[h]it or [s]tand? ")
				line, err := reader.ReadString('\n')
				if err != nil {
					// Stdin closed mid-hand; leave the session to time out
					return err
				}

				var action string
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "h", "hit":
					action = "hit"
				case "s", "stand":
					action = "stand"
				default:
					fmt.Println("Please answer h or s")
					continue
				}

				if err := client.Post("/api/v1/tables/"+session.ID+"/"+action, nil, &session); err != nil {
					return err
				}
				fmt.Println()
				out.Print(session)
			}

			return nil
		},
	}
}
