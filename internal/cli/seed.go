package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/playeradmin/internal/api/request"
	"github.com/mcoot/playeradmin/internal/dependencies/clock"
	"github.com/mcoot/playeradmin/internal/dependencies/random"
	"github.com/mcoot/playeradmin/internal/services/seed"
)

// seedGenerator builds the players sent by the seed command
var seedGenerator = seed.New(clock.New(), random.New())

func newSeedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create random valid players",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}

			result := SeedResult{Players: make([]Player, 0, count)}
			for _, changes := range seedGenerator.Players(count) {
				p, err := client.CreatePlayer(cmd.Context(), request.PlayerRequestFromChanges(changes))
				if err != nil {
					return err
				}
				result.Players = append(result.Players, p)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of players to create")
	return cmd
}
