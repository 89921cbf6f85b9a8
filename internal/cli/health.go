package cli

import (
	"github.com/spf13/cobra"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
)

// HealthResult combines the server status and its dictionary state
type HealthResult struct {
	Status     string              `json:"status"`
	Dictionary response.Dictionary `json:"dictionary"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			health, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			dict, err := c.Dictionary(cmd.Context())
			if err != nil {
				return err
			}

			result := HealthResult{Status: health.Status, Dictionary: dict}

			out := newCmdOutput(cmd)
			out.Print(result)
			return nil
		},
	}
}
