package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPuzzleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Manage puzzles stored on a server",
	}

	cmd.AddCommand(newPuzzleSaveCmd())
	cmd.AddCommand(newPuzzleListCmd())
	cmd.AddCommand(newPuzzleShowCmd())
	cmd.AddCommand(newPuzzleSolveCmd())
	cmd.AddCommand(newPuzzleWatchCmd())
	cmd.AddCommand(newPuzzleDeleteCmd())

	return cmd
}

func newPuzzleSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <puzzle-file>",
		Short: "Store a puzzle; saving the same grid again returns the same ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			spec, err := readSpec(cmd, args[0])
			if err != nil {
				return err
			}

			p, err := c.CreatePuzzle(cmd.Context(), spec)
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(p)
			return nil
		},
	}
}

func newPuzzleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			list, err := c.ListPuzzles(cmd.Context())
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(list)
			return nil
		},
	}
}

func newPuzzleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			p, err := c.GetPuzzle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(p)
			return nil
		},
	}
}

func newPuzzleSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <id>",
		Short: "Solve a stored puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			result, err := c.SolvePuzzle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			newCmdOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPuzzleWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <id>",
		Short: "Solve a stored puzzle, printing rounds as the server plays them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			out := newCmdOutput(cmd)
			result, err := c.WatchPuzzle(cmd.Context(), args[0], out.PrintRound)
			if err != nil {
				return err
			}

			out.PrintSolveSummary(result)
			return nil
		},
	}
}

func newPuzzleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}

			if err := c.DeletePuzzle(cmd.Context(), args[0]); err != nil {
				return err
			}

			newCmdOutput(cmd).PrintMessage(fmt.Sprintf("Deleted puzzle %s", args[0]))
			return nil
		},
	}
}
