package cli

import (
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <puzzle-file>",
		Short: "Play a puzzle greedily until no word remains",
		Long: `Play the highest scoring word, clear its tiles, let the columns settle and
repeat until no word is left. Prints every round and the total score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(cmd, args[0])
			if err != nil {
				return err
			}

			backend, err := currentBackend()
			if err != nil {
				return err
			}

			result, err := backend.Solve(cmd.Context(), spec)
			if err != nil {
				return err
			}

			out := newCmdOutput(cmd)
			out.Print(result)
			return nil
		},
	}
}

func newWordsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "words <puzzle-file>",
		Short: "List the playable words on a puzzle, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(cmd, args[0])
			if err != nil {
				return err
			}

			backend, err := currentBackend()
			if err != nil {
				return err
			}

			words, err := backend.Words(cmd.Context(), spec, limit)
			if err != nil {
				return err
			}

			out := newCmdOutput(cmd)
			out.Print(words)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum words to show; 0 shows all")

	return cmd
}
