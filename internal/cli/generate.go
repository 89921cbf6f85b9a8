package cli

import (
	"github.com/spf13/cobra"

	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/random"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/generator"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

func newGenerateCmd() *cobra.Command {
	var (
		genCfg = generator.DefaultConfig()
		seed   uint64
		name   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random puzzle",
		Long: `Generate a random grid with English letter frequencies and print it as a
puzzle file. The same --seed always gives the same grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rnd := random.New()
			if seed != 0 {
				rnd = random.NewSeeded(seed)
			}
			gen := generator.New(rnd, generator.EnglishBag(), logger)

			rows, err := gen.GenerateRows(genCfg)
			if err != nil {
				return err
			}
			if name == "" {
				name = gen.Name()
			}

			out := newCmdOutput(cmd)
			out.Print(puzzle.Spec{Name: name, Rows: rows})
			return nil
		},
	}

	cmd.Flags().IntVar(&genCfg.Width, "width", genCfg.Width, "Columns")
	cmd.Flags().IntVar(&genCfg.Height, "height", genCfg.Height, "Rows")
	cmd.Flags().IntVar(&genCfg.BonusPercent, "bonus", genCfg.BonusPercent, "Percent of letter tiles that are bonus tiles")
	cmd.Flags().IntVar(&genCfg.BlockerPercent, "blocker", genCfg.BlockerPercent, "Percent of slots that hold a blocker")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; 0 picks one")
	cmd.Flags().StringVar(&name, "name", "", "Puzzle name; random when empty")

	return cmd
}
