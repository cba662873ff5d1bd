package main

import (
	"fmt"
	"os"

	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/nawi-n/SmartCart/pkg/eval"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var minScore float64
	cmd := &cobra.Command{
		Use:   "eval <dir>",
		Short: "Replay recorded model replies against the current prompts",
		Long:  `Replay JSON fixtures from <dir> through every operation using the built-in prompts plus PROMPT_OVERRIDES. No provider is called.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fixtures, err := eval.LoadFixtures(os.DirFS(args[0]), ".")
			if err != nil {
				return err
			}
			store, _, err := agents.NewPromptStore(cfg.PromptOverrides)
			if err != nil {
				return err
			}
			rep, err := eval.Run(cmd.Context(), store, agents.Register, fixtures)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range rep.Details {
				fmt.Fprintln(out, d)
			}
			fmt.Fprintf(out, "passed %d/%d (score %.2f)\n", rep.Passed, rep.Total, rep.Score)
			if rep.Score < minScore {
				return fmt.Errorf("score %.2f below --min %.2f", rep.Score, minScore)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&minScore, "min", 1, "fail when the score is below this")
	return cmd
}
