package main

import (
	"fmt"
	"strings"

	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/spf13/cobra"
)

func newPromptsCmd() *cobra.Command {
	var (
		showDiff bool
		show     string
	)
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "List prompt templates",
		Long:  `List prompt templates with their versions and fields. With PROMPT_OVERRIDES set, --diff prints what the overrides change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, changes, err := agents.NewPromptStore(cfg.PromptOverrides)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case show != "":
				t, ok := store.Get(show, 0)
				if !ok {
					return fmt.Errorf("no template %q", show)
				}
				fmt.Fprint(out, t.Body)
			case showDiff:
				if len(changes) == 0 {
					fmt.Fprintln(out, "no overrides")
				}
				for _, c := range changes {
					fmt.Fprintf(out, "# %s v%d -> v%d\n%s\n", c.Name, c.From, c.To, c.Diff)
				}
			default:
				for _, name := range store.Names() {
					t, _ := store.Get(name, 0)
					fmt.Fprintf(out, "%s\tv%d\t%s\n", t.Name, t.Version, strings.Join(t.Fields, ","))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print diffs introduced by PROMPT_OVERRIDES")
	cmd.Flags().StringVar(&show, "show", "", "print the body of one template")
	return cmd
}
