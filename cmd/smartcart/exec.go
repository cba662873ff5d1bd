package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "exec <operation>",
		Short: "Run one operation with a JSON context",
		Long:  `Run one operation. The context is a JSON object read from --input, or from stdin when --input is "-" or empty.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, setupLogging(cfg))
			if err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runExec(cmd, a, args[0], in)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON context file (default stdin)")
	return cmd
}

func runExec(cmd *cobra.Command, a *app, name string, in io.Reader) error {
	c := agent.Context{}
	if err := json.NewDecoder(in).Decode(&c); err != nil && err != io.EOF {
		return fmt.Errorf("read context: %w", err)
	}
	v, err := a.registry.Execute(cmd.Context(), name, c)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
