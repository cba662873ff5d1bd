package main

import (
	"fmt"
	"os"

	_ "github.com/nawi-n/SmartCart/pkg/adapters/llm/anthropic"
	_ "github.com/nawi-n/SmartCart/pkg/adapters/llm/gemini"
	_ "github.com/nawi-n/SmartCart/pkg/adapters/llm/ollama"
	_ "github.com/nawi-n/SmartCart/pkg/adapters/llm/openai"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
