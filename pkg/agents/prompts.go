package agents

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/nawi-n/SmartCart/pkg/prompt"
)

//go:embed prompts.yaml
var builtinPrompts []byte

// BuiltinCatalog returns the prompt templates shipped with the binary.
func BuiltinCatalog() (prompt.Catalog, error) {
	return prompt.DecodeCatalog(bytes.NewReader(builtinPrompts))
}

// NewPromptStore loads the built-in templates and then, when overrides is
// set, the YAML catalog at that path. Overridden templates get a new version
// and are reported as changes.
func NewPromptStore(overrides string) (*prompt.Store, []prompt.Change, error) {
	c, err := BuiltinCatalog()
	if err != nil {
		return nil, nil, err
	}
	s := prompt.NewStore()
	if _, err := s.Load(c); err != nil {
		return nil, nil, fmt.Errorf("agents: builtin prompts: %w", err)
	}
	if overrides == "" {
		return s, nil, nil
	}
	changes, err := s.LoadFile(overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("agents: prompt overrides: %w", err)
	}
	return s, changes, nil
}
