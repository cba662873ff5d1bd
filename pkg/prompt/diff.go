package prompt

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff between two template bodies, or "" when equal.
func UnifiedDiff(a, b string) string {
	if a == b {
		return ""
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "a",
		ToFile:   "b",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("diff error: %v", err)
	}
	return out
}

// Diff returns the unified diff between two versions of a template, or "" if either is missing.
func (s *Store) Diff(name string, v1, v2 int) string {
	p1, ok1 := s.Get(name, v1)
	p2, ok2 := s.Get(name, v2)
	if !ok1 || !ok2 {
		return ""
	}
	return UnifiedDiff(p1.Body, p2.Body)
}
