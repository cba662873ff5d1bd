package prompt

import (
	"strings"
	"testing"
)

func TestUnifiedDiff(t *testing.T) {
	a := "Hello\nWorld\n"
	b := "Hello\nEveryone\n"
	d := UnifiedDiff(a, b)
	if !strings.Contains(d, "-World") || !strings.Contains(d, "+Everyone") {
		t.Fatalf("unexpected diff: %q", d)
	}
	if UnifiedDiff(a, a) != "" {
		t.Fatal("equal bodies should not diff")
	}
}

func TestStoreDiff(t *testing.T) {
	s := NewStore()
	p1, err := s.Save(Template{Name: "x", Body: "A"})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.Save(Template{Name: "x", Body: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if d := s.Diff("x", p1.Version, p2.Version); d == "" {
		t.Fatal("expected diff")
	}
	if d := s.Diff("x", 1, 9); d != "" {
		t.Fatal("missing version should yield empty diff")
	}
}
