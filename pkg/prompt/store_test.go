package prompt

import (
	"errors"
	"testing"
)

func TestStore_VersioningAndLint(t *testing.T) {
	s := NewStore()

	if _, err := s.Save(Template{Name: "", Body: "hello"}); err == nil {
		t.Fatal("expected lint failure for missing name")
	} else if !errors.Is(err, ErrLintFailed) {
		t.Fatalf("expected ErrLintFailed, got %v", err)
	}

	v1, err := s.Save(Template{Name: "welcome", Body: "Hi {{.user}}", Fields: []string{"user"}})
	if err != nil {
		t.Fatalf("save v1: %v", err)
	}
	if v1.Version != 1 {
		t.Fatalf("v1 version=%d", v1.Version)
	}

	v2, err := s.Save(Template{Name: "welcome", Body: "Hello {{.user}}!", Fields: []string{"user"}})
	if err != nil {
		t.Fatal(err)
	}
	if v2.Version != 2 {
		t.Fatalf("v2 version=%d", v2.Version)
	}

	got, ok := s.Get("welcome", 0)
	if !ok || got.Version != 2 {
		t.Fatalf("get latest=%+v ok=%v", got, ok)
	}
	got1, ok := s.Get("welcome", 1)
	if !ok || got1.Version != 1 {
		t.Fatalf("get v1=%+v ok=%v", got1, ok)
	}
	if _, ok := s.Get("welcome", 7); ok {
		t.Fatal("unexpected version 7")
	}

	all := s.List("welcome")
	if len(all) != 2 || all[0].Version != 1 || all[1].Version != 2 {
		t.Fatalf("list=%+v", all)
	}
}

func TestLintRules(t *testing.T) {
	cases := []struct {
		name string
		tpl  Template
		rule string
	}{
		{"empty body", Template{Name: "x", Body: "  "}, "body.required"},
		{"bad syntax", Template{Name: "x", Body: "{{.a"}, "body.parse"},
		{"undeclared", Template{Name: "x", Body: "{{.a}} {{json .b}}", Fields: []string{"a"}}, "fields.undeclared"},
		{"secret", Template{Name: "x", Body: "use key sk-abcdefghijklmnopqrstuv"}, "security.secrets"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			issues := Lint(c.tpl)
			found := false
			for _, is := range issues {
				if is.Rule == c.rule {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected rule %s in %v", c.rule, issues)
			}
		})
	}
	if issues := Lint(Template{Name: "ok", Body: "{{if .a}}{{json .a}}{{end}}", Fields: []string{"a"}}); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestNames(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"b", "a", "c"} {
		if _, err := s.Save(Template{Name: n, Body: "static"}); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Names()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("names=%v", got)
	}
}
