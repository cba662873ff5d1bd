package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"
)

// funcs available to every template. json embeds upstream values as data so
// their content cannot be mistaken for template-authored section headers.
var funcs = template.FuncMap{
	"json": toJSON,
	"join": strings.Join,
}

func toJSON(v any) (string, error) {
	if v == nil {
		return "null", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func parseTemplate(name, body string) (*template.Template, error) {
	return template.New(name).Funcs(funcs).Parse(body)
}

// Rendered is the outcome of a Render call.
type Rendered struct {
	Text    string
	Version int
	// Missing lists declared fields absent from the data. They render as "<no value>".
	Missing []string
}

// Render fills the latest version of name with data.
func (s *Store) Render(name string, data map[string]any) (Rendered, error) {
	t, ok := s.Get(name, 0)
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.mu.RLock()
	tpl := s.parsed[versionKey(t.Name, t.Version)]
	s.mu.RUnlock()

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return Rendered{}, fmt.Errorf("prompt: render %s: %w", name, err)
	}
	return Rendered{Text: buf.String(), Version: t.Version, Missing: MissingFields(t.Fields, data)}, nil
}

// MissingFields returns the declared fields with no entry in data, sorted.
func MissingFields(fields []string, data map[string]any) []string {
	var out []string
	for _, f := range fields {
		if _, ok := data[f]; !ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// ReferencedFields lists the top-level fields ({{.name}}) a template body reads.
func ReferencedFields(body string) ([]string, error) {
	tpl, err := parseTemplate("lint", body)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	if tpl.Tree != nil {
		walk(tpl.Tree.Root, seen)
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func walk(n parse.Node, seen map[string]bool) {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			walk(c, seen)
		}
	case *parse.ActionNode:
		walkPipe(n.Pipe, seen)
	case *parse.IfNode:
		walkPipe(n.Pipe, seen)
		walk(n.List, seen)
		walk(n.ElseList, seen)
	// Inside range/with the dot is rebound; only the pipeline reads top-level fields.
	case *parse.RangeNode:
		walkPipe(n.Pipe, seen)
		walk(n.ElseList, seen)
	case *parse.WithNode:
		walkPipe(n.Pipe, seen)
		walk(n.ElseList, seen)
	}
}

func walkPipe(p *parse.PipeNode, seen map[string]bool) {
	if p == nil {
		return
	}
	for _, cmd := range p.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				if len(a.Ident) > 0 {
					seen[a.Ident[0]] = true
				}
			case *parse.PipeNode:
				walkPipe(a, seen)
			}
		}
	}
}
