package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// Template is a versioned prompt template. Body uses text/template syntax
// and is rendered against a map of named fields.
type Template struct {
	Name    string            `yaml:"name"`
	Version int               `yaml:"-"`
	Body    string            `yaml:"body"`
	Fields  []string          `yaml:"fields"`
	Meta    map[string]string `yaml:"meta,omitempty"`
}

// Issue describes a lint finding.
type Issue struct {
	Rule    string
	Message string
}

func (i Issue) String() string { return i.Rule + ": " + i.Message }

// Lint runs static checks: required name/body, parseable body, every field
// referenced by the body declared in Fields, and no secret-like content.
func Lint(t Template) []Issue {
	var issues []Issue
	if t.Name == "" {
		issues = append(issues, Issue{Rule: "name.required", Message: "name is required"})
	}
	if strings.TrimSpace(t.Body) == "" {
		issues = append(issues, Issue{Rule: "body.required", Message: "body is empty"})
		return issues
	}
	if containsSecretLike(t.Body) {
		issues = append(issues, Issue{Rule: "security.secrets", Message: "body appears to contain secrets-like content"})
	}
	refs, err := ReferencedFields(t.Body)
	if err != nil {
		issues = append(issues, Issue{Rule: "body.parse", Message: err.Error()})
		return issues
	}
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f] = true
	}
	for _, r := range refs {
		if !declared[r] {
			issues = append(issues, Issue{Rule: "fields.undeclared", Message: fmt.Sprintf("body references %q which is not declared", r)})
		}
	}
	return issues
}

var (
	secretNeedles = []string{"aws_secret_access_key", "begin private key", "api_key="}
	secretToken   = regexp.MustCompile(`\b(?:sk-|AIza)[-_A-Za-z0-9]{16,}`)
)

func containsSecretLike(s string) bool {
	ls := strings.ToLower(s)
	for _, n := range secretNeedles {
		if strings.Contains(ls, n) {
			return true
		}
	}
	return secretToken.MatchString(s)
}

// Store is an in-memory versioned template store. Parsed templates are kept
// alongside their source so rendering never re-parses.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]Template // name -> versions (ascending)
	parsed map[string]*template.Template
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string][]Template), parsed: make(map[string]*template.Template)}
}

var (
	ErrLintFailed = errors.New("prompt: template failed lint checks")
	ErrNotFound   = errors.New("prompt: template not found")
)

// LintError carries the issues behind ErrLintFailed.
type LintError struct {
	Name   string
	Issues []Issue
}

func (e *LintError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("prompt: %s: %s", e.Name, strings.Join(parts, "; "))
}

func (e *LintError) Unwrap() error { return ErrLintFailed }

// Save adds a new version. If name exists, version increments by 1; otherwise starts at 1.
func (s *Store) Save(t Template) (Template, error) {
	if issues := Lint(t); len(issues) > 0 {
		return Template{}, &LintError{Name: t.Name, Issues: issues}
	}
	tpl, err := parseTemplate(t.Name, t.Body)
	if err != nil {
		return Template{}, &LintError{Name: t.Name, Issues: []Issue{{Rule: "body.parse", Message: err.Error()}}}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := s.data[t.Name]
	next := 1
	if len(versions) > 0 {
		next = versions[len(versions)-1].Version + 1
	}
	nt := Template{
		Name:    t.Name,
		Version: next,
		Body:    t.Body,
		Fields:  append([]string(nil), t.Fields...),
		Meta:    t.Meta,
	}
	s.data[t.Name] = append(versions, nt)
	s.parsed[versionKey(t.Name, next)] = tpl
	return nt, nil
}

// Get retrieves specific version; if version==0 returns latest.
func (s *Store) Get(name string, version int) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions := s.data[name]
	if len(versions) == 0 {
		return Template{}, false
	}
	if version <= 0 {
		return versions[len(versions)-1], true
	}
	i := sort.Search(len(versions), func(i int) bool { return versions[i].Version >= version })
	if i < len(versions) && versions[i].Version == version {
		return versions[i], true
	}
	return Template{}, false
}

// List returns all versions for a name in ascending order.
func (s *Store) List(name string) []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Template(nil), s.data[name]...)
}

// Names returns every template name in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for n := range s.data {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func versionKey(name string, v int) string { return fmt.Sprintf("%s@%d", name, v) }
