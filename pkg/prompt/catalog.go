package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML document format for a set of templates.
//
//	templates:
//	  - name: generate_persona
//	    fields: [customer]
//	    body: |
//	      ...
type Catalog struct {
	Templates []Template `yaml:"templates"`
}

// DecodeCatalog parses a YAML catalog.
func DecodeCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("prompt: decode catalog: %w", err)
	}
	return c, nil
}

// Change records a template whose body was replaced by a later Load.
type Change struct {
	Name string
	From int
	To   int
	Diff string
}

// Load saves every template in c. Templates already present get a new
// version only when their body differs; the returned changes describe those.
func (s *Store) Load(c Catalog) ([]Change, error) {
	var changes []Change
	var errs []error
	for _, t := range c.Templates {
		prev, existed := s.Get(t.Name, 0)
		if existed && prev.Body == t.Body {
			continue
		}
		saved, err := s.Save(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if existed {
			changes = append(changes, Change{
				Name: t.Name,
				From: prev.Version,
				To:   saved.Version,
				Diff: UnifiedDiff(prev.Body, saved.Body),
			})
		}
	}
	return changes, errors.Join(errs...)
}

// LoadFile reads a YAML catalog from path and loads it.
func (s *Store) LoadFile(path string) ([]Change, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	defer f.Close()
	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, err
	}
	return s.Load(c)
}
