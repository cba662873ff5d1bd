package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/nawi-n/SmartCart/pkg/errmodel"
)

// Descriptor is the public description of a registered operation.
type Descriptor struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Template     string          `json:"template"`
	Strict       bool            `json:"strict"`
	Fields       []string        `json:"fields"`
	Record       string          `json:"record,omitempty"`
	ResultSchema json.RawMessage `json:"result_schema,omitempty"`
}

// Invoker is implemented by every Operation[T]; it erases T for dispatch.
type Invoker interface {
	Describe() Descriptor
	Invoke(ctx context.Context, a *Agent, c Context) (any, error)
	prepare(a *Agent) (*SchemaValidator, error)
}

type entry struct {
	op     Invoker
	desc   Descriptor
	schema *SchemaValidator
}

// Registry dispatches operations by name. Register everything at startup;
// lookups are safe for concurrent use.
type Registry struct {
	agent *Agent
	mu    sync.RWMutex
	ops   map[string]entry
}

// NewRegistry creates an empty registry executing through a.
func NewRegistry(a *Agent) *Registry {
	return &Registry{agent: a, ops: map[string]entry{}}
}

// Agent returns the agent operations execute through.
func (r *Registry) Agent() *Agent { return r.agent }

// Register adds operations. Each must have a unique name, an existing
// template and, when lenient, a schema-conformant fallback.
func (r *Registry) Register(ops ...Invoker) error {
	var errs []error
	for _, op := range ops {
		if err := r.register(op); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) register(op Invoker) error {
	if op == nil {
		return errors.New("agent: nil operation")
	}
	schema, err := op.prepare(r.agent)
	if err != nil {
		return err
	}
	d := op.Describe()
	if t, ok := r.agent.prompts.Get(d.Template, 0); ok {
		d.Fields = append([]string{}, t.Fields...)
	}
	if d.Record != "" && !slices.Contains(d.Fields, d.Record) {
		return fmt.Errorf("agent: %s: record field %q is not a template field", d.Name, d.Record)
	}
	d.ResultSchema = schema.Raw()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[d.Name]; exists {
		return fmt.Errorf("agent: operation %q already registered", d.Name)
	}
	r.ops[d.Name] = entry{op: op, desc: d, schema: schema}
	return nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.ops[name]
	return e.op, ok
}

// Names returns registered operation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ops))
	for n := range r.ops {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Describe returns descriptors for every operation, sorted by name.
func (r *Registry) Describe() []Descriptor {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, r.ops[n].desc)
	}
	return out
}

// Execute runs the named operation. Unknown names yield a not_found compact
// error; strict failures yield *GenerationError.
func (r *Registry) Execute(ctx context.Context, name string, c Context) (any, error) {
	r.mu.RLock()
	e, ok := r.ops[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errmodel.NotFound("unknown operation", map[string]any{"operation": name})
	}
	return e.op.Invoke(ctx, r.agent, e.desc.Bind(c))
}

// Bind returns the context an operation renders with. A non-empty context
// that sets none of the template fields is taken to be the record itself and
// is filed under Record; any other context is returned unchanged.
func (d Descriptor) Bind(c Context) Context {
	if d.Record == "" || len(c) == 0 {
		return c
	}
	for _, f := range d.Fields {
		if _, ok := c[f]; ok {
			return c
		}
	}
	return Context{d.Record: map[string]any(c)}
}
