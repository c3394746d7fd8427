package infra

import (
	"fmt"
	"slices"
	"sync"
)

// Resource is any typed value produced from a server payload.
type Resource interface {
	GetID() string
}

// Base carries the identifier shared by every resource.
type Base struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
}

// GetID implements Resource.
func (b Base) GetID() string {
	return b.ID
}

// Constructor builds a typed resource from the fields of one JSON object.
// It must not perform I/O and must report malformed fields through the reader.
type Constructor func(r *FieldReader) (Resource, error)

// Descriptor binds a resource name to its constructor.
type Descriptor struct {
	Name      string
	Construct Constructor
}

// Registry maps resource names to descriptors. It is filled at package init
// and read concurrently afterwards.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

//nolint:gochecknoglobals
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry populated by the resource definitions of this package.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds d to the default registry and returns it.
func Register(name string, construct Constructor) Descriptor {
	d := Descriptor{Name: name, Construct: construct}
	defaultRegistry.Register(d)

	return d
}

// Register adds a descriptor. Registering an empty or duplicate name panics.
func (r *Registry) Register(d Descriptor) {
	if d.Name == "" || d.Construct == nil {
		panic("infra: descriptor requires a name and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.Name]; exists {
		panic(fmt.Sprintf("infra: resource %q registered twice", d.Name))
	}

	r.descriptors[d.Name] = d
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.RLock()
	d, ok := r.descriptors[name]
	r.mu.RUnlock()

	if !ok {
		return Descriptor{}, &UnknownResourceError{Name: name}
	}

	return d, nil
}

// Names returns the registered resource names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Construct dispatches v to the constructor registered under name.
func (r *Registry) Construct(name string, v Value) (Resource, error) {
	return r.constructAt(name, name, v)
}

// ConstructAll constructs every element of values. The first failure aborts
// the whole batch and no partial result is returned.
func (r *Registry) ConstructAll(name string, values []Value) ([]Resource, error) {
	out := make([]Resource, 0, len(values))

	for i, v := range values {
		res, err := r.constructAt(name, fmt.Sprintf("%s[%d]", name, i), v)
		if err != nil {
			return nil, err
		}

		out = append(out, res)
	}

	return out, nil
}

func (r *Registry) constructAt(name, path string, v Value) (Resource, error) {
	d, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	if v.Kind() != KindObject {
		return nil, &DecodeError{Path: path, Expected: KindObject.String(), Actual: v.Kind().String()}
	}

	reader := NewFieldReader(r, path, v)

	res, err := d.Construct(reader)
	if err == nil {
		err = reader.Err()
	}

	if err != nil {
		return nil, fmt.Errorf("constructing %s: %w", name, err)
	}

	return res, nil
}
