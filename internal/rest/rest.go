package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	infrahttp "github.com/fivetwenty-io/infra-client/internal/http"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// Transport sends signed requests.
type Transport interface {
	Do(ctx context.Context, req *infrahttp.Request) (*infrahttp.Response, error)
}

// Engine runs the generic operations shared by every resource.
type Engine struct {
	transport  Transport
	builder    *Builder
	registry   *infra.Registry
	credential *infra.Credential
	host       string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock pins the clock used for Access-Time.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.builder = NewBuilder(clock)
	}
}

// WithRegistry sets the registry used to construct answers.
func WithRegistry(registry *infra.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithCredential sets the credential used when a call names none.
func WithCredential(cred *infra.Credential) Option {
	return func(e *Engine) {
		e.credential = cred
	}
}

// WithHost sends every request to host instead of the credential's environment host.
func WithHost(host string) Option {
	return func(e *Engine) {
		e.host = host
	}
}

// NewEngine creates an engine over transport.
func NewEngine(transport Transport, opts ...Option) *Engine {
	engine := &Engine{
		transport: transport,
		builder:   NewBuilder(nil),
		registry:  infra.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Registry returns the registry answers are constructed with.
func (e *Engine) Registry() *infra.Registry {
	return e.registry
}

// HostFor returns the base URL of an environment.
func HostFor(env infra.Environment) string {
	if env == infra.EnvironmentProduction {
		return constants.ProductionHost
	}

	return constants.SandboxHost
}

// send signs and sends one request and parses the JSON answer.
func (e *Engine) send(ctx context.Context, opts []infra.CallOption, method, resourceName, id string, query infra.Query, body any) (infra.Value, error) {
	callOpts := infra.ApplyCallOptions(opts...)

	cred, err := infra.ResolveCredential(callOpts.Credential, e.credential)
	if err != nil {
		return infra.Value{}, err
	}

	signed, err := e.builder.Build(ctx, cred, method, resourceName, id, query, body)
	if err != nil {
		return infra.Value{}, err
	}

	host := e.host
	if host == "" {
		host = HostFor(cred.Environment())
	}

	resp, err := e.transport.Do(ctx, &infrahttp.Request{
		BaseURL: host,
		Method:  signed.Method,
		Path:    signed.Path,
		Query:   signed.Query,
		Body:    signed.Body,
		Headers: signed.Headers,
	})
	if err != nil {
		if id != "" && resp != nil && resp.StatusCode == http.StatusNotFound {
			return infra.Value{}, &infra.NotFoundError{Resource: resourceName, ID: id, Cause: err}
		}

		return infra.Value{}, err
	}

	value, err := infra.ParseValue(resp.Body)
	if err != nil {
		return infra.Value{}, fmt.Errorf("%s %s: %w", method, signed.Path, err)
	}

	return value, nil
}

// single extracts and constructs the {lastName: {...}} member of an answer.
func (e *Engine) single(desc infra.Descriptor, value infra.Value) (infra.Resource, error) {
	key := LastName(desc.Name)

	member, ok := value.Get(key)
	if !ok {
		return nil, &infra.DecodeError{Path: "$." + key, Expected: infra.KindObject.String()}
	}

	return e.registry.Construct(desc.Name, member)
}

// list extracts the {plural: [...]} member of an answer.
func (e *Engine) list(desc infra.Descriptor, value infra.Value) ([]infra.Value, string, error) {
	if value.Kind() != infra.KindObject {
		return nil, "", &infra.DecodeError{Path: "$", Expected: infra.KindObject.String(), Actual: value.Kind().String()}
	}

	reader := infra.NewFieldReader(e.registry, "$", value)

	items := reader.Objects(LastNamePlural(desc.Name))
	cursor := reader.OptString("cursor")

	return items, cursor, reader.Err()
}

// Create posts entities in one bulk request. The answer must hold exactly one
// entity per input, in input order.
func (e *Engine) Create(ctx context.Context, desc infra.Descriptor, entities []any, query infra.Query, opts ...infra.CallOption) ([]infra.Resource, error) {
	plural := LastNamePlural(desc.Name)

	value, err := e.send(ctx, opts, http.MethodPost, desc.Name, "", query, map[string]any{plural: entities})
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", plural, err)
	}

	items, _, err := e.list(desc, value)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", plural, err)
	}

	if len(items) != len(entities) {
		return nil, &infra.ProtocolError{Resource: desc.Name, Expected: len(entities), Actual: len(items)}
	}

	return e.registry.ConstructAll(desc.Name, items)
}

// PostSingle posts one entity unwrapped and returns the {lastName: {...}} answer.
func (e *Engine) PostSingle(ctx context.Context, desc infra.Descriptor, entity any, query infra.Query, opts ...infra.CallOption) (infra.Resource, error) {
	value, err := e.send(ctx, opts, http.MethodPost, desc.Name, "", query, entity)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", LastName(desc.Name), err)
	}

	return e.single(desc, value)
}

// GetByID fetches one entity. A 404 answer yields *infra.NotFoundError.
func (e *Engine) GetByID(ctx context.Context, desc infra.Descriptor, id string, query infra.Query, opts ...infra.CallOption) (infra.Resource, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("getting %s: %w", desc.Name, infra.ErrEmptyID)
	}

	value, err := e.send(ctx, opts, http.MethodGet, desc.Name, id, query, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", desc.Name, id, err)
	}

	return e.single(desc, value)
}

// Update patches one entity with the keys present in patch.
func (e *Engine) Update(ctx context.Context, desc infra.Descriptor, id string, patch map[string]any, opts ...infra.CallOption) (infra.Resource, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("updating %s: %w", desc.Name, infra.ErrEmptyID)
	}

	if patch == nil {
		patch = map[string]any{}
	}

	value, err := e.send(ctx, opts, http.MethodPatch, desc.Name, id, nil, patch)
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", desc.Name, id, err)
	}

	return e.single(desc, value)
}

// Delete cancels one entity and returns its post-cancellation state.
func (e *Engine) Delete(ctx context.Context, desc infra.Descriptor, id string, opts ...infra.CallOption) (infra.Resource, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("deleting %s: %w", desc.Name, infra.ErrEmptyID)
	}

	value, err := e.send(ctx, opts, http.MethodDelete, desc.Name, id, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting %s %s: %w", desc.Name, id, err)
	}

	return e.single(desc, value)
}

// GetSingleton returns the first entity of a collection, for resources such
// as balances that are exposed as one-element lists.
func (e *Engine) GetSingleton(ctx context.Context, desc infra.Descriptor, query infra.Query, opts ...infra.CallOption) (infra.Resource, error) {
	page, err := e.GetPage(ctx, desc, query, "", 1, opts...)
	if err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		return nil, &infra.NotFoundError{Resource: desc.Name, Cause: errEmptyCollection}
	}

	return page.Items[0], nil
}

var errEmptyCollection = errors.New("collection is empty")
