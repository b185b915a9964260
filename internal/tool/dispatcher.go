package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"

	"github.com/runoshun/kanban/internal/board"
	"github.com/runoshun/kanban/internal/domain"
)

// Status reports how a call ended.
type Status string

// Call statuses.
const (
	StatusOK        Status = "ok"        // Applied
	StatusIgnored   Status = "ignored"   // Payload failed schema validation
	StatusUnchanged Status = "unchanged" // Valid, but nothing changed
	StatusFailed    Status = "failed"    // Handler error or panic
)

// Response is the result of one tool call.
type Response struct {
	Result any    `json:"result,omitempty"`
	Tool   string `json:"tool"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// handler runs a validated call. A nil result means the tool returns nothing.
type handler func(ctx context.Context, p Payload) (any, error)

// Dispatcher routes named tool calls to the board store.
type Dispatcher struct {
	store    *board.Store
	logger   domain.Logger
	handlers map[string]handler
	defs     map[string]Definition
}

const catTool = "tool"

// New creates a Dispatcher over store.
func New(store *board.Store, logger domain.Logger) *Dispatcher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	d := &Dispatcher{
		store:  store,
		logger: logger,
		defs:   make(map[string]Definition, len(definitions)),
	}
	d.handlers = d.table()
	for _, def := range definitions {
		d.defs[def.Name] = def
	}
	return d
}

// Definitions returns every tool definition in presentation order.
func (d *Dispatcher) Definitions() []Definition {
	out := make([]Definition, len(definitions))
	for i, def := range definitions {
		def.Props = slices.Clone(def.Props)
		out[i] = def
	}
	return out
}

// Definition returns one tool definition.
func (d *Dispatcher) Definition(name string) (Definition, bool) {
	def, ok := d.defs[name]
	return def, ok
}

// Call runs the named tool. The only error is ErrUnknownTool; every other
// outcome is reported through the response status.
func (d *Dispatcher) Call(ctx context.Context, name string, p Payload) (Response, error) {
	def, ok := d.defs[name]
	if !ok {
		d.logger.Warn(catTool, fmt.Sprintf("unknown tool %q", name))
		return Response{}, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	if p == nil {
		p = Payload{}
	}
	p = normalizePayload(name, p)

	if err := validate(def, p); err != nil {
		d.logger.Debug(catTool, fmt.Sprintf("%s ignored: %v", name, err))
		return Response{Tool: name, Status: StatusIgnored, Error: err.Error()}, nil
	}

	result, err := d.run(ctx, name, p)
	switch {
	case err == nil:
		d.logger.Debug(catTool, fmt.Sprintf("%s ok", name))
		return Response{Tool: name, Status: StatusOK, Result: result}, nil
	case errors.Is(err, domain.ErrNoChange):
		return Response{Tool: name, Status: StatusUnchanged}, nil
	default:
		d.logger.Error(catTool, fmt.Sprintf("%s failed: %v", name, err))
		return Response{Tool: name, Status: StatusFailed, Error: err.Error()}, nil
	}
}

// CallJSON decodes raw as a JSON object and runs the named tool.
// Empty input is an empty payload; anything other than an object is ignored.
func (d *Dispatcher) CallJSON(ctx context.Context, name string, raw []byte) (Response, error) {
	if _, ok := d.defs[name]; !ok {
		return d.Call(ctx, name, nil)
	}
	p := Payload{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p); err != nil {
			err = fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
			d.logger.Debug(catTool, fmt.Sprintf("%s ignored: %v", name, err))
			return Response{Tool: name, Status: StatusIgnored, Error: err.Error()}, nil
		}
	}
	return d.Call(ctx, name, p)
}

// run invokes the handler, turning a panic into an error.
func (d *Dispatcher) run(ctx context.Context, name string, p Payload) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug(catTool, fmt.Sprintf("%s panicked: %v\n%s", name, r, debug.Stack()))
			result = nil
			err = fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return d.handlers[name](ctx, p)
}

// normalizePayload applies per-tool aliases before validation.
func normalizePayload(name string, p Payload) Payload {
	if name == AssignTask && !p.present("id") && p.present("taskId") {
		out := make(Payload, len(p)+1)
		for k, v := range p {
			out[k] = v
		}
		out["id"] = p["taskId"]
		return out
	}
	return p
}
