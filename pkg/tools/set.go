package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/docker/multiagent/pkg/metrics"
	"github.com/docker/multiagent/pkg/mock"
	"github.com/docker/multiagent/pkg/telemetry"
)

// Definition is one mock tool: the ADK tool handed to agents plus a direct,
// model-free entry point used by the CLI.
type Definition struct {
	Name        string
	Description string
	// Usage lists the key=value arguments accepted by Invoke, brackets mark optional ones.
	Usage string

	tool   tool.Tool
	invoke func(ctx context.Context, args map[string]any) (any, error)
}

func (d *Definition) Tool() tool.Tool {
	return d.tool
}

// Set holds every mock tool, in declaration order.
type Set struct {
	defs   []*Definition
	byName map[string]*Definition
}

func NewSet() (*Set, error) {
	defs, err := definitions()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}

	return &Set{defs: defs, byName: byName}, nil
}

func (s *Set) Definitions() []*Definition {
	return s.defs
}

func (s *Set) Lookup(name string) (*Definition, bool) {
	def, ok := s.byName[name]
	return def, ok
}

// Tools returns the ADK tools with the given names, in the given order.
func (s *Set) Tools(names ...string) ([]tool.Tool, error) {
	out := make([]tool.Tool, 0, len(names))
	for _, name := range names {
		def, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool %q", name)
		}
		out = append(out, def.tool)
	}
	return out, nil
}

// Invoke runs a tool without going through a model. args are decoded into the
// tool's argument struct; unknown keys are rejected.
func (s *Set) Invoke(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	def, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}

	res, err := def.invoke(ctx, args)
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", name, err)
	}
	return out, nil
}

func define[A, R any](name, description, usage string, fn func(A) R, status func(R) string) (*Definition, error) {
	handler := func(ctx tool.Context, args A) (R, error) {
		return observe(ctx, name, args, fn, status), nil
	}

	t, err := functiontool.New[A, R](functiontool.Config{
		Name:        name,
		Description: description,
	}, handler)
	if err != nil {
		return nil, fmt.Errorf("creating tool %s: %w", name, err)
	}

	return &Definition{
		Name:        name,
		Description: description,
		Usage:       usage,
		tool:        t,
		invoke: func(ctx context.Context, raw map[string]any) (any, error) {
			var args A
			if err := decodeArgs(raw, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
			}
			return observe(ctx, name, args, fn, status), nil
		},
	}, nil
}

// observe runs fn inside a span and records its outcome. A result whose status
// is "error" is a soft failure: it is counted and flagged on the span but still
// returned to the caller as a regular value.
func observe[A, R any](ctx context.Context, name string, args A, fn func(A) R, status func(R) string) R {
	_, span := telemetry.Tracer().Start(ctx, "tool."+name, trace.WithAttributes(
		attribute.String("tool.name", name),
	))
	defer span.End()

	start := time.Now()
	res := fn(args)
	duration := time.Since(start)

	st := status(res)
	metrics.RecordToolCall(name, st, duration)
	span.SetAttributes(attribute.String("tool.status", st))

	if st == mock.StatusError {
		span.SetStatus(codes.Error, "tool returned an error record")
		slog.Debug("Tool returned an error record", "tool", name)
	} else {
		span.SetStatus(codes.Ok, "tool completed")
	}

	return res
}

func decodeArgs(raw map[string]any, dst any) error {
	if raw == nil {
		raw = map[string]any{}
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
