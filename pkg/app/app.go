package app

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/memory"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/docker/multiagent/pkg/metrics"
	"github.com/docker/multiagent/pkg/telemetry"
)

// Options identifies the conversation the App runs in.
type Options struct {
	AppName   string
	UserID    string
	SessionID string

	// Memory receives the session after every turn. Defaults to an in-process store.
	Memory memory.Service
}

// App owns one runner bound to one agent and one session. Sessions and
// memory live in process.
type App struct {
	opts     Options
	agent    agent.Agent
	sessions session.Service
	memory   memory.Service
	runner   *runner.Runner
}

// New creates the session up front and builds a runner for a.
func New(ctx context.Context, a agent.Agent, opts Options) (*App, error) {
	if opts.AppName == "" || opts.UserID == "" || opts.SessionID == "" {
		return nil, errors.New("app name, user id and session id are required")
	}

	sessions := session.InMemoryService()
	mem := opts.Memory
	if mem == nil {
		mem = memory.InMemoryService()
	}

	if _, err := sessions.Create(ctx, &session.CreateRequest{
		AppName:   opts.AppName,
		UserID:    opts.UserID,
		SessionID: opts.SessionID,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	r, err := runner.New(runner.Config{
		AppName:        opts.AppName,
		Agent:          a,
		SessionService: sessions,
		MemoryService:  mem,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	slog.Debug("Runner ready", "app", opts.AppName, "user", opts.UserID, "session", opts.SessionID, "agent", a.Name())

	return &App{
		opts:     opts,
		agent:    a,
		sessions: sessions,
		memory:   mem,
		runner:   r,
	}, nil
}

func (a *App) Agent() agent.Agent {
	return a.agent
}

func (a *App) Options() Options {
	return a.opts
}

// Run sends prompt as the user and yields every event the agents produce.
// Once the turn completes, the session is copied into memory.
func (a *App) Run(ctx context.Context, prompt string) iter.Seq2[*session.Event, error] {
	return func(yield func(*session.Event, error) bool) {
		ctx, span := telemetry.Tracer().Start(ctx, "app.turn", trace.WithAttributes(
			attribute.String("agent", a.agent.Name()),
			attribute.String("session.id", a.opts.SessionID),
		))
		defer span.End()

		start := time.Now()
		status := "success"
		defer func() {
			metrics.RecordTurn(a.agent.Name(), status, time.Since(start))
		}()

		fail := func(err error) {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, "turn failed")
			yield(nil, err)
		}

		msg := genai.NewContentFromText(prompt, genai.RoleUser)
		events := 0
		for event, err := range a.runner.Run(ctx, a.opts.UserID, a.opts.SessionID, msg, agent.RunConfig{}) {
			if err != nil {
				fail(err)
				return
			}
			events++
			if !yield(event, nil) {
				span.SetStatus(codes.Ok, "turn abandoned by caller")
				return
			}
		}

		if err := a.remember(ctx); err != nil {
			fail(err)
			return
		}

		span.SetAttributes(attribute.Int("events", events))
		span.SetStatus(codes.Ok, "turn completed")
	}
}

// Ask runs one turn and summarizes it.
func (a *App) Ask(ctx context.Context, prompt string) (*Reply, error) {
	var reply Reply
	for event, err := range a.Run(ctx, prompt) {
		if err != nil {
			return nil, err
		}
		reply.add(event)
	}
	return &reply, nil
}

// Session returns the current state of the conversation.
func (a *App) Session(ctx context.Context) (session.Session, error) {
	resp, err := a.sessions.Get(ctx, &session.GetRequest{
		AppName:   a.opts.AppName,
		UserID:    a.opts.UserID,
		SessionID: a.opts.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return resp.Session, nil
}

// Recall searches what previous turns stored in memory.
func (a *App) Recall(ctx context.Context, query string) ([]memory.Entry, error) {
	resp, err := a.memory.SearchMemory(ctx, &memory.SearchRequest{
		Query:   query,
		UserID:  a.opts.UserID,
		AppName: a.opts.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search memory: %w", err)
	}
	return resp.Memories, nil
}

func (a *App) remember(ctx context.Context) error {
	sess, err := a.Session(ctx)
	if err != nil {
		return err
	}
	if err := a.memory.AddSessionToMemory(ctx, sess); err != nil {
		return fmt.Errorf("failed to add session to memory: %w", err)
	}
	return nil
}
