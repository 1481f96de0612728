package a2a

import (
	"context"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"
	"google.golang.org/adk/server/adka2a"
)

// executor runs the ADK agent for A2A requests. Events are routed through
// partsQueue so artifact updates always carry a parts array, which A2A
// clients require even when it is empty.
type executor struct {
	inner *adka2a.Executor
}

var _ a2asrv.AgentExecutor = (*executor)(nil)

func newExecutor(config adka2a.ExecutorConfig) *executor {
	return &executor{inner: adka2a.NewExecutor(config)}
}

func (e *executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.inner.Execute(ctx, reqCtx, &partsQueue{Queue: queue})
}

func (e *executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.inner.Cancel(ctx, reqCtx, queue)
}

type partsQueue struct {
	eventqueue.Queue
}

func (q *partsQueue) Write(ctx context.Context, event a2a.Event) error {
	return q.Queue.Write(ctx, withParts(event))
}

func (q *partsQueue) WriteVersioned(ctx context.Context, event a2a.Event, version a2a.TaskVersion) error {
	return q.Queue.WriteVersioned(ctx, withParts(event), version)
}

func withParts(event a2a.Event) a2a.Event {
	if update, ok := event.(*a2a.TaskArtifactUpdateEvent); ok && update.Artifact != nil && update.Artifact.Parts == nil {
		update.Artifact.Parts = []a2a.Part{}
	}
	return event
}
