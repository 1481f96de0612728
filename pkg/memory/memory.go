// Package memory picks where finished sessions are remembered.
package memory

import (
	"context"

	adkmemory "google.golang.org/adk/memory"

	"github.com/docker/multiagent/pkg/memory/sqlite"
)

// Open returns an in-process memory service when path is empty, and a SQLite
// backed one otherwise. close must be called once the service is unused.
func Open(ctx context.Context, path string) (svc adkmemory.Service, closeFn func() error, err error) {
	if path == "" {
		return adkmemory.InMemoryService(), func() error { return nil }, nil
	}

	db, err := sqlite.NewService(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}
