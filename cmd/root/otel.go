package root

import (
	"context"

	"github.com/docker/multiagent/pkg/telemetry"
	"github.com/docker/multiagent/pkg/version"
)

// initOTelSDK installs the global tracer provider. Spans are only exported
// when OTEL_EXPORTER_OTLP_ENDPOINT is set.
func initOTelSDK(ctx context.Context) (func(context.Context) error, error) {
	return telemetry.Init(ctx, version.Version)
}
