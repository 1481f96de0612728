package a2a

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/memory"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/server/adka2a"
	"google.golang.org/adk/session"
	"golang.org/x/sync/errgroup"

	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/metrics"
)

const (
	InvokePath  = "/invoke"
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

type Options struct {
	AppName string
	Version string
}

// NewHandler serves a over A2A. baseURL is the externally reachable address
// advertised in the agent card.
func NewHandler(a agent.Agent, baseURL *url.URL, opts Options) http.Handler {
	agentCard := &a2a.AgentCard{
		Name:               a.Name(),
		Description:        a.Description(),
		Skills:             adka2a.BuildAgentSkills(a),
		PreferredTransport: a2a.TransportProtocolJSONRPC,
		URL:                baseURL.JoinPath(InvokePath).String(),
		Capabilities:       a2a.AgentCapabilities{Streaming: true},
		Version:            opts.Version,
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
	}

	exec := newExecutor(adka2a.ExecutorConfig{
		RunnerConfig: runner.Config{
			AppName:        opts.AppName,
			Agent:          a,
			SessionService: session.InMemoryService(),
			MemoryService:  memory.InMemoryService(),
		},
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Accept"},
		MaxAge:       86400,
	}))
	e.Use(middleware.Recover())

	e.GET(a2asrv.WellKnownAgentCardPath, echo.WrapHandler(a2asrv.NewStaticAgentCardHandler(agentCard)))
	e.POST(InvokePath, echo.WrapHandler(a2asrv.NewJSONRPCHandler(a2asrv.NewHandler(exec))))
	e.GET(MetricsPath, echo.WrapHandler(metrics.Handler()))
	e.GET(HealthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "agent": a.Name()})
	})

	return e
}

// Run serves a on ln until ctx is canceled.
func Run(ctx context.Context, out *cli.Printer, a agent.Agent, opts Options, ln net.Listener) error {
	slog.Debug("Starting A2A server", "agent", a.Name(), "addr", ln.Addr().String())

	baseURL := &url.URL{Scheme: "http", Host: routableAddr(ln.Addr().String())}
	srv := &http.Server{
		Handler:           NewHandler(a, baseURL, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	out.Println("A2A server listening on", baseURL.String())
	out.Println("Agent card:", baseURL.JoinPath(a2asrv.WellKnownAgentCardPath).String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("A2A server failed", "error", err)
		return err
	}
	return nil
}

// routableAddr replaces wildcard hosts so the advertised URL can be dialed.
func routableAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
