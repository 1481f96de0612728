package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/model/scripted"
	"github.com/docker/multiagent/pkg/team"
	"github.com/docker/multiagent/pkg/tools"
)

func TestRoutableAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr string
		want string
	}{
		{"ipv6 wildcard", "[::]:8080", "localhost:8080"},
		{"ipv4 wildcard", "0.0.0.0:8080", "localhost:8080"},
		{"empty host", ":8080", "localhost:8080"},
		{"localhost stays", "localhost:8080", "localhost:8080"},
		{"specific ip stays", "192.168.1.1:9090", "192.168.1.1:9090"},
		{"invalid addr returned as-is", "not-a-host-port", "not-a-host-port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, routableAddr(tt.addr))
		})
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	set, err := tools.NewSet()
	require.NoError(t, err)
	tm, err := team.New(t.Context(), set, &scripted.Provider{Default: scripted.New("scripted")}, team.DefaultModels())
	require.NoError(t, err)

	base, err := url.Parse("http://agents.example.com")
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(tm.Root(), base, Options{AppName: "test", Version: "v1.2.3"}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandler_AgentCard(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+a2asrv.WellKnownAgentCardPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var card a2a.AgentCard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&card))
	assert.Equal(t, team.RootAgentName, card.Name)
	assert.Contains(t, card.Description, "main coordinator agent")
	assert.Equal(t, "http://agents.example.com/invoke", card.URL)
	assert.Equal(t, "v1.2.3", card.Version)
	assert.NotEmpty(t, card.Skills)
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+HealthPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok", "agent": team.RootAgentName}, body)
}

func TestHandler_Metrics(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+MetricsPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRun_ServesUntilCanceled(t *testing.T) {
	set, err := tools.NewSet()
	require.NoError(t, err)
	tm, err := team.New(t.Context(), set, &scripted.Provider{Default: scripted.New("scripted")}, team.DefaultModels())
	require.NoError(t, err)

	var lc net.ListenConfig
	ln, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cli.NewPrinter(&out), tm.Root(), Options{AppName: "test"}, ln)
	}()

	resp := get(t, "http://"+ln.Addr().String()+HealthPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "A2A server listening on http://127.0.0.1:")
}
