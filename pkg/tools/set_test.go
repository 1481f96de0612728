package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/docker/multiagent/pkg/metrics"
	"github.com/docker/multiagent/pkg/mock"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()

	set, err := NewSet()
	require.NoError(t, err)
	return set
}

func TestNewSet(t *testing.T) {
	set := newTestSet(t)

	var names []string
	for _, def := range set.Definitions() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
		require.NotNil(t, def.Tool())
		assert.Equal(t, def.Name, def.Tool().Name())
		assert.Equal(t, def.Description, def.Tool().Description())
		assert.False(t, def.Tool().IsLongRunning())
	}

	assert.Equal(t, []string{
		ToolNameSayHello,
		ToolNameSayGoodbye,
		ToolNameGetWeather,
		ToolNameSummarizeArticle,
		ToolNameGetJoke,
	}, names)
}

func TestSet_DescriptionsMentionKnownKeys(t *testing.T) {
	set := newTestSet(t)

	weather, ok := set.Lookup(ToolNameGetWeather)
	require.True(t, ok)
	for _, city := range mock.Cities() {
		assert.Contains(t, weather.Description, city)
	}

	joke, ok := set.Lookup(ToolNameGetJoke)
	require.True(t, ok)
	assert.Contains(t, joke.Description, "developer")
}

func TestSet_Tools(t *testing.T) {
	set := newTestSet(t)

	tls, err := set.Tools(ToolNameGetJoke, ToolNameGetWeather)
	require.NoError(t, err)
	require.Len(t, tls, 2)
	assert.Equal(t, ToolNameGetJoke, tls[0].Name())
	assert.Equal(t, ToolNameGetWeather, tls[1].Name())

	_, err = set.Tools("launch_rockets")
	assert.ErrorContains(t, err, `unknown tool "launch_rockets"`)
}

func TestSet_Invoke(t *testing.T) {
	set := newTestSet(t)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want map[string]any
	}{
		{
			name: "hello default",
			tool: ToolNameSayHello,
			want: map[string]any{"result": "Hello, there!"},
		},
		{
			name: "hello named",
			tool: ToolNameSayHello,
			args: map[string]any{"name": "Ann"},
			want: map[string]any{"result": "Hello, Ann!"},
		},
		{
			name: "goodbye",
			tool: ToolNameSayGoodbye,
			args: map[string]any{},
			want: map[string]any{"result": "Goodbye! Have a great day."},
		},
		{
			name: "weather known",
			tool: ToolNameGetWeather,
			args: map[string]any{"city": "Paris"},
			want: map[string]any{
				"status": "success",
				"report": "Paris is partly cloudy with sunny intervals. Temperature is 20°C and mild winds at 8 km/h from the southeast.",
			},
		},
		{
			name: "weather unknown",
			tool: ToolNameGetWeather,
			args: map[string]any{"city": "Gotham"},
			want: map[string]any{
				"status":        "error",
				"error_message": "Sorry, I don't have weather information for 'Gotham'.",
			},
		},
		{
			name: "summary",
			tool: ToolNameSummarizeArticle,
			args: map[string]any{"text": "Short text"},
			want: map[string]any{"status": "success", "summary": "Summary: Short text..."},
		},
		{
			name: "joke fallback",
			tool: ToolNameGetJoke,
			args: map[string]any{"category": "unknown"},
			want: map[string]any{"status": "success", "joke": mock.GetJoke("general").Joke},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.Invoke(t.Context(), tt.tool, tt.args)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_Invoke_Errors(t *testing.T) {
	set := newTestSet(t)

	_, err := set.Invoke(t.Context(), "nope", nil)
	assert.ErrorContains(t, err, `unknown tool "nope"`)

	_, err = set.Invoke(t.Context(), ToolNameGetWeather, map[string]any{"town": "Paris"})
	assert.ErrorContains(t, err, "invalid arguments for get_weather")

	_, err = set.Invoke(t.Context(), ToolNameGetWeather, map[string]any{"city": 42})
	assert.Error(t, err)
}

// toolCalls reads multiagent_tool_calls_total for one tool and status.
func toolCalls(t *testing.T, tool, status string) float64 {
	t.Helper()

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "multiagent_tool_calls_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["tool"] == tool && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(t.Context())
	})
	return recorder
}

func TestSet_Invoke_UnknownCityCountsAsError(t *testing.T) {
	recorder := recordSpans(t)
	set := newTestSet(t)

	errorsBefore := toolCalls(t, ToolNameGetWeather, mock.StatusError)
	successBefore := toolCalls(t, ToolNameGetWeather, mock.StatusSuccess)

	got, err := set.Invoke(t.Context(), ToolNameGetWeather, map[string]any{"city": "Gotham"})
	require.NoError(t, err)
	assert.Equal(t, mock.StatusError, got["status"])

	assert.InDelta(t, 1, toolCalls(t, ToolNameGetWeather, mock.StatusError)-errorsBefore, 0)
	assert.InDelta(t, 0, toolCalls(t, ToolNameGetWeather, mock.StatusSuccess)-successBefore, 0)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.get_weather", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestSet_Invoke_KnownCityCountsAsSuccess(t *testing.T) {
	recorder := recordSpans(t)
	set := newTestSet(t)

	before := toolCalls(t, ToolNameGetWeather, mock.StatusSuccess)

	_, err := set.Invoke(t.Context(), ToolNameGetWeather, map[string]any{"city": "New York"})
	require.NoError(t, err)

	assert.InDelta(t, 1, toolCalls(t, ToolNameGetWeather, mock.StatusSuccess)-before, 0)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}
