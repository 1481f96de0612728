package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adkmodel "google.golang.org/adk/model"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

func event(author string, parts ...*genai.Part) *session.Event {
	return &session.Event{
		Author: author,
		LLMResponse: adkmodel.LLMResponse{
			Content: genai.NewContentFromParts(parts, genai.RoleModel),
		},
	}
}

func TestReply_MatchesResponsesByID(t *testing.T) {
	var r Reply

	r.add(event("Root_Agent",
		&genai.Part{FunctionCall: &genai.FunctionCall{ID: "1", Name: "get_weather", Args: map[string]any{"city": "Paris"}}},
		&genai.Part{FunctionCall: &genai.FunctionCall{ID: "2", Name: "get_weather", Args: map[string]any{"city": "Cairo"}}},
	))
	r.add(event("Root_Agent",
		&genai.Part{FunctionResponse: &genai.FunctionResponse{ID: "2", Name: "get_weather", Response: map[string]any{"city": "cairo"}}},
		&genai.Part{FunctionResponse: &genai.FunctionResponse{ID: "1", Name: "get_weather", Response: map[string]any{"city": "paris"}}},
	))

	require.Len(t, r.ToolCalls, 2)
	assert.Equal(t, "paris", r.ToolCalls[0].Response["city"])
	assert.Equal(t, "cairo", r.ToolCalls[1].Response["city"])
}

func TestReply_MatchesResponsesByNameWithoutID(t *testing.T) {
	var r Reply

	r.add(event("Root_Agent", &genai.Part{FunctionCall: &genai.FunctionCall{Name: "get_joke"}}))
	r.add(event("Root_Agent", &genai.Part{FunctionResponse: &genai.FunctionResponse{Name: "get_joke", Response: map[string]any{"joke": "ha"}}}))

	require.Len(t, r.ToolCalls, 1)
	assert.Equal(t, "ha", r.ToolCalls[0].Response["joke"])
}

func TestReply_TextAndAuthors(t *testing.T) {
	var r Reply

	r.add(event("user", genai.NewPartFromText("hi")))
	r.add(event("Root_Agent", genai.NewPartFromText("thinking"), &genai.Part{Text: "secret", Thought: true}))
	r.add(event("greeting_agent", genai.NewPartFromText(" Hello, there! ")))
	r.add(nil)
	r.add(&session.Event{Author: "farewell_agent"})

	assert.Equal(t, "Hello, there!", r.Text)
	assert.Equal(t, []string{"Root_Agent", "greeting_agent"}, r.Authors)
}

func TestText_SkipsThoughts(t *testing.T) {
	e := event("Root_Agent", &genai.Part{Text: "plan", Thought: true}, genai.NewPartFromText("answer"))

	assert.Equal(t, "answer", Text(e))
	assert.Empty(t, Text(nil))
}
