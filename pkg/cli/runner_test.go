package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adkmodel "google.golang.org/adk/model"

	"github.com/docker/multiagent/pkg/app"
	"github.com/docker/multiagent/pkg/model/scripted"
	"github.com/docker/multiagent/pkg/team"
	"github.com/docker/multiagent/pkg/tools"
)

func newTestApp(t *testing.T, root *scripted.Model) *app.App {
	t.Helper()

	set, err := tools.NewSet()
	require.NoError(t, err)

	provider := &scripted.Provider{Models: map[string]adkmodel.LLM{
		team.DefaultRootModel:       root,
		team.DefaultSpecialistModel: scripted.New("specialist"),
	}}
	tm, err := team.New(t.Context(), set, provider, team.DefaultModels())
	require.NoError(t, err)

	a, err := app.New(t.Context(), tm.Root(), app.Options{
		AppName:   "First_Application_To_Test",
		UserID:    "User_1",
		SessionID: "Session_001",
	})
	require.NoError(t, err)
	return a
}

func TestRun_OneShot(t *testing.T) {
	root := scripted.New("root",
		scripted.Call(tools.ToolNameGetWeather, map[string]any{"city": "Tokyo"}),
		scripted.Text("Tokyo is sunny."),
	)
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{AppName: "test"}, newTestApp(t, root), strings.NewReader(""), "Weather in Tokyo?")
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "--- Agent: Root_Agent ---")
	assert.Contains(t, output, "--- Tool: get_weather called (city: \"Tokyo\") ---")
	assert.Contains(t, output, "get_weather response")
	assert.Contains(t, output, "Tokyo is sunny.")
	assert.Equal(t, 1, strings.Count(output, "--- Agent:"))
}

func TestRun_HideToolCalls(t *testing.T) {
	root := scripted.New("root",
		scripted.Call(tools.ToolNameGetJoke, map[string]any{"category": "tech"}),
		scripted.Text("Here is one."),
	)
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{HideToolCalls: true}, newTestApp(t, root), strings.NewReader(""), "joke")
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "--- Tool:")
	assert.Contains(t, out.String(), "Here is one.")
}

func TestRun_Stdin(t *testing.T) {
	root := scripted.New("root", scripted.Text("Summarized."))
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{}, newTestApp(t, root), strings.NewReader("Please summarize\nthis article."), "-")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Summarized.")
	require.Len(t, root.Requests(), 1)
}

func TestRun_ModelErrorIsRuntimeError(t *testing.T) {
	root := scripted.New("root", scripted.Fail(errors.New("quota exceeded")))
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{}, newTestApp(t, root), strings.NewReader(""), "hi")

	var runtimeErr RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Contains(t, out.String(), "❌")
	assert.Contains(t, out.String(), "quota exceeded")
}

func TestRun_Interactive(t *testing.T) {
	root := scripted.New("root",
		scripted.Text("First answer."),
		scripted.Text("Second answer."),
	)
	in := strings.NewReader("first question\n\nsecond question\n/exit\nnever sent\n")
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{AppName: "First_Application_To_Test"}, newTestApp(t, root), in, "")
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Welcome to First_Application_To_Test")
	assert.Contains(t, output, "First answer.")
	assert.Contains(t, output, "Second answer.")
	assert.Equal(t, 0, root.Remaining())
	assert.Len(t, root.Requests(), 2)
}

func TestRun_InteractiveWithoutTrailingNewline(t *testing.T) {
	root := scripted.New("root", scripted.Text("Only answer."))
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{}, newTestApp(t, root), strings.NewReader("last line"), "")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Only answer.")
}

func TestRun_InteractiveMemory(t *testing.T) {
	root := scripted.New("root", scripted.Text("Noted, you like pineapple."))
	in := strings.NewReader("I like pineapple\n/memory\n/memory pineapple\n")
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{}, newTestApp(t, root), in, "")
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Usage: /memory <query>")
	assert.Contains(t, output, ": I like pineapple")
	assert.Equal(t, 1, len(root.Requests()))
}

func TestRun_NoPrompt(t *testing.T) {
	root := scripted.New("root", scripted.Text("Piped answer."))
	var out bytes.Buffer

	err := Run(t.Context(), NewPrinter(&out), Config{AppName: "First_Application_To_Test", NoPrompt: true}, newTestApp(t, root), strings.NewReader("question\n"), "")
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "Welcome")
	assert.NotContains(t, out.String(), "> ")
	assert.Contains(t, out.String(), "Piped answer.")
}
