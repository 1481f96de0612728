package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func init() {
	color.NoColor = true
}

func TestFormatToolCallResponse_Empty(t *testing.T) {
	assert.Equal(t, ` → ()`, formatToolCallResponse(``))
	assert.Equal(t, ` → ()`, formatToolCallResponse(`{}`))
}

func TestFormatToolCallResponse_SingleField(t *testing.T) {
	formatted := formatToolCallResponse(`{"result": "Hello, Ann!"}`)

	assert.Equal(t, ` → (result: "Hello, Ann!")`, formatted)
}

func TestFormatToolCallResponse_KeepsFieldOrder(t *testing.T) {
	formatted := formatToolCallResponse(`{"status": "error", "error_message": "Sorry, I don't have weather information for 'Gotham'."}`)

	assert.Equal(t, ` → (
  status: "error"
  error_message: "Sorry, I don't have weather information for 'Gotham'."
)`, formatted)
}

func TestFormatToolCallResponse_PlainText(t *testing.T) {
	assert.Equal(t, ` → "Plain Text"`, formatToolCallResponse(`Plain Text`))
}

func TestFormatToolCallArguments_Empty(t *testing.T) {
	assert.Equal(t, `()`, formatToolCallArguments(``))
	assert.Equal(t, `()`, formatToolCallArguments(`{}`))
}

func TestFormatToolCallArguments_Map(t *testing.T) {
	formatted := formatToolCallArguments(`{"first": "hello", "second": 42}`)

	assert.Equal(t, `(
  first: "hello"
  second: 42
)`, formatted)
}

func TestFormatToolCallArguments_MapOfArray(t *testing.T) {
	formatted := formatToolCallArguments(`{"array": [1,2,3]}`)
	assert.Equal(t, `(
  array: [
  1,
  2,
  3
]
)`, formatted)
}

func TestFormatToolCallArguments_MapOfSingleItemArray(t *testing.T) {
	assert.Equal(t, `(array: ["value"])`, formatToolCallArguments(`{"array": ["value"]}`))
	assert.Equal(t, `(array: [])`, formatToolCallArguments(`{"array": []}`))
}

func TestFormatToolCallArguments_NotAnObject(t *testing.T) {
	assert.Equal(t, `("city")`, formatToolCallArguments(`"city"`))
	assert.Equal(t, `(Plain Text)`, formatToolCallArguments(`Plain Text`))
}

func TestPrinter_ToolCall(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintToolCall("get_weather", map[string]any{"city": "London"})
	p.PrintToolCallResponse("say_goodbye", map[string]any{"result": "Goodbye! Have a great day."})

	assert.Equal(t, "\n--- Tool: get_weather called (city: \"London\") ---\n"+
		"say_goodbye response → (result: \"Goodbye! Have a great day.\")\n", buf.String())
}

func TestPrinter_AgentAndError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAgentName("Root_Agent")
	p.PrintTransfer("Root_Agent", "greeting_agent")
	p.PrintError(errors.New("boom"))

	assert.Check(t, is.Contains(buf.String(), "--- Agent: Root_Agent ---"))
	assert.Check(t, is.Contains(buf.String(), "Root_Agent → greeting_agent"))
	assert.Check(t, is.Contains(buf.String(), "❌ boom"))
}
