package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"google.golang.org/adk/memory"
)

var (
	bold  = color.New(color.Bold).SprintfFunc()
	faint = color.New(color.Faint).SprintfFunc()
)

type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out: out,
	}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintWelcomeMessage prints the welcome message
func (p *Printer) PrintWelcomeMessage(appName string) {
	p.Printf("\n------- Welcome to %s! -------\n(/exit or Ctrl+C to stop, /memory <query> to search past turns)\n\n", bold(appName))
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Printf("❌ %s\n", err)
}

// PrintAgentName prints the agent name header
func (p *Printer) PrintAgentName(agentName string) {
	p.Printf("\n--- Agent: %s ---\n", bold(agentName))
}

// PrintToolCall prints a tool call
func (p *Printer) PrintToolCall(name string, args map[string]any) {
	p.Printf("\n--- Tool: %s called %s ---\n", bold(name), formatToolCallArguments(marshal(args)))
}

// PrintToolCallResponse prints a tool call response
func (p *Printer) PrintToolCallResponse(name string, response map[string]any) {
	p.Printf("%s response%s\n", bold(name), formatToolCallResponse(marshal(response)))
}

// PrintTransfer prints a hand-off between agents
func (p *Printer) PrintTransfer(from, to string) {
	p.Printf("%s\n", faint("%s → %s", from, to))
}

// PrintMemories prints memory search results, oldest first
func (p *Printer) PrintMemories(entries []memory.Entry) {
	if len(entries) == 0 {
		p.Println(faint("No memories found."))
		return
	}
	for _, entry := range entries {
		var text []string
		if entry.Content != nil {
			for _, part := range entry.Content.Parts {
				if part.Text != "" {
					text = append(text, strings.TrimSpace(part.Text))
				}
			}
		}
		if len(text) == 0 {
			continue
		}
		when := ""
		if !entry.Timestamp.IsZero() {
			when = " " + faint("%s", entry.Timestamp.Format("15:04:05"))
		}
		p.Printf("%s%s: %s\n", bold(entry.Author), when, strings.Join(text, " "))
	}
}

func marshal(v map[string]any) string {
	if len(v) == 0 {
		return ""
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(buf)
}

func formatToolCallArguments(arguments string) string {
	if arguments == "" {
		return "()"
	}

	kv := orderedmap.New[string, any]()
	if err := json.Unmarshal([]byte(arguments), &kv); err == nil {
		if kv.Len() == 0 {
			return "()"
		}
		return formatPairs(kv)
	}

	var parsed any
	if err := json.Unmarshal([]byte(arguments), &parsed); err == nil {
		formatted, _ := json.MarshalIndent(parsed, "", "  ")
		return fmt.Sprintf("(%s)", string(formatted))
	}

	return fmt.Sprintf("(%s)", arguments)
}

func formatToolCallResponse(response string) string {
	if response == "" {
		return " → ()"
	}

	kv := orderedmap.New[string, any]()
	if err := json.Unmarshal([]byte(response), &kv); err == nil {
		if kv.Len() == 0 {
			return " → ()"
		}
		return " → " + formatPairs(kv)
	}

	return fmt.Sprintf(" → %q", response)
}

// formatPairs renders a JSON object as (key: value) on one line, or one pair
// per line once there is more than one pair or a value spans lines.
func formatPairs(kv *orderedmap.OrderedMap[string, any]) string {
	var (
		parts     []string
		multiline bool
	)
	for key, value := range kv.FromOldest() {
		formatted := formatJSONValue(key, value)
		parts = append(parts, formatted)
		multiline = multiline || strings.Contains(formatted, "\n")
	}

	if len(parts) == 1 && !multiline {
		return fmt.Sprintf("(%s)", parts[0])
	}
	return fmt.Sprintf("(\n  %s\n)", strings.Join(parts, "\n  "))
}

func formatJSONValue(key string, value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%s: %q", bold(key), v)

	case []any:
		if len(v) <= 1 {
			jsonBytes, _ := json.Marshal(v)
			return fmt.Sprintf("%s: %s", bold(key), string(jsonBytes))
		}
		jsonBytes, _ := json.MarshalIndent(v, "", "  ")
		return fmt.Sprintf("%s: %s", bold(key), string(jsonBytes))

	case map[string]any, *orderedmap.OrderedMap[string, any]:
		jsonBytes, _ := json.MarshalIndent(v, "", "  ")
		return fmt.Sprintf("%s: %s", bold(key), string(jsonBytes))

	default:
		jsonBytes, _ := json.Marshal(v)
		return fmt.Sprintf("%s: %s", bold(key), string(jsonBytes))
	}
}
