package app

import (
	"slices"
	"strings"

	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// ToolCall pairs a function call made by an agent with its response.
type ToolCall struct {
	ID       string
	Agent    string
	Name     string
	Args     map[string]any
	Response map[string]any
}

// Reply is what one turn produced.
type Reply struct {
	// Text is the last complete text answer of the turn.
	Text string
	// Authors lists the agents that produced events, in order of appearance.
	Authors   []string
	ToolCalls []ToolCall
}

func (r *Reply) add(event *session.Event) {
	if event == nil || event.Content == nil {
		return
	}

	if event.Author != "" && event.Author != string(genai.RoleUser) && !slices.Contains(r.Authors, event.Author) {
		r.Authors = append(r.Authors, event.Author)
	}

	for _, part := range event.Content.Parts {
		switch {
		case part.FunctionCall != nil:
			r.ToolCalls = append(r.ToolCalls, ToolCall{
				ID:    part.FunctionCall.ID,
				Agent: event.Author,
				Name:  part.FunctionCall.Name,
				Args:  part.FunctionCall.Args,
			})
		case part.FunctionResponse != nil:
			r.attachResponse(part.FunctionResponse)
		}
	}

	if text := Text(event); text != "" && !event.Partial {
		r.Text = text
	}
}

// attachResponse matches by call id, or by name when the model sent no id.
func (r *Reply) attachResponse(resp *genai.FunctionResponse) {
	for i := range r.ToolCalls {
		call := &r.ToolCalls[i]
		if call.Response != nil {
			continue
		}
		if (resp.ID != "" && call.ID == resp.ID) || (resp.ID == "" && call.Name == resp.Name) {
			call.Response = resp.Response
			return
		}
	}
}

// Text joins the text parts of an event, ignoring thoughts.
func Text(event *session.Event) string {
	if event == nil || event.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range event.Content.Parts {
		if part.Text == "" || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
