// Package scripted provides an ADK model that replays canned responses.
// It lets the real agent runner be exercised without network access.
package scripted

import (
	"context"
	"errors"
	"iter"
	"sync"

	adkmodel "google.golang.org/adk/model"
	"google.golang.org/genai"
)

var ErrScriptExhausted = errors.New("scripted model: no more responses")

// Step produces the model content for one GenerateContent call.
type Step func(req *adkmodel.LLMRequest) (*genai.Content, error)

// Text answers with plain text.
func Text(text string) Step {
	return func(*adkmodel.LLMRequest) (*genai.Content, error) {
		return genai.NewContentFromText(text, genai.RoleModel), nil
	}
}

// Call answers with a single function call.
func Call(name string, args map[string]any) Step {
	return func(*adkmodel.LLMRequest) (*genai.Content, error) {
		return genai.NewContentFromParts([]*genai.Part{genai.NewPartFromFunctionCall(name, args)}, genai.RoleModel), nil
	}
}

// Fail makes the call return err.
func Fail(err error) Step {
	return func(*adkmodel.LLMRequest) (*genai.Content, error) {
		return nil, err
	}
}

// Model consumes one Step per GenerateContent call, in order.
type Model struct {
	name string

	mu       sync.Mutex
	steps    []Step
	requests []*adkmodel.LLMRequest
}

var _ adkmodel.LLM = (*Model)(nil)

func New(name string, steps ...Step) *Model {
	return &Model{name: name, steps: steps}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) GenerateContent(ctx context.Context, req *adkmodel.LLMRequest, _ bool) iter.Seq2[*adkmodel.LLMResponse, error] {
	return func(yield func(*adkmodel.LLMResponse, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}

		m.mu.Lock()
		m.requests = append(m.requests, req)
		if len(m.steps) == 0 {
			m.mu.Unlock()
			yield(nil, ErrScriptExhausted)
			return
		}
		step := m.steps[0]
		m.steps = m.steps[1:]
		m.mu.Unlock()

		content, err := step(req)
		if err != nil {
			yield(nil, err)
			return
		}

		yield(&adkmodel.LLMResponse{
			Content:      content,
			TurnComplete: true,
			FinishReason: genai.FinishReasonStop,
		}, nil)
	}
}

// Requests returns every request received so far.
func (m *Model) Requests() []*adkmodel.LLMRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*adkmodel.LLMRequest(nil), m.requests...)
}

// Remaining reports how many steps have not been consumed.
func (m *Model) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.steps)
}

// Provider hands out models by name, falling back to Default.
type Provider struct {
	Models  map[string]adkmodel.LLM
	Default adkmodel.LLM
}

func (p *Provider) Model(_ context.Context, name string) (adkmodel.LLM, error) {
	if m, ok := p.Models[name]; ok {
		return m, nil
	}
	if p.Default != nil {
		return p.Default, nil
	}
	return nil, errors.New("scripted provider: unknown model " + name)
}
