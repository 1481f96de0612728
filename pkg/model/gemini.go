package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	adkmodel "google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/docker/multiagent/pkg/environment"
)

// Provider resolves a model name into an ADK model.
type Provider interface {
	Model(ctx context.Context, name string) (adkmodel.LLM, error)
}

// GeminiProvider creates Gemini models, either through the Gemini API or
// through Vertex AI when GOOGLE_GENAI_USE_VERTEXAI is set.
type GeminiProvider struct {
	config genai.ClientConfig

	mu     sync.Mutex
	models map[string]adkmodel.LLM
}

var _ Provider = (*GeminiProvider)(nil)

func NewGeminiProvider(ctx context.Context, env environment.Provider) (*GeminiProvider, error) {
	if err := environment.CheckGeminiEnv(ctx, env); err != nil {
		return nil, err
	}

	var config genai.ClientConfig
	if environment.UseVertexAI(ctx, env) {
		config.Backend = genai.BackendVertexAI
		config.Project, _ = env.Get(ctx, environment.GoogleCloudProjectEnv)
		config.Location, _ = env.Get(ctx, environment.GoogleCloudLocationEnv)
	} else {
		config.Backend = genai.BackendGeminiAPI
		config.APIKey, _ = env.Get(ctx, environment.GoogleAPIKeyEnv)
	}

	return &GeminiProvider{
		config: config,
		models: make(map[string]adkmodel.LLM),
	}, nil
}

// Model returns the Gemini model with the given name. Models are created once
// and shared by every agent that asks for the same name.
func (p *GeminiProvider) Model(ctx context.Context, name string) (adkmodel.LLM, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m, ok := p.models[name]; ok {
		return m, nil
	}

	config := p.config
	m, err := gemini.NewModel(ctx, name, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini model %s: %w", name, err)
	}
	slog.Debug("Created model", "model", name, "backend", config.Backend)

	p.models[name] = m
	return m, nil
}
