package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"

	"github.com/docker/multiagent/pkg/model"
	"github.com/docker/multiagent/pkg/tools"
)

const (
	DefaultRootModel       = "gemini-2.0-flash-exp"
	DefaultSpecialistModel = "gemini-2.0-flash"
)

// Models names the model used for each Role.
type Models struct {
	Root       string
	Specialist string
}

func DefaultModels() Models {
	return Models{Root: DefaultRootModel, Specialist: DefaultSpecialistModel}
}

func (m Models) For(role Role) string {
	if role == RoleRoot {
		return m.Root
	}
	return m.Specialist
}

// Team is the built agent hierarchy.
type Team struct {
	root   agent.Agent
	agents map[string]agent.Agent
	specs  map[string]Spec
	order  []string
	models Models
}

// New builds every declared agent with the models resolved through provider.
func New(ctx context.Context, set *tools.Set, provider model.Provider, models Models) (*Team, error) {
	return build(ctx, Declarations(), set, provider, models)
}

func build(ctx context.Context, specs []Spec, set *tools.Set, provider model.Provider, models Models) (*Team, error) {
	t := &Team{
		agents: make(map[string]agent.Agent, len(specs)),
		specs:  make(map[string]Spec, len(specs)),
		models: models,
	}

	for _, spec := range specs {
		if _, exists := t.agents[spec.Name]; exists {
			return nil, fmt.Errorf("agent %s declared twice", spec.Name)
		}

		llm, err := provider.Model(ctx, models.For(spec.Role))
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", spec.Name, err)
		}

		agentTools, err := set.Tools(spec.Tools...)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", spec.Name, err)
		}

		var subAgents []agent.Agent
		for _, name := range spec.SubAgents {
			sub, ok := t.agents[name]
			if !ok {
				return nil, fmt.Errorf("agent %s: sub-agent %s must be declared before it", spec.Name, name)
			}
			subAgents = append(subAgents, sub)
		}

		a, err := llmagent.New(llmagent.Config{
			Name:        spec.Name,
			Model:       llm,
			Description: spec.Description,
			Instruction: spec.Instruction,
			Tools:       agentTools,
			SubAgents:   subAgents,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %s: %w", spec.Name, err)
		}
		slog.Debug("Created agent", "agent", spec.Name, "model", llm.Name(), "tools", spec.Tools, "sub_agents", spec.SubAgents)

		t.agents[spec.Name] = a
		t.specs[spec.Name] = spec
		t.order = append(t.order, spec.Name)
		if spec.Role == RoleRoot {
			t.root = a
		}
	}

	if t.root == nil {
		return nil, errors.New("no root agent declared")
	}

	return t, nil
}

func (t *Team) Root() agent.Agent {
	return t.root
}

func (t *Team) AgentNames() []string {
	return slices.Sorted(maps.Keys(t.agents))
}

func (t *Team) Agent(name string) (agent.Agent, error) {
	found, ok := t.agents[name]
	if !ok {
		return nil, fmt.Errorf("agent not found: %s (available agents: %s)", name, strings.Join(t.AgentNames(), ", "))
	}
	return found, nil
}

// Spec returns the declaration an agent was built from.
func (t *Team) Spec(name string) (Spec, bool) {
	spec, ok := t.specs[name]
	return spec, ok
}

// ModelName returns the name of the model an agent runs on.
func (t *Team) ModelName(name string) string {
	return t.models.For(t.specs[name].Role)
}

// Walk visits the root's tree depth first, then every agent that is not part
// of it, at depth 0.
func (t *Team) Walk(fn func(a agent.Agent, depth int)) {
	children := func(name string) []string {
		var names []string
		for _, sub := range t.agents[name].SubAgents() {
			names = append(names, sub.Name())
		}
		return names
	}
	walk(t.root.Name(), t.order, children, func(name string, depth int) {
		fn(t.agents[name], depth)
	})
}

func walk(root string, order []string, children func(string) []string, fn func(name string, depth int)) {
	visited := make(map[string]bool, len(order))

	var visit func(name string, depth int)
	visit = func(name string, depth int) {
		visited[name] = true
		fn(name, depth)
		for _, child := range children(name) {
			visit(child, depth+1)
		}
	}
	visit(root, 0)

	for _, name := range order {
		if !visited[name] {
			visit(name, 0)
		}
	}
}
