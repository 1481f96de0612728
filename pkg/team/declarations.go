package team

import "github.com/docker/multiagent/pkg/tools"

const (
	RootAgentName     = "Root_Agent"
	GreetingAgentName = "greeting_agent"
	FarewellAgentName = "farewell_agent"
	WeatherAgentName  = "weather_agent"
)

// Role selects which configured model an agent runs on.
type Role string

const (
	RoleRoot       Role = "root"
	RoleSpecialist Role = "specialist"
)

// Spec declares one agent. Sub-agents are referenced by name and must be
// declared before the agent that uses them.
type Spec struct {
	Name        string
	Role        Role
	Description string
	Instruction string
	Tools       []string
	SubAgents   []string
}

const rootInstruction = `
    You are the Root Agent coordinating a team of specialists. Your responsibilities are:
    1. If the user asks for multiple pieces of information (e.g., weather AND a joke), handle each request separately.
    2. Provide weather information using the 'get_weather' tool for weather-related questions.
    3. Delegate greetings like 'Hi' or 'Hello' to 'greeting_agent'.
    4. Delegate farewells like 'Bye' or 'See you' to 'farewell_agent'.
    5. Delegate text summarization to 'summarize_agent' tool.
    6. Delegate joke requests to 'joke_agent' tool.
    `

// Declarations returns the agents of the team in build order.
// weather_agent is declared on its own: the root answers weather questions
// with its own get_weather tool and does not delegate them.
func Declarations() []Spec {
	return []Spec{
		{
			Name: GreetingAgentName,
			Role: RoleSpecialist,
			Instruction: "You are the Greeting Agent. Your ONLY task is to provide a friendly greeting to the user. " +
				"Use the 'say_hello' tool to generate the greeting. " +
				"If the user provides their name, make sure to pass it to the tool. " +
				"Do not engage in any other conversation or tasks.",
			Description: "Handles simple greetings and hellos using the 'say_hello' tool.",
			Tools:       []string{tools.ToolNameSayHello},
		},
		{
			Name: FarewellAgentName,
			Role: RoleSpecialist,
			Instruction: "You are the Farewell Agent. Your ONLY task is to provide a polite goodbye message. " +
				"Use the 'say_goodbye' tool when the user indicates they are leaving or ending the conversation " +
				"(e.g., using words like 'bye', 'goodbye', 'thanks bye', 'see you'). " +
				"Do not perform any other actions.",
			Description: "Handles simple farewells and goodbyes using the 'say_goodbye' tool.",
			Tools:       []string{tools.ToolNameSayGoodbye},
		},
		{
			Name: WeatherAgentName,
			Role: RoleSpecialist,
			Instruction: "You are the Weather Agent. Your ONLY task is to answer weather queries using the 'get_weather' tool. " +
				"When a user asks about the weather in a specific city, call this tool and provide the answer.",
			Description: "Handles weather queries.",
			Tools:       []string{tools.ToolNameGetWeather},
		},
		{
			Name:        RootAgentName,
			Role:        RoleRoot,
			Description: "The main coordinator agent. Handles weather, summarization, jokes, and delegates greetings/farewells.",
			Instruction: rootInstruction,
			Tools:       []string{tools.ToolNameGetWeather, tools.ToolNameSummarizeArticle, tools.ToolNameGetJoke},
			SubAgents:   []string{GreetingAgentName, FarewellAgentName},
		},
	}
}

// WalkDeclarations visits the declarations in the same order Team.Walk visits
// the built agents, without building them.
func WalkDeclarations(fn func(spec Spec, depth int)) {
	specs := Declarations()
	byName := make(map[string]Spec, len(specs))
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
		order = append(order, spec.Name)
	}

	children := func(name string) []string {
		return byName[name].SubAgents
	}
	walk(RootAgentName, order, children, func(name string, depth int) {
		fn(byName[name], depth)
	})
}
