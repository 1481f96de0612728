package tools

import (
	"fmt"
	"strings"

	"github.com/docker/multiagent/pkg/mock"
)

const (
	ToolNameSayHello         = "say_hello"
	ToolNameSayGoodbye       = "say_goodbye"
	ToolNameGetWeather       = "get_weather"
	ToolNameSummarizeArticle = "summarize_article"
	ToolNameGetJoke          = "get_joke"
)

type SayHelloArgs struct {
	Name string `json:"name,omitempty" jsonschema:"The name of the person to greet. Leave empty when the user did not give a name."`
}

type SayGoodbyeArgs struct{}

type GetWeatherArgs struct {
	City string `json:"city" jsonschema:"The name of the city, for example London or New York."`
}

type SummarizeArticleArgs struct {
	Text string `json:"text" jsonschema:"The full text of the article to summarize."`
}

type GetJokeArgs struct {
	Category string `json:"category,omitempty" jsonschema:"The joke category, for example tech or dad. Defaults to general."`
}

// TextResult carries the output of tools that produce a bare string.
type TextResult struct {
	Result string `json:"result"`
}

func sayHello(args SayHelloArgs) TextResult {
	return TextResult{Result: mock.SayHello(args.Name)}
}

func sayGoodbye(SayGoodbyeArgs) TextResult {
	return TextResult{Result: mock.SayGoodbye()}
}

func getWeather(args GetWeatherArgs) mock.WeatherReport {
	return mock.GetWeather(args.City)
}

func summarizeArticle(args SummarizeArticleArgs) mock.SummaryResult {
	return mock.SummarizeArticle(args.Text)
}

func getJoke(args GetJokeArgs) mock.JokeResult {
	return mock.GetJoke(args.Category)
}

func alwaysSuccess[R any](R) string { return mock.StatusSuccess }

func weatherStatus(r mock.WeatherReport) string { return r.Status }

func definitions() ([]*Definition, error) {
	builders := []func() (*Definition, error){
		func() (*Definition, error) {
			return define(ToolNameSayHello,
				"Greets the user by name. Use it whenever the user says hi or hello.",
				"[name=<name>]", sayHello, alwaysSuccess[TextResult])
		},
		func() (*Definition, error) {
			return define(ToolNameSayGoodbye,
				"Says goodbye to the user. Use it when the user is leaving or ending the conversation.",
				"", sayGoodbye, alwaysSuccess[TextResult])
		},
		func() (*Definition, error) {
			return define(ToolNameGetWeather,
				fmt.Sprintf("Retrieves the current weather report for a city. Known cities: %s.", strings.Join(mock.Cities(), ", ")),
				"city=<city>", getWeather, weatherStatus)
		},
		func() (*Definition, error) {
			return define(ToolNameSummarizeArticle,
				"Summarizes the text of an article.",
				"text=<text>", summarizeArticle, alwaysSuccess[mock.SummaryResult])
		},
		func() (*Definition, error) {
			return define(ToolNameGetJoke,
				fmt.Sprintf("Tells a joke from a category. Known categories: %s.", strings.Join(mock.JokeCategories(), ", ")),
				"[category=<category>]", getJoke, alwaysSuccess[mock.JokeResult])
		},
	}

	defs := make([]*Definition, 0, len(builders))
	for _, build := range builders {
		def, err := build()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
