package mock

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

const DefaultJokeCategory = "general"

// JokeResult is the record returned by GetJoke.
type JokeResult struct {
	Status string `json:"status"`
	Joke   string `json:"joke"`
}

var jokes = map[string]string{
	"general":   "Why don’t scientists trust atoms? Because they make up everything!",
	"tech":      "Why do programmers prefer dark mode? Because light attracts bugs!",
	"dad":       "I only know 25 letters of the alphabet. I don't know y.",
	"animal":    "Why don’t seagulls fly over the bay? Because then they’d be bagels!",
	"math":      "Why was the equal sign so humble? Because it knew it wasn’t less than or greater than anyone else.",
	"physics":   "Schrödinger’s cat walks into a bar... and doesn’t.",
	"office":    "Why did the scarecrow get promoted? Because he was outstanding in his field.",
	"coffee":    "What did the coffee say to the sugar? You make life sweet!",
	"school":    "Why was the math book sad? Because it had too many problems.",
	"developer": "There are only two hard things in Computer Science: cache invalidation, naming things, and off-by-one errors.",
}

// GetJoke returns the joke for a category, matched case-insensitively.
// An empty category means DefaultJokeCategory and an unknown one falls back to it.
func GetJoke(category string) JokeResult {
	if category == "" {
		category = DefaultJokeCategory
	}
	slog.Info("Tool called", "tool", "get_joke", "category", category)

	joke, ok := jokes[strings.ToLower(category)]
	if !ok {
		joke = jokes[DefaultJokeCategory]
	}

	return JokeResult{Status: StatusSuccess, Joke: joke}
}

// JokeCategories returns every known category, sorted.
func JokeCategories() []string {
	return slices.Sorted(maps.Keys(jokes))
}
