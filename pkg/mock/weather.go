package mock

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WeatherReport is the record returned by GetWeather. Exactly one of Report and
// ErrorMessage is set, depending on Status.
type WeatherReport struct {
	Status       string `json:"status"`
	Report       string `json:"report,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

var weatherReports = map[string]string{
	"newyork": "The weather in New York is sunny with a temperature of 25°C. Light breeze from the southwest at 10 km/h. No rain expected today.",
	"london":  "It's cloudy in London with a temperature of 15°C. Chance of light showers in the evening. Winds steady at 14 km/h from the west.",
	"tokyo":   "Tokyo is experiencing light rain with a temperature of 18°C. Humidity is at 78% and rain expected to clear by late afternoon.",
	"paris":   "Paris is partly cloudy with sunny intervals. Temperature is 20°C and mild winds at 8 km/h from the southeast.",
	"sydney":  "It's a bright and clear day in Sydney with a high of 28°C. Perfect beach weather with UV index at 7 — sunscreen recommended!",
	"mumbai":  "Mumbai is hot and humid today, with a temperature of 33°C. Expect a light drizzle in the evening and 85% humidity throughout the day.",
	"berlin":  "Berlin is cool and breezy, 12°C with scattered clouds. Winds blowing at 20 km/h from the northeast.",
	"cairo":   "Cairo is sunny and dry, with a temperature of 35°C. Visibility is excellent and no precipitation is expected.",
}

// NormalizeCity turns a user supplied city into a weather table key.
func NormalizeCity(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "")
}

// GetWeather looks up the mock weather report for a city.
//
// Unknown cities are not an error for the caller: the returned record carries
// Status "error" and a message quoting the city exactly as it was given.
func GetWeather(city string) WeatherReport {
	slog.Info("Tool called", "tool", "get_weather", "city", city)

	if report, ok := weatherReports[NormalizeCity(city)]; ok {
		return WeatherReport{Status: StatusSuccess, Report: report}
	}

	return WeatherReport{
		Status:       StatusError,
		ErrorMessage: fmt.Sprintf("Sorry, I don't have weather information for '%s'.", city),
	}
}

// Cities returns the normalized keys of every city with a report, sorted.
func Cities() []string {
	return slices.Sorted(maps.Keys(weatherReports))
}
