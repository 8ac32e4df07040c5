// Package concierge is the primary demo domain: jokes and weather backed by
// small in-memory datasets. It exists to show the shape of a domain package;
// the scaffolding tool renames it into whatever the new project is about.
package concierge

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Joke is one entry in the mock joke database.
type Joke struct {
	JokeText string `json:"joke_text"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

var jokes = map[string][]Joke{
	"programming": {
		{"Why do programmers prefer dark mode? Because light attracts bugs!", "programming", 4},
		{"How many programmers does it take to change a light bulb? None, it's a hardware problem!", "programming", 3},
		{"A SQL query walks into a bar, walks up to two tables and asks: 'Can I join you?'", "programming", 5},
		{"There are 10 types of people in the world: those who understand binary and those who don't.", "programming", 4},
		{"Why do Python programmers wear glasses? Because they can't C!", "programming", 3},
	},
	"general": {
		{"Why don't scientists trust atoms? Because they make up everything!", "general", 4},
		{"What do you call a fake noodle? An impasta!", "general", 3},
		{"Why did the scarecrow win an award? He was outstanding in his field!", "general", 3},
	},
	"knock-knock": {
		{"Knock knock. Who's there? Interrupting cow. Interrupting cow w— MOOOOO!", "knock-knock", 2},
		{"Knock knock. Who's there? Tank. Tank who? You're welcome!", "knock-knock", 3},
	},
	"dad-joke": {
		{"I'm afraid for the calendar. Its days are numbered.", "dad-joke", 4},
		{"What do you call a bear with no teeth? A gummy bear!", "dad-joke", 3},
		{"Why don't eggs tell jokes? They'd crack each other up!", "dad-joke", 3},
		{"I used to hate facial hair, but then it grew on me.", "dad-joke", 4},
	},
}

// GetJoke returns a random joke from the category.
func GetJoke(category string) (Joke, error) {
	pool, ok := jokes[category]
	if !ok {
		return Joke{}, fmt.Errorf(
			"invalid category %q, use get_joke_categories to see available categories", category)
	}
	return pool[rand.Intn(len(pool))], nil
}

// ListCategories returns the available joke categories, sorted.
func ListCategories() []string {
	cats := make([]string, 0, len(jokes))
	for c := range jokes {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Temperature is a value with its unit (celsius or fahrenheit).
type Temperature struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Weather is the current conditions for one location.
type Weather struct {
	Location    string      `json:"location"`
	Temperature Temperature `json:"temperature"`
	Conditions  string      `json:"conditions"`
}

var weatherData = map[string]Weather{
	"san francisco": {"San Francisco", Temperature{62, "fahrenheit"}, "Foggy"},
	"new york":      {"New York", Temperature{55, "fahrenheit"}, "Partly Cloudy"},
	"london":        {"London", Temperature{12, "celsius"}, "Rainy"},
	"tokyo":         {"Tokyo", Temperature{18, "celsius"}, "Clear"},
	"seattle":       {"Seattle", Temperature{50, "fahrenheit"}, "Rainy"},
	"miami":         {"Miami", Temperature{82, "fahrenheit"}, "Sunny"},
}

var forecastTemplates = map[string][]string{
	"Foggy": {
		"Foggy morning clearing to partly cloudy",
		"Continued fog with light winds",
		"Fog dissipating by midday",
	},
	"Partly Cloudy": {
		"Mostly sunny",
		"Increasing clouds",
		"Cloudy with chance of rain",
	},
	"Rainy": {
		"Light rain continuing",
		"Heavy rain expected",
		"Rain tapering off",
		"Scattered showers",
	},
	"Clear": {
		"Clear skies continuing",
		"Partly cloudy",
		"Mostly sunny",
		"Clear and pleasant",
	},
	"Sunny": {"Sunny and warm", "Hot and sunny", "Clear skies", "Bright sunshine"},
}

func unknownLocation(location string) error {
	return fmt.Errorf(
		"weather data not available for %q, try: San Francisco, New York, London, Tokyo, Seattle, or Miami",
		location)
}

// GetWeather returns current conditions for a location.
func GetWeather(location string) (Weather, error) {
	w, ok := weatherData[strings.ToLower(location)]
	if !ok {
		return Weather{}, unknownLocation(location)
	}
	return w, nil
}

// Forecast is a multi-day outlook for one location.
type Forecast struct {
	Location string   `json:"location"`
	Days     []string `json:"forecast"`
}

// GetForecast returns a days-long forecast. Days is clamped to [1, 7].
func GetForecast(location string, days int) (Forecast, error) {
	w, ok := weatherData[strings.ToLower(location)]
	if !ok {
		return Forecast{}, unknownLocation(location)
	}

	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	options, ok := forecastTemplates[w.Conditions]
	if !ok {
		options = []string{"Conditions vary"}
	}
	out := make([]string, days)
	for i := range out {
		out[i] = options[rand.Intn(len(options))]
	}
	return Forecast{Location: w.Location, Days: out}, nil
}
