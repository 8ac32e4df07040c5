package app

import (
	"fmt"
	"sort"
	"strings"
)

// structuredMarkdown renders an agent's structured output as Markdown for
// terminal display. The joke and weather shapes get a dedicated layout;
// anything else falls back to a sorted key/value list.
func structuredMarkdown(data map[string]any) string {
	switch {
	case hasKey(data, "joke_text"):
		return jokeMarkdown(data)
	case hasKey(data, "conditions"), hasKey(data, "forecast"):
		return weatherMarkdown(data)
	default:
		return genericMarkdown(data)
	}
}

func jokeMarkdown(data map[string]any) string {
	var b strings.Builder
	b.WriteString("## Joke\n\n")
	fmt.Fprintf(&b, "%s\n\n", stringVal(data, "joke_text", "No joke available"))
	fmt.Fprintf(&b, "**Category:** %s\n", stringVal(data, "category", "unknown"))
	fmt.Fprintf(&b, "**Rating:** %d/5\n", intVal(data, "rating"))
	return b.String()
}

func weatherMarkdown(data map[string]any) string {
	var b strings.Builder
	b.WriteString("## Weather\n\n")
	fmt.Fprintf(&b, "**Location:** %s\n", stringVal(data, "location", "Unknown"))

	if temp, ok := data["temperature"].(map[string]any); ok {
		symbol := "°C"
		if stringVal(temp, "unit", "celsius") == "fahrenheit" {
			symbol = "°F"
		}
		fmt.Fprintf(&b, "**Temperature:** %d%s\n", intVal(temp, "value"), symbol)
	}
	fmt.Fprintf(&b, "**Conditions:** %s\n", stringVal(data, "conditions", "Unknown"))

	if days, ok := data["forecast"].([]any); ok && len(days) > 0 {
		b.WriteString("\n### Forecast\n")
		for i, day := range days {
			fmt.Fprintf(&b, "**Day %d:** %v\n", i+1, day)
		}
	}
	return b.String()
}

func genericMarkdown(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "**%s:** %v\n", k, data[k])
	}
	return b.String()
}

func hasKey(data map[string]any, key string) bool {
	_, ok := data[key]
	return ok
}

func stringVal(data map[string]any, key, def string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return def
}

// intVal reads a numeric field that arrives as float64 after JSON decoding.
func intVal(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
