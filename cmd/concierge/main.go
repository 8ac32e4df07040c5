// Command concierge runs the concierge demo domain: a general assistant with
// joke and weather agents.
package main

import (
	"jarvis-agents/internal/app"
	"jarvis-agents/internal/domains/concierge"
)

func main() {
	app.Main(app.Domain{
		Name:          "concierge",
		ConfigDir:     "concierge",
		Description:   "General assistant demo domain (jokes, weather)",
		RegisterTools: concierge.RegisterTools,
	})
}
