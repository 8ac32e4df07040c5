// Command sales runs the sales demo domain: lead qualification and product
// recommendation agents.
package main

import (
	"jarvis-agents/internal/app"
	"jarvis-agents/internal/domains/sales"
)

func main() {
	app.Main(app.Domain{
		Name:          "sales",
		ConfigDir:     "sales",
		Description:   "Sales demo domain (lead qualification, product catalog)",
		RegisterTools: sales.RegisterTools,
	})
}
