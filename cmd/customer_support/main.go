// Command customer_support runs the customer support demo domain: ticket
// management and knowledge base agents.
package main

import (
	"jarvis-agents/internal/app"
	customersupport "jarvis-agents/internal/domains/customer_support"
)

func main() {
	app.Main(app.Domain{
		Name:          "customer_support",
		ConfigDir:     "customer-support",
		Description:   "Customer support demo domain (tickets, knowledge base)",
		RegisterTools: customersupport.RegisterTools,
	})
}
