package agentcfg

import (
	"encoding/json"
	"fmt"

	"jarvis-agents/internal/domain"
)

// Meta is the immutable agent registry built by Load. It is safe for
// concurrent reads; nothing mutates it after construction.
type Meta struct {
	byName  map[string]domain.AgentDef
	order   []string // declaration order, for stable listings
	schemas map[string]*compiledSchema
}

// Lookup returns the named agent definition.
func (m *Meta) Lookup(name string) (domain.AgentDef, error) {
	def, ok := m.byName[name]
	if !ok {
		return domain.AgentDef{}, domain.NewDomainError("Meta.Lookup", domain.ErrAgentNotFound, name)
	}
	return def, nil
}

// List returns every agent in declaration order.
func (m *Meta) List() []domain.AgentDef {
	defs := make([]domain.AgentDef, 0, len(m.order))
	for _, name := range m.order {
		defs = append(defs, m.byName[name])
	}
	return defs
}

// BatchEnabled returns the names of agents declared batch_enabled, in
// declaration order.
func (m *Meta) BatchEnabled() []string {
	var names []string
	for _, name := range m.order {
		if m.byName[name].BatchEnabled {
			names = append(names, name)
		}
	}
	return names
}

// SchemaFor returns the raw output schema JSON declared for the agent.
func (m *Meta) SchemaFor(name string) (json.RawMessage, error) {
	if _, ok := m.byName[name]; !ok {
		return nil, domain.NewDomainError("Meta.SchemaFor", domain.ErrAgentNotFound, name)
	}
	cs, ok := m.schemas[name]
	if !ok {
		return nil, domain.NewDomainError("Meta.SchemaFor", domain.ErrSchemaNotFound, name)
	}
	return cs.raw, nil
}

// ValidateOutput checks structured agent output against the agent's declared
// schema. Agents without a schema accept any output.
func (m *Meta) ValidateOutput(name string, output any) error {
	cs, ok := m.schemas[name]
	if !ok {
		return nil
	}
	if result := cs.compiled.Validate(output); !result.IsValid() {
		return domain.NewDomainError("Meta.ValidateOutput", domain.ErrInvalidInput,
			fmt.Sprintf("agent %q output: %s", name, result.Error()))
	}
	return nil
}
