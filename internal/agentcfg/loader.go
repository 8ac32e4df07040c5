// Package agentcfg loads the YAML agent declarations that each domain ships
// and exposes them through an immutable Meta registry. Agents are pure
// declarations here; execution happens behind domain.AgentInvoker.
package agentcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonschema"
	"gopkg.in/yaml.v3"

	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/infra/config"
)

// FileName is the agent declaration file expected inside the config dir.
const FileName = "agents.yaml"

// file mirrors the YAML document layout.
type file struct {
	Agents []domain.AgentDef `yaml:"agents"`
}

// LoadError accumulates every problem found while loading a config dir, so
// one run reports all broken agents instead of the first.
type LoadError struct {
	Dir    string
	Issues []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load agents from %s: %s", e.Dir, strings.Join(e.Issues, "; "))
}

func (e *LoadError) Unwrap() error { return domain.ErrConfigLoad }

func (e *LoadError) add(format string, args ...any) {
	e.Issues = append(e.Issues, fmt.Sprintf(format, args...))
}

// Dir resolves the agent config directory: the JARVIS_AGENTS_CONFIG_DIR
// environment variable wins over the configured default.
func Dir(cfg *config.Config) string {
	if dir := os.Getenv(config.EnvConfigDir); dir != "" {
		return dir
	}
	return cfg.Agents.Dir
}

// Load reads agents.yaml from dir, resolves each agent's prompt file and
// compiles each declared output schema. All validation issues are collected
// into a single LoadError.
func Load(dir string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, domain.WrapOp("agentcfg.Load", fmt.Errorf("%w: %v", domain.ErrConfigLoad, err))
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, domain.WrapOp("agentcfg.Load", fmt.Errorf("%w: parse %s: %v", domain.ErrConfigLoad, FileName, err))
	}

	loadErr := &LoadError{Dir: dir}
	if len(f.Agents) == 0 {
		loadErr.add("no agents declared")
		return nil, loadErr
	}

	meta := &Meta{
		byName:  make(map[string]domain.AgentDef, len(f.Agents)),
		schemas: make(map[string]*compiledSchema),
	}
	names := make(map[string]bool, len(f.Agents))

	for i, def := range f.Agents {
		if def.Name == "" {
			loadErr.add("agent %d: name is required", i)
			continue
		}
		if names[def.Name] {
			loadErr.add("agent %q: duplicate name", def.Name)
			continue
		}
		names[def.Name] = true

		if def.PromptFile != "" {
			prompt, err := os.ReadFile(filepath.Join(dir, def.PromptFile))
			if err != nil {
				loadErr.add("agent %q: prompt file: %v", def.Name, err)
				continue
			}
			def.Prompt = string(prompt)
		}

		if def.OutputSchema != nil {
			cs, err := compileSchema(def.OutputSchema)
			if err != nil {
				loadErr.add("agent %q: output schema: %v", def.Name, err)
				continue
			}
			meta.schemas[def.Name] = cs
		}

		meta.byName[def.Name] = def
		meta.order = append(meta.order, def.Name)
	}

	// Handoff targets must exist so routing can never dead-end.
	for _, name := range meta.order {
		for _, target := range meta.byName[name].Handoffs {
			if !names[target] {
				loadErr.add("agent %q: handoff target %q is not declared", name, target)
			}
		}
	}

	if len(loadErr.Issues) > 0 {
		return nil, loadErr
	}
	return meta, nil
}

// compiledSchema pairs the raw schema JSON (served over the API) with its
// compiled form (used for output validation).
type compiledSchema struct {
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

func compileSchema(schema map[string]any) (*compiledSchema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiled, err := jsonschema.NewCompiler().Compile(raw)
	if err != nil {
		return nil, err
	}
	return &compiledSchema{raw: raw, compiled: compiled}, nil
}
