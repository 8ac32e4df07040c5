package app

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// runInvoke sends one prompt to an agent and prints the reply.
func runInvoke(d Domain, args []string) error {
	fs := flag.NewFlagSet("invoke", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "config file path")
	agent := fs.String("agent", "", "agent to invoke (required)")
	sessionID := fs.String("session", "", "session to continue (default: new session)")
	userID := fs.String("user", "", "user identifier")
	markdown := fs.Bool("markdown", false, "render structured output as Markdown instead of JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *agent == "" {
		return fmt.Errorf("--agent is required")
	}
	content := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if content == "" {
		return fmt.Errorf("a prompt is required")
	}

	e, err := buildEnv(d, *cfgPath)
	if err != nil {
		return err
	}
	defer e.cleanup()

	sessions, closeStore, err := openSessions(e)
	if err != nil {
		return err
	}
	defer closeStore()

	chat := newChat(d, e, sessions)
	result, err := chat.Send(context.Background(), sendRequest(*agent, *sessionID, *userID, content))
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", result.SessionID)
	fmt.Println(result.Content)
	if result.Structured != nil {
		if *markdown {
			fmt.Println(structuredMarkdown(result.Structured))
		} else {
			out, _ := json.MarshalIndent(result.Structured, "", "  ")
			fmt.Printf("structured:\n%s\n", out)
		}
	}
	return nil
}

// runBatch reads newline-delimited records and runs them through a
// batch-enabled agent.
func runBatch(d Domain, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "config file path")
	agent := fs.String("agent", "", "batch-enabled agent to invoke (required)")
	input := fs.String("input", "-", "records file, one per line (default: stdin)")
	userID := fs.String("user", "", "user identifier")
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *agent == "" {
		return fmt.Errorf("--agent is required")
	}

	records, err := readRecords(*input)
	if err != nil {
		return err
	}

	e, err := buildEnv(d, *cfgPath)
	if err != nil {
		return err
	}
	defer e.cleanup()

	batch := newBatch(d, e)
	result, err := batch.Run(context.Background(), *agent, records, *userID)
	if err != nil {
		return err
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("run %s: %d records, %d ok, %d failed\n",
		result.RunID, result.Total(), len(result.Successes()), len(result.Failures()))
	for _, rec := range result.Failures() {
		fmt.Printf("  [%d] %s: %s\n", rec.Index, rec.Input, rec.Error)
	}
	return nil
}

// runAgents lists the agents this domain exposes.
func runAgents(d Domain, args []string) error {
	fs := flag.NewFlagSet("agents", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := buildEnv(d, *cfgPath)
	if err != nil {
		return err
	}
	defer e.cleanup()

	for _, def := range e.meta.List() {
		batch := ""
		if def.BatchEnabled {
			batch = " [batch]"
		}
		fmt.Printf("%s%s\n    %s\n", def.Name, batch, def.Description)
		if len(def.Tools) > 0 {
			fmt.Printf("    tools: %s\n", strings.Join(def.Tools, ", "))
		}
	}
	return nil
}

// runSchema prints an agent's declared output schema.
func runSchema(d Domain, args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "config file path")
	agent := fs.String("agent", "", "agent name (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *agent == "" {
		return fmt.Errorf("--agent is required")
	}

	e, err := buildEnv(d, *cfgPath)
	if err != nil {
		return err
	}
	defer e.cleanup()

	schema, err := e.meta.SchemaFor(*agent)
	if err != nil {
		return err
	}

	var buf map[string]any
	if err := json.Unmarshal(schema, &buf); err != nil {
		return err
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readRecords(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			records = append(records, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	return records, nil
}
