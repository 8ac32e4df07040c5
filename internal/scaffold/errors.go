// Package scaffold renames a freshly cloned copy of the jarvis-agents
// template into a new project. It rewrites two independent namespaces (the
// source-root identifier and the primary-domain identifier), prunes the demo
// domains that were not selected, and finally removes itself from the tree.
//
// The package is deliberately self-contained: nothing outside cmd/scaffold
// imports it, so the self-removal step leaves a compiling module behind.
package scaffold

import "fmt"

// Sentinel errors for the scaffolding pipeline. All of them are fatal to the
// run; none are retried.
var (
	// ErrInvalidName reports a project or domain name that is not
	// lowercase-hyphenated (characters outside [a-z0-9-], or a leading or
	// trailing hyphen).
	ErrInvalidName = fmt.Errorf("invalid name")

	// ErrPathCollision reports a rename whose target already exists. The run
	// aborts rather than overwrite.
	ErrPathCollision = fmt.Errorf("rename target already exists")

	// ErrMissingTemplateMarker reports that an expected template token or
	// directory is absent, meaning the tool is being run on an
	// already-scaffolded or corrupted tree.
	ErrMissingTemplateMarker = fmt.Errorf("template marker not found")
)

// StepError records the pipeline step and the path at which a run failed.
type StepError struct {
	Step string // pipeline step name, e.g. "rename"
	Path string // path being processed when the failure occurred
	Err  error
}

func (e *StepError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Step, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
