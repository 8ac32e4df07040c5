package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPort matches the template's default chat server port.
const DefaultPort = 2337

// templateMarker must exist under the root for a run to proceed. Its absence
// means the tree was already scaffolded (or is not a template clone at all).
const templateMarker = "internal/domains/" + templateDomain

// selfPaths are removed as the final pipeline step. The scaffolder deletes
// its own sources; nothing else in the module imports them, so the tree
// still compiles afterwards.
var selfPaths = []string{
	"cmd/scaffold",
	"internal/scaffold",
}

// State tracks pipeline progress. Any failure is terminal; completed steps
// are not rolled back, which is why dry-run-first is the recommended usage.
type State int

const (
	StateInit State = iota
	StateNamesDerived
	StateRulesPlanned
	StatePruned
	StatePathsRenamed
	StateContentRewritten
	StateSelfRemoved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateNamesDerived:
		return "names-derived"
	case StateRulesPlanned:
		return "rules-planned"
	case StatePruned:
		return "pruned"
	case StatePathsRenamed:
		return "paths-renamed"
	case StateContentRewritten:
		return "content-rewritten"
	case StateSelfRemoved:
		return "self-removed"
	default:
		return "failed"
	}
}

// Options configures one scaffold run.
type Options struct {
	Root          string // project root (the cloned template)
	Name          string // required, lowercase-hyphenated
	PrimaryDomain string // optional; defaults to Name
	DisplayName   string // optional; defaults to the derived display form
	Description   string // optional; replaces the template description
	Port          int    // optional; defaults to DefaultPort
	DryRun        bool
}

// Report describes everything a run did (or, in dry-run mode, would do).
type Report struct {
	State     State
	Project   NameSet
	Domain    NameSet
	Rules     []Rule
	Removed   []Removal
	Renamed   []PathRename
	Rewritten []Rewrite
	DryRun    bool
}

// Run executes the scaffolding pipeline:
//
//	Init -> NamesDerived -> RulesPlanned -> Pruned -> PathsRenamed ->
//	ContentRewritten -> SelfRemoved
//
// Steps run strictly in that order so no step ever observes a half-renamed
// tree: deletions first, renames bottom-up, content rewriting last. On error
// the returned report carries StateFailed and the error names the step and
// path; mutations made by completed steps remain in place.
func Run(opts Options) (*Report, error) {
	report := &Report{State: StateInit, DryRun: opts.DryRun}

	fail := func(err error) (*Report, error) {
		report.State = StateFailed
		return report, err
	}

	// Derive both name sets.
	project, err := DeriveNames(opts.Name)
	if err != nil {
		return fail(&StepError{Step: "derive-names", Err: err})
	}
	if opts.DisplayName != "" {
		project.Display = opts.DisplayName
	}

	domainInput := opts.PrimaryDomain
	if domainInput == "" {
		domainInput = opts.Name
	}
	domain, err := DeriveNames(domainInput)
	if err != nil {
		return fail(&StepError{Step: "derive-names", Err: err})
	}
	report.Project, report.Domain = project, domain
	report.State = StateNamesDerived

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return fail(&StepError{Step: "derive-names", Path: opts.Root, Err: err})
	}

	// The outer repository directory name is protected: only the tree under
	// it is renamed. A domain name contained in the protected token would
	// make rule application ambiguous, so it is rejected outright.
	protectedRoot := filepath.Base(root)
	if domain.Kebab != templateDomain && strings.Contains(protectedRoot, domain.Kebab) {
		return fail(&StepError{
			Step: "derive-names",
			Path: protectedRoot,
			Err: fmt.Errorf("%w: domain %q is a substring of the protected root directory name",
				ErrInvalidName, domain.Kebab),
		})
	}

	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(templateMarker))); err != nil {
		return fail(&StepError{
			Step: "verify-template",
			Path: templateMarker,
			Err:  fmt.Errorf("%w: run this from a fresh clone of the jarvis-agents template", ErrMissingTemplateMarker),
		})
	}

	// Plan substitution rules.
	report.Rules = PlanRules(project, domain)
	report.State = StateRulesPlanned

	// Prune build artifacts and unselected demo domains before renaming so
	// removed content is never wastefully rewritten.
	removals := append(append([]string{}, artifactPaths...), demoRemovalPaths...)
	report.Removed, err = prune(root, removals, opts.DryRun)
	if err != nil {
		return fail(err)
	}
	report.State = StatePruned

	// Rename paths bottom-up. A dry run leaves the pruned paths on disk, so
	// the walks below exclude them to plan over the tree a real run sees.
	protected := map[string]bool{protectedRoot: true}
	report.Renamed, err = renamePaths(root, report.Rules, protected, removals, opts.DryRun)
	if err != nil {
		return fail(err)
	}
	report.State = StatePathsRenamed

	// Rewrite file contents.
	report.Rewritten, err = rewriteContents(root, report.Rules, protected, removals, opts.DryRun)
	if err != nil {
		return fail(err)
	}
	if err := applyOverrides(root, project, opts, report); err != nil {
		return fail(err)
	}
	report.State = StateContentRewritten

	// Self-delete last.
	selfRemoved, err := prune(root, selfPaths, opts.DryRun)
	if err != nil {
		return fail(err)
	}
	report.Removed = append(report.Removed, selfRemoved...)
	report.State = StateSelfRemoved

	return report, nil
}

// templateDescription is what the description override replaces. The
// source-root pass has already rewritten the "Jarvis Agents" prefix by the
// time overrides run, so the post-rewrite form is reconstructed here.
const templateDescriptionSuffix = " - Multi-agent AI Assistant Demo"

// overrideTarget names one override file twice: the path a real run sees
// after renaming, and the pre-rename path a dry run must read instead. Most
// targets are never renamed, so both forms coincide.
type overrideTarget struct {
	rel    string // post-rename, as reported
	dryRel string // pre-rename, read in dry-run mode
}

func target(rel string) overrideTarget { return overrideTarget{rel: rel, dryRel: rel} }

// applyOverrides rewrites the description and non-default port in the files
// that carry the template defaults.
func applyOverrides(root string, project NameSet, opts Options, report *Report) error {
	if opts.Description != "" {
		oldDesc := project.Display + templateDescriptionSuffix
		files := []overrideTarget{target("README.md"), target("internal/infra/config/config.go")}
		if err := replaceInFiles(root, files, oldDesc, opts.Description, opts.DryRun, report); err != nil {
			return err
		}
	}

	if opts.Port != 0 && opts.Port != DefaultPort {
		files := []overrideTarget{
			target("Makefile"),
			target(".env.example"),
			target("internal/infra/config/config.go"),
			{
				rel:    "sbin/run_" + report.Domain.Snake + ".sh",
				dryRel: "sbin/run_" + templateDomainNames.Snake + ".sh",
			},
		}
		port := strconv.Itoa(opts.Port)
		if err := replaceInFiles(root, files, strconv.Itoa(DefaultPort), port, opts.DryRun, report); err != nil {
			return err
		}
	}
	return nil
}

// replaceInFiles applies one literal substitution to each target. A real run
// operates on files the rules pass has already renamed and rewritten; a dry
// run reads the pre-rename file and simulates the rules pass first, so both
// modes match (or miss) the same content and report the same paths.
func replaceInFiles(root string, targets []overrideTarget, old, new string, dryRun bool, report *Report) error {
	for _, tgt := range targets {
		readRel := tgt.rel
		if dryRun {
			readRel = tgt.dryRel
		}
		path := filepath.Join(root, filepath.FromSlash(readRel))
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return &StepError{Step: "rewrite", Path: readRel, Err: err}
		}
		current := string(data)
		if dryRun {
			current, _ = Apply(current, report.Rules)
		}
		content := strings.ReplaceAll(current, old, new)
		if content == current {
			continue
		}
		report.Rewritten = append(report.Rewritten, Rewrite{Path: tgt.rel, RulesApplied: 1})
		if dryRun {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return &StepError{Step: "rewrite", Path: tgt.rel, Err: err}
		}
		if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
			return &StepError{Step: "rewrite", Path: tgt.rel, Err: err}
		}
	}
	return nil
}
