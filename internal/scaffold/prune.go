package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactPaths are template build artifacts removed on every run.
var artifactPaths = []string{
	"coverage.out",
	"coverage.html",
	"bin",
	"dist",
	"data",
}

// demoRemovalPaths are the extra demo domains and their supporting files.
// The primary domain (concierge) is kept and renamed later.
var demoRemovalPaths = []string{
	"internal/domains/customer_support",
	"internal/domains/sales",
	"cmd/customer_support",
	"cmd/sales",
	"agent_configs/customer-support",
	"agent_configs/sales",
	"sbin/run_customer_support.sh",
	"sbin/run_sales.sh",
	"sbin/run_all_domains.sh",
}

// Removal records one pruned path in the report.
type Removal struct {
	Path  string // relative to the project root
	IsDir bool
}

// prune deletes the paths in rels under root. Missing paths are skipped, so
// running twice on an already-pruned tree is a no-op. Deletion is
// irreversible; callers are expected to have dry-run first.
func prune(root string, rels []string, dryRun bool) ([]Removal, error) {
	var removed []Removal
	for _, rel := range rels {
		target := filepath.Join(root, rel)
		info, err := os.Stat(target)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return removed, &StepError{Step: "prune", Path: rel, Err: err}
		}

		removed = append(removed, Removal{Path: rel, IsDir: info.IsDir()})
		if dryRun {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return removed, &StepError{Step: "prune", Path: rel, Err: fmt.Errorf("remove: %w", err)}
		}
	}
	return removed, nil
}

// prunedPath reports whether rel is one of the pruned paths or lies under a
// pruned directory. The rename and rewrite walks use it so that a dry run,
// which leaves pruned paths on disk, still plans over the tree a real run
// would see.
func prunedPath(rel string, pruned []string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range pruned {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}
