package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never walked, renamed or rewritten.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"_examples":    true,
}

// PathRename is one (old, new) pair in the rename plan.
type PathRename struct {
	OldPath string // relative to the project root
	NewPath string
}

// renamePaths walks the tree and renames every file and directory whose base
// name contains a template token. Renames are applied deepest-first so that
// renaming a directory never invalidates the path of an entry below it.
//
// Protected tokens are left alone when they make up a whole path segment:
// this is what keeps the outer repository directory intact when only the
// domain should change.
//
// A rename whose target already exists (and is not the source itself) aborts
// the run with ErrPathCollision before any further mutation.
//
// Paths inside pruned removals are skipped. A real run has already deleted
// them; a dry run must not plan renames for paths the real run removes.
func renamePaths(root string, rules []Rule, protected map[string]bool, pruned []string, dryRun bool) ([]PathRename, error) {
	var plan []PathRename

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}
		base := d.Name()
		if d.IsDir() && skipDirs[base] {
			return filepath.SkipDir
		}
		if prunedPath(rel, pruned) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if protected[base] {
			return nil
		}

		newBase, _ := Apply(base, rules)
		if newBase == base {
			return nil
		}

		plan = append(plan, PathRename{
			OldPath: rel,
			NewPath: filepath.Join(filepath.Dir(rel), newBase),
		})
		return nil
	})
	if err != nil {
		return nil, &StepError{Step: "rename", Err: err}
	}

	// Deepest paths first.
	sort.SliceStable(plan, func(i, j int) bool {
		return pathDepth(plan[i].OldPath) > pathDepth(plan[j].OldPath)
	})

	for _, pr := range plan {
		oldAbs := filepath.Join(root, pr.OldPath)
		newAbs := filepath.Join(root, pr.NewPath)

		if _, err := os.Lstat(newAbs); err == nil && oldAbs != newAbs {
			return plan, &StepError{Step: "rename", Path: pr.NewPath, Err: ErrPathCollision}
		}
		if dryRun {
			continue
		}
		if err := os.Rename(oldAbs, newAbs); err != nil {
			return plan, &StepError{Step: "rename", Path: pr.OldPath, Err: err}
		}
	}
	return plan, nil
}

func pathDepth(rel string) int {
	return strings.Count(rel, string(filepath.Separator))
}

// projectRenamedPath maps a pre-rename relative path onto its post-rename
// form by applying the rules to every segment, mirroring renamePaths. A dry
// run walks the unrenamed tree, so its report goes through this projection
// to name the paths a real run would actually touch.
func projectRenamedPath(rel string, rules []Rule, protected map[string]bool) string {
	segs := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segs {
		if protected[seg] {
			continue
		}
		segs[i], _ = Apply(seg, rules)
	}
	return filepath.FromSlash(strings.Join(segs, "/"))
}
