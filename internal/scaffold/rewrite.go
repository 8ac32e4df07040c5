package scaffold

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// binaryExtensions are skipped without reading their contents.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".bmp": true, ".svg": true, ".woff": true, ".woff2": true, ".ttf": true,
	".eot": true, ".so": true, ".dylib": true, ".zip": true, ".tar": true,
	".gz": true, ".bz2": true, ".xz": true, ".pdf": true, ".db": true,
	".sqlite": true,
}

// Rewrite records one content-rewritten file in the report.
type Rewrite struct {
	Path         string // relative to the project root
	RulesApplied int    // number of rules that matched at least once
}

// rewriteContents applies the substitution rules to the contents of every
// text file under root and writes the result back only when it changed.
// Binary files (by extension, or any content that is not valid UTF-8 or
// contains a NUL byte) are left untouched.
//
// Paths inside pruned removals are skipped, and in dry-run mode each
// reported path is projected through the rename rules, so the dry report
// names exactly the files a real run rewrites.
func rewriteContents(root string, rules []Rule, protected map[string]bool, pruned []string, dryRun bool) ([]Rewrite, error) {
	var rewritten []Rewrite

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if path != root && prunedPath(rel, pruned) {
				return filepath.SkipDir
			}
			return nil
		}
		if prunedPath(rel, pruned) {
			return nil
		}
		if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		if !isText(data) {
			return nil
		}

		content, applied := Apply(string(data), rules)
		if applied == 0 || content == string(data) {
			return nil
		}

		if dryRun {
			rel = projectRenamedPath(rel, rules, protected)
		}
		rewritten = append(rewritten, Rewrite{Path: rel, RulesApplied: applied})

		if dryRun {
			return nil
		}
		info, rerr := d.Info()
		if rerr != nil {
			return rerr
		}
		return os.WriteFile(path, []byte(content), info.Mode().Perm())
	})
	if err != nil {
		return rewritten, &StepError{Step: "rewrite", Err: err}
	}
	return rewritten, nil
}

// isText reports whether data looks like UTF-8 text. A NUL byte or invalid
// UTF-8 marks the file as binary.
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
