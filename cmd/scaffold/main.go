// Command scaffold renames a fresh clone of the jarvis-agents template into
// a new project, prunes the demo domains that were not selected, and removes
// itself afterwards. Run it once, from the repository root, right after
// cloning.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"jarvis-agents/internal/scaffold"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage()
			return
		}
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scaffold: %v\n", err)
		if errors.Is(err, scaffold.ErrInvalidName) {
			fmt.Fprintf(os.Stderr, "\nRun 'scaffold --help' for usage information.\n")
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("scaffold", flag.ExitOnError)
	primaryDomain := fs.String("primary-domain", "", "domain to keep and rename (default: the project name)")
	displayName := fs.String("display-name", "", "human-readable project name (default: derived from the project name)")
	description := fs.String("description", "", "one-line project description")
	port := fs.Int("port", scaffold.DefaultPort, "default chat server port")
	root := fs.String("root", ".", "template root to scaffold")
	dryRun := fs.Bool("dry-run", false, "report what would change without touching any file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: exactly one project name is required", scaffold.ErrInvalidName)
	}

	report, err := scaffold.Run(scaffold.Options{
		Root:          *root,
		Name:          fs.Arg(0),
		PrimaryDomain: *primaryDomain,
		DisplayName:   *displayName,
		Description:   *description,
		Port:          *port,
		DryRun:        *dryRun,
	})
	if err != nil {
		if report != nil {
			fmt.Fprintf(os.Stderr, "scaffold: failed at %s\n", report.State)
		}
		return err
	}

	printReport(report)
	return nil
}

func printReport(r *scaffold.Report) {
	mode := "scaffolded"
	if r.DryRun {
		mode = "dry-run, no files were changed"
	}
	fmt.Printf("%s -> %s (%s)\n", "jarvis-agents", r.Project.Kebab, mode)
	fmt.Printf("  primary domain: %s\n", r.Domain.Kebab)
	fmt.Printf("  removed:        %d paths\n", len(r.Removed))
	fmt.Printf("  renamed:        %d paths\n", len(r.Renamed))
	fmt.Printf("  rewritten:      %d files\n", len(r.Rewritten))

	if r.DryRun {
		for _, rm := range r.Removed {
			fmt.Printf("    rm   %s\n", rm.Path)
		}
		for _, pr := range r.Renamed {
			fmt.Printf("    mv   %s -> %s\n", pr.OldPath, pr.NewPath)
		}
		for _, rw := range r.Rewritten {
			fmt.Printf("    edit %s\n", rw.Path)
		}
		return
	}

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  go mod tidy\n")
	fmt.Printf("  make run_%s\n", r.Domain.Snake)
}

func showUsage() {
	fmt.Println(`scaffold - turn a jarvis-agents clone into your own project

USAGE:
    go run ./cmd/scaffold [FLAGS] <project-name>

ARGUMENTS:
    project-name    Lowercase-hyphenated name, e.g. "kbe-pay". A leading
                    "jarvis-" prefix is stripped.

FLAGS:
    --primary-domain NAME   Demo domain to keep and rename (default: project name)
    --display-name NAME     Human-readable name (default: derived, e.g. "Kbe Pay")
    --description TEXT      One-line description for README and config
    --port N                Default chat server port (default: 2337)
    --root PATH             Template root (default: current directory)
    --dry-run               Print the plan without changing any file
    -h, --help              Show this help message

EXAMPLES:
    go run ./cmd/scaffold kbe-pay
    go run ./cmd/scaffold --primary-domain nurture --port 9000 kbe-pay
    go run ./cmd/scaffold --dry-run kbe-pay

The tool prunes the demo domains you did not pick, renames every path and
file that references the template, and finally deletes its own sources.
Run it exactly once, on a fresh clone.`)
}
