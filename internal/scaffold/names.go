package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRE matches lowercase-hyphenated names: "kbe-pay", "my-app", "nurture".
// A leading digit, leading/trailing hyphen, or any character outside
// [a-z0-9-] is rejected.
var nameRE = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// NameSet holds every casing variant of one logical name. All forms derive
// deterministically from the canonical kebab input; Kebab round-trips to the
// input unchanged.
type NameSet struct {
	Kebab      string // "kbe-pay"
	Snake      string // "kbe_pay"
	Pascal     string // "KbePay"
	Display    string // "Kbe Pay"
	UpperSnake string // "KBE_PAY"
}

// DeriveNames validates name and derives all casing variants from it.
// A leading "jarvis-" prefix is stripped so that users who include the
// template prefix do not end up with a doubled name.
func DeriveNames(name string) (NameSet, error) {
	if !nameRE.MatchString(name) {
		return NameSet{}, fmt.Errorf(
			"%w: %q must be lowercase with hyphens (e.g. \"kbe-pay\", \"my-app\")",
			ErrInvalidName, name)
	}

	name = strings.TrimPrefix(name, "jarvis-")

	parts := strings.Split(name, "-")
	capitalized := make([]string, len(parts))
	for i, p := range parts {
		capitalized[i] = strings.ToUpper(p[:1]) + p[1:]
	}

	snake := strings.ReplaceAll(name, "-", "_")
	return NameSet{
		Kebab:      name,
		Snake:      snake,
		Pascal:     strings.Join(capitalized, ""),
		Display:    strings.Join(capitalized, " "),
		UpperSnake: strings.ToUpper(snake),
	}, nil
}
