package scaffold

import (
	"sort"
	"strings"
)

// Namespace tags a substitution rule with the rename level it belongs to.
type Namespace int

const (
	// NamespaceSourceRoot rules rewrite the template's module identifier
	// (jarvis-agents and its casing variants).
	NamespaceSourceRoot Namespace = iota
	// NamespaceDomain rules rewrite the primary demo domain identifier
	// (concierge and its casing variants).
	NamespaceDomain
)

func (n Namespace) String() string {
	if n == NamespaceSourceRoot {
		return "source-root"
	}
	return "domain"
}

// Rule is one literal old->new substitution.
type Rule struct {
	Match     string
	Replace   string
	Namespace Namespace
}

// Template tokens. These literals are what a pristine clone of the template
// contains; the planner maps them to the user-supplied names.
const (
	templateModule = "jarvis-agents"
	templateDomain = "concierge"
)

// templateModuleNames is the NameSet of the template's source root.
var templateModuleNames = NameSet{
	Kebab:      "jarvis-agents",
	Snake:      "jarvis_agents",
	Pascal:     "JarvisAgents",
	Display:    "Jarvis Agents",
	UpperSnake: "JARVIS_AGENTS",
}

// templateDomainNames is the NameSet of the template's primary demo domain.
var templateDomainNames = NameSet{
	Kebab:      "concierge",
	Snake:      "concierge",
	Pascal:     "Concierge",
	Display:    "Concierge",
	UpperSnake: "CONCIERGE",
}

// PlanRules builds the ordered substitution list for both namespaces.
//
// Ordering invariant: any rule whose match text contains another rule's match
// text as a substring precedes it. Sorting stably by descending match length
// guarantees the invariant while keeping the hand-written order for rules of
// equal length. Without this, replacing "concierge" before "concierge_batch"
// would corrupt the longer token ("kbe_pay_batch" would never be produced).
//
// Pure function: deterministic for identical input, no side effects.
func PlanRules(project, domain NameSet) []Rule {
	rules := append(sourceRootRules(project), domainRules(domain)...)
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Match) > len(rules[j].Match)
	})
	return rules
}

func sourceRootRules(names NameSet) []Rule {
	src := func(match, replace string) Rule {
		return Rule{Match: match, Replace: replace, Namespace: NamespaceSourceRoot}
	}
	return []Rule{
		src(templateModuleNames.Display, names.Display),
		src(templateModuleNames.Kebab, names.Kebab),
		src(templateModuleNames.Snake, names.Snake),
		src(templateModuleNames.UpperSnake, names.UpperSnake),
		src(templateModuleNames.Pascal, names.Pascal),
	}
}

func domainRules(names NameSet) []Rule {
	dom := func(match, replace string) Rule {
		return Rule{Match: match, Replace: replace, Namespace: NamespaceDomain}
	}
	return []Rule{
		// Compound identifiers (most specific first).
		dom(templateDomain+"_batch", names.Snake+"_batch"),
		dom(templateDomain+"_chat", names.Snake+"_chat"),
		dom(templateDomain+"-chat", names.Kebab+"-chat"),
		dom("run_"+templateDomain, "run_"+names.Snake),
		// Casing variants. Pascal doubles as the display form so that
		// exported identifiers stay legal Go.
		dom(templateDomainNames.UpperSnake, names.UpperSnake),
		dom(templateDomainNames.Pascal, names.Pascal),
		// Catch-all for remaining lowercase references (package names,
		// import paths, config values, script paths).
		dom(templateDomain, names.Snake),
	}
}

// Apply runs every rule against s in order and returns the result plus the
// number of rules that matched at least once. This is literal substitution:
// a match inside an unrelated identifier is rewritten too, which is an
// accepted limitation of template scaffolding.
func Apply(s string, rules []Rule) (string, int) {
	applied := 0
	for _, r := range rules {
		next := strings.ReplaceAll(s, r.Match, r.Replace)
		if next != s {
			applied++
			s = next
		}
	}
	return s, applied
}
