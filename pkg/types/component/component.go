// Package component defines the shared types for the OMGKIT component
// hierarchy: the five component kinds, their identity formats, and the
// dependency graph nodes built over them.
package component

import "regexp"

// Kind identifies one of the five component kinds in the hierarchy.
type Kind string

const (
	KindMCP      Kind = "mcp"
	KindCommand  Kind = "command"
	KindSkill    Kind = "skill"
	KindAgent    Kind = "agent"
	KindWorkflow Kind = "workflow"
)

// AllKinds lists every kind in ascending hierarchy order.
var AllKinds = []Kind{KindMCP, KindCommand, KindSkill, KindAgent, KindWorkflow}

// kindLevels maps each kind to its position in the 5-level hierarchy.
// Lower levels may be referenced by higher levels, never the reverse.
var kindLevels = map[Kind]int{
	KindMCP:      0,
	KindCommand:  1,
	KindSkill:    2,
	KindAgent:    3,
	KindWorkflow: 4,
}

// Level returns the kind's position in the hierarchy, with MCPs at the
// bottom (0) and workflows at the top (4). Unknown kinds return -1.
func (k Kind) Level() int {
	level, ok := kindLevels[k]
	if !ok {
		return -1
	}
	return level
}

// Valid reports whether k is one of the five known kinds.
func (k Kind) Valid() bool {
	_, ok := kindLevels[k]
	return ok
}

// allowedDeps maps each kind to the kinds it is permitted to reference.
var allowedDeps = map[Kind][]Kind{
	KindMCP:      {},
	KindCommand:  {KindMCP},
	KindSkill:    {KindCommand, KindMCP},
	KindAgent:    {KindSkill, KindCommand},
	KindWorkflow: {KindAgent, KindSkill, KindCommand},
}

// AllowedDeps returns the kinds that k may declare dependencies on.
func AllowedDeps(k Kind) []Kind {
	return allowedDeps[k]
}

// MayReference reports whether a component of kind k is permitted to
// declare a dependency on kind dep.
func MayReference(k, dep Kind) bool {
	for _, allowed := range allowedDeps[k] {
		if allowed == dep {
			return true
		}
	}
	return false
}

var (
	kebabPattern     = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	slashPairPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*/[a-z0-9][a-z0-9-]*$`)
	commandPattern   = regexp.MustCompile(`^/[a-z][a-z0-9-]*:[a-z0-9][a-z0-9-]*$`)
)

// IDPattern returns the identity regex for the given kind. MCPs and
// agents use bare kebab-case names, commands use /namespace:name, and
// skills and workflows use category/name pairs.
func IDPattern(k Kind) *regexp.Regexp {
	switch k {
	case KindCommand:
		return commandPattern
	case KindSkill, KindWorkflow:
		return slashPairPattern
	default:
		return kebabPattern
	}
}

// ValidID reports whether id matches the identity format for kind k.
func ValidID(k Kind, id string) bool {
	return IDPattern(k).MatchString(id)
}
