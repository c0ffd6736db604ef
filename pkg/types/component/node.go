package component

// Node is a read-only projection of a single component file. The ID is
// derived from the file's path position, never from its frontmatter, so
// every file produces a node even when its header is malformed.
type Node struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Path string `json:"path"`

	// DependsOn holds the declared forward references toward lower
	// kinds, exactly as written in the source file. Dangling targets
	// and duplicates are preserved for the validators to report.
	DependsOn map[Kind][]string `json:"dependsOn,omitempty"`

	// UsedBy holds the reverse references, populated exclusively by
	// inverting other nodes' DependsOn edges during graph assembly.
	UsedBy map[Kind][]string `json:"usedBy,omitempty"`

	// DeclaredKeys records which reference fields were present in the
	// frontmatter at all, even when empty. The hierarchy validator
	// needs to distinguish an empty workflows list from an absent one.
	DeclaredKeys []string `json:"-"`
}

// NewNode creates a node with empty reference maps.
func NewNode(kind Kind, id, path string) *Node {
	return &Node{
		ID:        id,
		Kind:      kind,
		Path:      path,
		DependsOn: make(map[Kind][]string),
		UsedBy:    make(map[Kind][]string),
	}
}

// AddDependency appends a declared forward reference. Duplicates are
// kept so the duplicate validator can see them.
func (n *Node) AddDependency(kind Kind, id string) {
	n.DependsOn[kind] = append(n.DependsOn[kind], id)
}

// AddUsedBy records a reverse reference from a referencing node.
func (n *Node) AddUsedBy(kind Kind, id string) {
	for _, existing := range n.UsedBy[kind] {
		if existing == id {
			return
		}
	}
	n.UsedBy[kind] = append(n.UsedBy[kind], id)
}

// HasDeclaredKey reports whether the named frontmatter key was present
// in the source file.
func (n *Node) HasDeclaredKey(key string) bool {
	for _, k := range n.DeclaredKeys {
		if k == key {
			return true
		}
	}
	return false
}
