// Package scanner walks the OMGKIT content library and produces one
// graph node per component file. Identity is always derived from the
// file's position in the tree, so a component with a malformed or
// missing frontmatter header still gets a node; only its declared
// reference lists come from the header.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const skillManifestName = "SKILL.md"

// Scanner discovers component files under the configured library roots.
type Scanner struct {
	agentsRoot    string
	skillsRoot    string
	commandsRoot  string
	workflowsRoot string
	manifestPath  string
}

// Option is a function that configures a Scanner.
type Option func(*Scanner) error

// WithLibraryRoot points every kind root at the conventional layout
// under a single library directory: agents/, skills/, commands/,
// workflows/, and omgkit.yaml for the MCP manifest.
func WithLibraryRoot(root string) Option {
	return func(s *Scanner) error {
		if root == "" {
			return errors.New("library root must not be empty")
		}
		s.agentsRoot = filepath.Join(root, "agents")
		s.skillsRoot = filepath.Join(root, "skills")
		s.commandsRoot = filepath.Join(root, "commands")
		s.workflowsRoot = filepath.Join(root, "workflows")
		s.manifestPath = filepath.Join(root, "omgkit.yaml")
		return nil
	}
}

// WithAgentsRoot overrides the agents directory.
func WithAgentsRoot(dir string) Option {
	return func(s *Scanner) error {
		s.agentsRoot = dir
		return nil
	}
}

// WithSkillsRoot overrides the skills directory.
func WithSkillsRoot(dir string) Option {
	return func(s *Scanner) error {
		s.skillsRoot = dir
		return nil
	}
}

// WithCommandsRoot overrides the commands directory.
func WithCommandsRoot(dir string) Option {
	return func(s *Scanner) error {
		s.commandsRoot = dir
		return nil
	}
}

// WithWorkflowsRoot overrides the workflows directory.
func WithWorkflowsRoot(dir string) Option {
	return func(s *Scanner) error {
		s.workflowsRoot = dir
		return nil
	}
}

// WithManifestPath overrides the MCP manifest file path.
func WithManifestPath(path string) Option {
	return func(s *Scanner) error {
		s.manifestPath = path
		return nil
	}
}

// New creates a scanner. With no options the library root defaults to
// the current directory.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{}

	if len(opts) == 0 {
		opts = []Option{WithLibraryRoot(".")}
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.Wrap(err, "failed to apply scanner option")
		}
	}

	return s, nil
}

// requireDir returns a configuration error when a kind's root
// directory is missing. Silently yielding zero nodes would let a later
// validation run pass vacuously.
func requireDir(dir, kind string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "%s root directory not found: %s", kind, dir)
	}
	if !info.IsDir() {
		return errors.Errorf("%s root is not a directory: %s", kind, dir)
	}
	return nil
}
