package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/omgkit/omgkit/pkg/frontmatter"
	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/types/component"
)

// Metadata is the frontmatter shape shared by all markdown component
// kinds. Reference lists are extracted separately since they accept
// both YAML sequences and comma-separated scalars.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// referenceFields maps each kind to its frontmatter list-field name.
var referenceFields = map[component.Kind]string{
	component.KindMCP:      "mcps",
	component.KindCommand:  "commands",
	component.KindSkill:    "skills",
	component.KindAgent:    "agents",
	component.KindWorkflow: "workflows",
}

// ScanAgents scans the flat agents directory: one <id>.md per agent.
func (s *Scanner) ScanAgents(ctx context.Context) (map[string]*component.Node, error) {
	if err := requireDir(s.agentsRoot, "agents"); err != nil {
		return nil, err
	}

	nodes := make(map[string]*component.Node)

	entries, err := os.ReadDir(s.agentsRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read agents directory")
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(s.agentsRoot, entry.Name())
		id := strings.TrimSuffix(entry.Name(), ".md")
		nodes[id] = s.loadNode(ctx, component.KindAgent, id, path)
	}

	logger.G(ctx).WithField("count", len(nodes)).Debug("Scanned agents")
	return nodes, nil
}

// ScanSkills scans the two-level skills tree:
// <skillsRoot>/<category>/<skill-name>/SKILL.md. A skill directory
// without a SKILL.md produces no node.
func (s *Scanner) ScanSkills(ctx context.Context) (map[string]*component.Node, error) {
	if err := requireDir(s.skillsRoot, "skills"); err != nil {
		return nil, err
	}

	nodes := make(map[string]*component.Node)

	categories, err := os.ReadDir(s.skillsRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skills directory")
	}

	for _, category := range categories {
		categoryPath := filepath.Join(s.skillsRoot, category.Name())
		info, err := os.Stat(categoryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skillDirs, err := os.ReadDir(categoryPath)
		if err != nil {
			continue
		}

		for _, skillDir := range skillDirs {
			skillPath := filepath.Join(categoryPath, skillDir.Name())
			info, err := os.Stat(skillPath)
			if err != nil || !info.IsDir() {
				continue
			}

			manifestPath := filepath.Join(skillPath, skillManifestName)
			if _, err := os.Stat(manifestPath); err != nil {
				logger.G(ctx).WithField("dir", skillPath).Debug("Skill directory without manifest, skipping")
				continue
			}

			id := category.Name() + "/" + skillDir.Name()
			nodes[id] = s.loadNode(ctx, component.KindSkill, id, manifestPath)
		}
	}

	logger.G(ctx).WithField("count", len(nodes)).Debug("Scanned skills")
	return nodes, nil
}

// ScanCommands scans <commandsRoot>/<namespace>/<name>.md files into
// /namespace:name command nodes.
func (s *Scanner) ScanCommands(ctx context.Context) (map[string]*component.Node, error) {
	if err := requireDir(s.commandsRoot, "commands"); err != nil {
		return nil, err
	}

	nodes := make(map[string]*component.Node)

	matches, err := doublestar.FilepathGlob(filepath.Join(s.commandsRoot, "*", "*.md"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to glob commands directory")
	}

	for _, path := range matches {
		namespace := filepath.Base(filepath.Dir(path))
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		id := "/" + namespace + ":" + name
		nodes[id] = s.loadNode(ctx, component.KindCommand, id, path)
	}

	logger.G(ctx).WithField("count", len(nodes)).Debug("Scanned commands")
	return nodes, nil
}

// ScanWorkflows scans <workflowsRoot>/<category>/<name>.md files into
// category/name workflow nodes.
func (s *Scanner) ScanWorkflows(ctx context.Context) (map[string]*component.Node, error) {
	if err := requireDir(s.workflowsRoot, "workflows"); err != nil {
		return nil, err
	}

	nodes := make(map[string]*component.Node)

	matches, err := doublestar.FilepathGlob(filepath.Join(s.workflowsRoot, "*", "*.md"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to glob workflows directory")
	}

	for _, path := range matches {
		category := filepath.Base(filepath.Dir(path))
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		id := category + "/" + name
		nodes[id] = s.loadNode(ctx, component.KindWorkflow, id, path)
	}

	logger.G(ctx).WithField("count", len(nodes)).Debug("Scanned workflows")
	return nodes, nil
}

// loadNode reads a component markdown file and builds its node. Header
// parse failures are recovered locally: the node keeps its path-derived
// identity and simply carries no declared references.
func (s *Scanner) loadNode(ctx context.Context, kind component.Kind, id, path string) *component.Node {
	node := component.NewNode(kind, id, path)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.G(ctx).WithField("path", path).WithError(err).Warn("Failed to read component file")
		return node
	}

	metaData, _, err := frontmatter.Parse(content)
	if err != nil {
		logger.G(ctx).WithField("path", path).WithError(err).Warn("Malformed frontmatter, keeping node without references")
		return node
	}
	if metaData == nil {
		return node
	}

	node.DeclaredKeys = frontmatter.Keys(metaData)

	var md Metadata
	if err := frontmatter.Decode(metaData, &md); err != nil {
		logger.G(ctx).WithField("path", path).WithError(err).Warn("Failed to decode frontmatter metadata")
	} else if md.Name != "" && md.Name != id {
		logger.G(ctx).WithFields(map[string]interface{}{
			"path":     path,
			"declared": md.Name,
			"derived":  id,
		}).Debug("Frontmatter name differs from path-derived id")
	}

	for _, dep := range component.AllowedDeps(kind) {
		field := referenceFields[dep]
		raw, ok := metaData[field]
		if !ok {
			continue
		}
		for _, ref := range frontmatter.StringList(raw) {
			node.AddDependency(dep, ref)
		}
	}

	return node
}
