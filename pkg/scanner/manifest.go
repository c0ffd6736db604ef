package scanner

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/types/component"
)

// Manifest is the central library manifest. MCP servers are declared
// here rather than as individual files, keyed by server name under
// mcp_servers.
type Manifest struct {
	Name       string                     `yaml:"name"`
	Version    string                     `yaml:"version"`
	MCPServers map[string]MCPServerConfig `yaml:"mcp_servers"`
}

// MCPServerConfig describes a single MCP server entry in the manifest.
type MCPServerConfig struct {
	Command     string            `yaml:"command"`
	Args        []string          `yaml:"args,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Description string            `yaml:"description,omitempty"`
}

// ScanMCPs reads MCP nodes from the central manifest file. A missing
// or unreadable manifest is a configuration error, equivalent to a
// missing kind root directory.
func (s *Scanner) ScanMCPs(ctx context.Context) (map[string]*component.Node, error) {
	content, err := os.ReadFile(s.manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "mcp manifest not found: %s", s.manifestPath)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse mcp manifest %s", s.manifestPath)
	}

	nodes := make(map[string]*component.Node)
	for name := range manifest.MCPServers {
		nodes[name] = component.NewNode(component.KindMCP, name, s.manifestPath)
	}

	logger.G(ctx).WithField("count", len(nodes)).Debug("Scanned mcp manifest")
	return nodes, nil
}
