// Package frontmatter extracts and decodes the YAML frontmatter block
// that heads every OMGKIT component markdown file. Parsing is fail-soft:
// a malformed header yields nil metadata rather than an error the
// scanner would have to abort on, since a component file's identity
// comes from its path, not its header.
package frontmatter

import (
	"bytes"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Parse extracts the YAML frontmatter and markdown body from content.
// It returns nil metadata when no frontmatter block is present. A
// malformed block returns an error; callers that want fail-soft
// behavior treat that error as "no metadata".
func Parse(content []byte) (map[string]interface{}, string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, string(content), errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	body := extractBody(string(content))
	return metaData, body, nil
}

// Decode maps generic frontmatter metadata onto a typed struct using
// mapstructure. Unknown keys are ignored; list fields accept both YAML
// sequences and scalar strings.
func Decode(metaData map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "yaml",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create metadata decoder")
	}
	if err := decoder.Decode(metaData); err != nil {
		return errors.Wrap(err, "failed to decode metadata")
	}
	return nil
}

// StringList normalizes a frontmatter field into a string slice. It
// accepts a YAML sequence or a comma-separated scalar; anything else
// yields an empty slice.
func StringList(field interface{}) []string {
	switch v := field.(type) {
	case []interface{}:
		var result []string
		for _, item := range v {
			if str, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(str); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
		return result
	case string:
		if v == "" {
			return nil
		}
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	default:
		return nil
	}
}

// Keys returns the top-level keys present in the metadata map.
func Keys(metaData map[string]interface{}) []string {
	keys := make([]string, 0, len(metaData))
	for k := range metaData {
		keys = append(keys, k)
	}
	return keys
}

// extractBody strips the YAML frontmatter fence and returns the
// markdown body. Content without a complete fence is returned as-is.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	fenceEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fenceEnd = i
			break
		}
	}

	if fenceEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[fenceEnd+1:], "\n"), "\n")
}
