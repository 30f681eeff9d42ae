package classify

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/hierarh/internal/signal"
)

//go:embed styles.yaml
var defaultStyles []byte

// stylePrefix is stripped from AppliedParagraphStyle values before matching.
const stylePrefix = "ParagraphStyle/"

// Rule maps a paragraph style to a signal kind.
type Rule struct {
	Style         string      `yaml:"style"`
	Justification string      `yaml:"justification,omitempty"`
	Kind          signal.Kind `yaml:"kind"`
}

// StyleTable is an ordered list of rules; the first match wins.
type StyleTable struct {
	Rules []Rule `yaml:"paragraph_styles"`
}

// DefaultStyles returns the built-in decision table.
func DefaultStyles() (*StyleTable, error) {
	return parseStyles(bytes.NewReader(defaultStyles))
}

// LoadStyles reads a decision table from a YAML file.
func LoadStyles(path string) (*StyleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open style table: %w", err)
	}
	defer f.Close()
	return parseStyles(f)
}

func parseStyles(r io.Reader) (*StyleTable, error) {
	var table StyleTable
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to parse style table: %w", err)
	}
	for i, rule := range table.Rules {
		if rule.Style == "" || rule.Kind == "" {
			return nil, fmt.Errorf("style table rule %d: style and kind are required", i+1)
		}
	}
	return &table, nil
}

// Match returns the signal kind for a paragraph style, or false when the
// style is not in the table.
func (t *StyleTable) Match(style, justification string) (signal.Kind, bool) {
	style = strings.TrimPrefix(style, stylePrefix)
	for _, r := range t.Rules {
		if r.Style != style {
			continue
		}
		if r.Justification != "" && r.Justification != justification {
			continue
		}
		return r.Kind, true
	}
	return "", false
}
