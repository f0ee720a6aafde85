package markdown

import (
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds the optional YAML header some tutorial files carry.
type FrontMatter struct {
	Category   string `yaml:"category"`
	Difficulty string `yaml:"difficulty"`
}

// IsZero reports whether no field was set.
func (f FrontMatter) IsZero() bool {
	return f == FrontMatter{}
}

// yamlOnly restricts parsing to "---" delimited blocks.
var yamlOnly = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// SplitFrontMatter separates a leading front matter block from the markdown
// body. A block only counts when it sets a known field, so a document that
// opens with a "---" rule keeps its heading. Anything else comes back
// unchanged with an empty FrontMatter.
func SplitFrontMatter(content string) (FrontMatter, string) {
	var meta FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &meta, yamlOnly)
	if err != nil {
		log.WithError(err).Debug("ignoring malformed front matter")
		return FrontMatter{}, content
	}
	if meta.IsZero() {
		return FrontMatter{}, content
	}
	return meta, string(body)
}
