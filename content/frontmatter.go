package content

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML envelope at the top of every content file.
// Dates are kept as strings so the authored YYYY-MM-DD form survives a
// round trip untouched.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Summary string   `yaml:"summary,omitempty"`
	Draft   bool     `yaml:"draft,omitempty"`
}

// Parse splits YAML front matter from the Markdown body. A missing draft
// flag leaves Draft false, which means published. Unknown front-matter keys
// are tolerated.
func Parse(r io.Reader) (Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return Post{}, fmt.Errorf("parse front matter: %w", err)
	}
	return Post{
		Title:   fm.Title,
		Date:    fm.Date,
		Tags:    append([]string(nil), fm.Tags...),
		Summary: fm.Summary,
		Draft:   fm.Draft,
		Body:    string(body),
	}, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(src []byte) (Post, error) {
	return Parse(bytes.NewReader(src))
}

// Marshal serializes a post back to front matter plus body. Tags come out
// in authored order, so Parse(Marshal(p)) preserves the tag list exactly.
func Marshal(p Post) ([]byte, error) {
	fm := frontMatter{
		Title:   p.Title,
		Date:    p.Date,
		Tags:    p.Tags,
		Summary: p.Summary,
		Draft:   p.Draft,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n")
	if p.Body != "" && !strings.HasPrefix(p.Body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(p.Body)
	return buf.Bytes(), nil
}
