// Package content defines the front-matter contract for Markdown content
// files and loads them from a content directory. A content directory holds
// posts under posts/ and standalone pages (about, etc.) under pages/.
package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes dated blog posts from standalone pages.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// Post is one content file: YAML front matter plus a Markdown body.
// A Page is a Post with Kind == KindPage and no listing presence.
type Post struct {
	Slug    string
	Kind    Kind
	Title   string
	Date    string // YYYY-MM-DD
	Tags    []string
	Summary string
	Draft   bool
	Body    string
	Path    string // source file path, empty if not loaded from disk
}

// Published reports whether the post should appear on the public site.
// A post with no draft flag is published.
func (p Post) Published() bool {
	return !p.Draft
}

// HasTag reports whether the post carries tag, compared case-insensitively.
func (p Post) HasTag(tag string) bool {
	want := strings.ToLower(strings.TrimSpace(tag))
	for _, t := range p.Tags {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

// Slugify converts a title or file name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugFromPath derives a post slug from a content file path.
func SlugFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return Slugify(base)
}

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsMarkdown reports whether path looks like a Markdown content file.
func IsMarkdown(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// LoadFile reads and parses a single content file.
func LoadFile(path string, kind Kind) (Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return Post{}, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return Post{}, err
	}
	p.Kind = kind
	p.Slug = SlugFromPath(path)
	p.Path = path
	return p, nil
}

// LoadDir walks a content directory and parses every Markdown file under
// posts/ and pages/. Files that fail to parse or validate are returned as
// Problems rather than aborting the walk; the error covers I/O failures only.
// Posts are returned sorted by date descending, newest first.
func LoadDir(dir string) ([]Post, []Problem, error) {
	var posts []Post
	var problems []Problem

	for sub, kind := range map[string]Kind{"posts": KindPost, "pages": KindPage} {
		root := filepath.Join(dir, sub)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !IsMarkdown(path) {
				return nil
			}
			p, perr := LoadFile(path, kind)
			if perr != nil {
				problems = append(problems, Problem{Path: path, Message: perr.Error()})
				return nil
			}
			if verr := p.Validate(); verr != nil {
				problems = append(problems, Problem{Path: path, Message: verr.Error()})
				return nil
			}
			posts = append(posts, p)
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, problems, nil
}
