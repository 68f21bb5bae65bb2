package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePost = `---
title: Partitioning in CosmosDB
date: "2023-01-15"
tags:
  - Azure
  - CosmosDB
summary: Picking a partition key that scales.
---

Intro paragraph.

` + "```csharp {3,5-7}\nvar client = new CosmosClient(endpoint, key);\n```" + `

Closing paragraph.
`

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(samplePost))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Title != "Partitioning in CosmosDB" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Date != "2023-01-15" {
		t.Errorf("Date = %q", p.Date)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "Azure" || p.Tags[1] != "CosmosDB" {
		t.Errorf("Tags = %v, want [Azure CosmosDB] in authored order", p.Tags)
	}
	if p.Summary != "Picking a partition key that scales." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if p.Draft {
		t.Error("Draft should default to false when absent")
	}
	if !p.Published() {
		t.Error("post without draft flag must be published")
	}
	if !strings.Contains(p.Body, "Intro paragraph.") {
		t.Errorf("Body missing prose: %q", p.Body)
	}
	if strings.Contains(p.Body, "title:") {
		t.Error("Body should not contain front matter")
	}
}

func TestParseDraft(t *testing.T) {
	src := "---\ntitle: X\ndate: \"2023-01-01\"\ndraft: true\n---\nbody\n"
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !p.Draft {
		t.Error("Draft = false, want true")
	}
	if p.Published() {
		t.Error("draft post must not be published")
	}
}

func TestParseNoFrontMatter(t *testing.T) {
	p, err := Parse(strings.NewReader("just a body\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Title != "" {
		t.Errorf("Title = %q, want empty", p.Title)
	}
	if p.Body != "just a body\n" {
		t.Errorf("Body = %q", p.Body)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	orig := Post{
		Title:   "X",
		Date:    "2023-01-01",
		Tags:    []string{"Azure", "CosmosDB"},
		Summary: "teaser",
		Draft:   true,
		Body:    "Hello **world**.\n",
	}
	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if got.Title != orig.Title || got.Date != orig.Date || got.Summary != orig.Summary {
		t.Errorf("round trip changed fields: %+v", got)
	}
	if got.Draft != orig.Draft {
		t.Errorf("Draft = %v, want %v", got.Draft, orig.Draft)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Azure" || got.Tags[1] != "CosmosDB" {
		t.Errorf("Tags = %v, want authored order preserved", got.Tags)
	}
	if !strings.Contains(string(data), "Hello **world**.") {
		t.Errorf("Marshal output missing body: %q", data)
	}
}

func TestValidate(t *testing.T) {
	valid := Post{Slug: "x", Kind: KindPost, Title: "X", Date: "2023-01-01"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid post failed validation: %v", err)
	}

	tests := []struct {
		name string
		post Post
	}{
		{"missing title", Post{Slug: "x", Kind: KindPost, Date: "2023-01-01"}},
		{"missing date", Post{Slug: "x", Kind: KindPost, Title: "X"}},
		{"bad date", Post{Slug: "x", Kind: KindPost, Title: "X", Date: "2023-13-45"}},
		{"not a date", Post{Slug: "x", Kind: KindPost, Title: "X", Date: "January 1st"}},
		{"bad slug", Post{Slug: "Not A Slug", Kind: KindPost, Title: "X", Date: "2023-01-01"}},
		{"bad kind", Post{Slug: "x", Kind: Kind("widget"), Title: "X", Date: "2023-01-01"}},
	}
	for _, tt := range tests {
		if err := tt.post.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  C# Exception Serialization!  ", "c-exception-serialization"},
		{"2023-01-15-options-pattern", "2023-01-15-options-pattern"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasTag(t *testing.T) {
	p := Post{Tags: []string{"Azure", "CosmosDB"}}
	if !p.HasTag("azure") {
		t.Error("HasTag should match case-insensitively")
	}
	if p.HasTag("dotnet") {
		t.Error("HasTag matched a tag the post does not carry")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/first-post.md", "---\ntitle: First\ndate: \"2023-01-01\"\n---\nbody one\n")
	writeContent(t, dir, "posts/second-post.md", "---\ntitle: Second\ndate: \"2023-02-01\"\ndraft: true\n---\nbody two\n")
	writeContent(t, dir, "posts/broken.md", "---\ndate: \"2023-03-01\"\n---\nno title\n")
	writeContent(t, dir, "posts/notes.txt", "not markdown")
	writeContent(t, dir, "pages/about.md", "---\ntitle: About\ndate: \"2022-06-01\"\n---\nabout me\n")

	posts, problems, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1 (missing title): %v", len(problems), problems)
	}
	// Newest post first.
	if posts[0].Slug != "second-post" {
		t.Errorf("first post = %q, want second-post", posts[0].Slug)
	}
	var page *Post
	for i := range posts {
		if posts[i].Kind == KindPage {
			page = &posts[i]
		}
	}
	if page == nil || page.Slug != "about" {
		t.Fatalf("about page not loaded: %+v", posts)
	}
}

func TestCheckDuplicates(t *testing.T) {
	posts := []Post{
		{Slug: "a", Kind: KindPost, Title: "X", Date: "2023-01-01", Path: "posts/a.md"},
		{Slug: "b", Kind: KindPost, Title: "X", Date: "2023-01-01", Path: "posts/b.md"},
		{Slug: "c", Kind: KindPost, Title: "X", Date: "2023-02-01", Path: "posts/c.md"},
	}
	report := Check(posts, nil)
	if report.OK() {
		t.Fatal("duplicate title+date pair should fail the check")
	}
	if len(report.Problems) != 1 {
		t.Fatalf("got %d problems, want 1: %v", len(report.Problems), report.Problems)
	}
	if !strings.Contains(report.Problems[0].Message, "duplicate") {
		t.Errorf("unexpected problem: %v", report.Problems[0])
	}
}

func TestCheckUnbalancedFence(t *testing.T) {
	posts := []Post{{
		Slug: "a", Kind: KindPost, Title: "A", Date: "2023-01-01",
		Body: "intro\n```go\nfmt.Println()\n",
	}}
	report := Check(posts, nil)
	if report.OK() {
		t.Fatal("unclosed fence should fail the check")
	}
}

func writeContent(t *testing.T, dir, rel, data string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
