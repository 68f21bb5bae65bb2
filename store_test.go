package inkpress

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/kylekorndoerfer/inkpress/content"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := content.Post{
		Slug:    "test-post",
		Kind:    content.KindPost,
		Title:   "Test Post",
		Date:    "2024-01-15",
		Tags:    []string{"Azure CosmosDB", "go"},
		Summary: "A test post summary",
		Body:    "# Test Content\n\nThis is test content.",
		Path:    "content/posts/test-post.md",
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}

	if got.Slug != post.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, post.Slug)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Date != post.Date {
		t.Errorf("Date = %q, want %q", got.Date, post.Date)
	}
	if got.Summary != post.Summary {
		t.Errorf("Summary = %q, want %q", got.Summary, post.Summary)
	}
	if got.Body != post.Body {
		t.Errorf("Body = %q, want %q", got.Body, post.Body)
	}
	if got.Path != post.Path {
		t.Errorf("Path = %q, want %q", got.Path, post.Path)
	}
	if got.Draft {
		t.Error("Draft should be false")
	}
	// Authored tag order and case survive the round trip.
	if len(got.Tags) != 2 || got.Tags[0] != "Azure CosmosDB" || got.Tags[1] != "go" {
		t.Errorf("Tags = %v, want [Azure CosmosDB go]", got.Tags)
	}
}

func TestSavePostUpdate(t *testing.T) {
	s := setupTestStore(t)

	post := content.Post{
		Slug:    "update-test",
		Kind:    content.KindPost,
		Title:   "Original Title",
		Date:    "2024-01-01",
		Tags:    []string{"original"},
		Summary: "Original summary",
		Body:    "Original content",
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	post.Title = "Updated Title"
	post.Tags = []string{"updated", "modified"}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.GetPost("update-test")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}

	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags count = %d, want 2", len(got.Tags))
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost("nonexistent")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetPostDraft(t *testing.T) {
	s := setupTestStore(t)

	post := content.Post{
		Slug:    "draft-post",
		Kind:    content.KindPost,
		Title:   "Draft Post",
		Date:    "2024-01-01",
		Tags:    []string{"wip"},
		Summary: "Draft summary",
		Body:    "Draft content",
		Draft:   true,
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	// GetPost serves the public site and must not expose drafts.
	_, err := s.GetPost("draft-post")
	if err != sql.ErrNoRows {
		t.Errorf("GetPost should return ErrNoRows for drafts, got %v", err)
	}

	// GetAny backs the admin preview and does.
	got, err := s.GetAny("draft-post")
	if err != nil {
		t.Fatalf("GetAny failed: %v", err)
	}
	if !got.Draft {
		t.Error("Draft should be true")
	}
}

func TestListPosts(t *testing.T) {
	s := setupTestStore(t)

	posts := []content.Post{
		{Slug: "post-1", Kind: content.KindPost, Title: "Post 1", Date: "2024-01-01", Tags: []string{"go"}, Summary: "s1", Body: "c1"},
		{Slug: "post-2", Kind: content.KindPost, Title: "Post 2", Date: "2024-01-02", Tags: []string{"go", "web"}, Summary: "s2", Body: "c2"},
		{Slug: "post-3", Kind: content.KindPost, Title: "Post 3", Date: "2024-01-03", Tags: []string{"rust"}, Summary: "s3", Body: "c3"},
		{Slug: "post-4", Kind: content.KindPost, Title: "Post 4", Date: "2024-01-04", Tags: []string{"go"}, Summary: "s4", Body: "c4", Draft: true},
		{Slug: "about", Kind: content.KindPage, Title: "About", Date: "2024-01-01", Summary: "", Body: "About me"},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	if len(got) != 3 {
		t.Errorf("ListPosts count = %d, want 3 (excluding drafts and pages)", len(got))
	}

	// Ordered by date DESC.
	if got[0].Slug != "post-3" {
		t.Errorf("First post should be post-3 (latest), got %s", got[0].Slug)
	}
}

func TestListPostsByTag(t *testing.T) {
	s := setupTestStore(t)

	posts := []content.Post{
		{Slug: "go-post-1", Kind: content.KindPost, Title: "Go Post 1", Date: "2024-01-01", Tags: []string{"Go", "tutorial"}, Summary: "s1", Body: "c1"},
		{Slug: "go-post-2", Kind: content.KindPost, Title: "Go Post 2", Date: "2024-01-02", Tags: []string{"go", "web"}, Summary: "s2", Body: "c2"},
		{Slug: "rust-post", Kind: content.KindPost, Title: "Rust Post", Date: "2024-01-03", Tags: []string{"rust"}, Summary: "s3", Body: "c3"},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	// Filtering is case-insensitive even though stored tags keep their case.
	got, err := s.ListPosts("go")
	if err != nil {
		t.Fatalf("ListPosts with tag failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPosts(go) count = %d, want 2", len(got))
	}

	got, err = s.ListPosts("GO")
	if err != nil {
		t.Fatalf("ListPosts with tag failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPosts(GO) count = %d, want 2", len(got))
	}

	got, err = s.ListPosts("nonexistent")
	if err != nil {
		t.Fatalf("ListPosts with tag failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts(nonexistent) count = %d, want 0", len(got))
	}
}

func TestListPages(t *testing.T) {
	s := setupTestStore(t)

	entries := []content.Post{
		{Slug: "about", Kind: content.KindPage, Title: "About", Date: "2024-01-01", Body: "About me"},
		{Slug: "contact", Kind: content.KindPage, Title: "Contact", Date: "2024-01-01", Body: "Mail me"},
		{Slug: "hidden", Kind: content.KindPage, Title: "Hidden", Date: "2024-01-01", Body: "WIP", Draft: true},
		{Slug: "a-post", Kind: content.KindPost, Title: "A Post", Date: "2024-01-02", Body: "c"},
	}
	for _, p := range entries {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	pages, err := s.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("ListPages count = %d, want 2", len(pages))
	}
	if pages[0].Slug != "about" || pages[1].Slug != "contact" {
		t.Errorf("pages = [%s %s], want [about contact]", pages[0].Slug, pages[1].Slug)
	}

	page, err := s.GetPage("about")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if page.Kind != content.KindPage {
		t.Errorf("Kind = %q, want %q", page.Kind, content.KindPage)
	}

	// A page slug is not reachable through GetPost.
	if _, err := s.GetPost("about"); err != sql.ErrNoRows {
		t.Errorf("GetPost(about) = %v, want sql.ErrNoRows", err)
	}
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)

	posts := []content.Post{
		{Slug: "p1", Kind: content.KindPost, Title: "P1", Date: "2024-01-01", Tags: []string{"Go", "Databases"}, Body: "c"},
		{Slug: "p2", Kind: content.KindPost, Title: "P2", Date: "2024-01-02", Tags: []string{"go", "web"}, Body: "c"},
		{Slug: "p3", Kind: content.KindPost, Title: "P3", Date: "2024-01-03", Tags: []string{"draft-only"}, Body: "c", Draft: true},
	}
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}

	// Dedup is case-insensitive, display case follows the first authored
	// occurrence, and draft-only tags stay hidden.
	want := []string{"Databases", "Go", "web"}
	if len(tags) != len(want) {
		t.Fatalf("ListTags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	post := content.Post{Slug: "doomed", Kind: content.KindPost, Title: "Doomed", Date: "2024-01-01", Body: "c"}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.DeletePost("doomed"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetAny("doomed"); err != sql.ErrNoRows {
		t.Errorf("GetAny after delete = %v, want sql.ErrNoRows", err)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{",go,web,", []string{"go", "web"}},
		{",Azure CosmosDB,", []string{"Azure CosmosDB"}},
		{",,", nil},
		{"", nil},
		{"go", []string{"go"}},
	}

	for _, tt := range tests {
		got := ParseTags(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
