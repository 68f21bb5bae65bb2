package inkpress

import (
	"os"
	"path/filepath"
	"testing"
)

func writeContentFile(t *testing.T, dir, rel, data string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSyncDir(t *testing.T) {
	s := setupTestStore(t)
	dir := t.TempDir()

	writeContentFile(t, dir, "posts/first-post.md", `---
title: "First Post"
date: "2024-01-01"
tags: [Go, Databases]
summary: "The first one"
---

Hello.
`)
	writeContentFile(t, dir, "posts/second-post.md", `---
title: "Second Post"
date: "2024-01-02"
draft: true
---

Still cooking.
`)
	writeContentFile(t, dir, "pages/about.md", `---
title: "About"
date: "2024-01-01"
---

About me.
`)

	result, err := s.SyncDir(dir)
	if err != nil {
		t.Fatalf("SyncDir failed: %v", err)
	}
	if result.Upserted != 3 {
		t.Errorf("Upserted = %d, want 3", result.Upserted)
	}
	if result.Removed != 0 {
		t.Errorf("Removed = %d, want 0", result.Removed)
	}
	if !result.Report.OK() {
		t.Errorf("unexpected problems: %v", result.Report.Problems)
	}

	// The draft stays out of the public listing but lands in the table.
	published, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "first-post" {
		t.Errorf("published = %v, want [first-post]", published)
	}
	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll count = %d, want 3", len(all))
	}

	page, err := s.GetPage("about")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if page.Title != "About" {
		t.Errorf("page title = %q, want %q", page.Title, "About")
	}

	got, err := s.GetPost("first-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Go" || got.Tags[1] != "Databases" {
		t.Errorf("Tags = %v, want [Go Databases]", got.Tags)
	}
}

func TestSyncDirRemovesOrphans(t *testing.T) {
	s := setupTestStore(t)
	dir := t.TempDir()

	writeContentFile(t, dir, "posts/keep.md", `---
title: "Keep"
date: "2024-01-01"
---

Stays.
`)
	writeContentFile(t, dir, "posts/drop.md", `---
title: "Drop"
date: "2024-01-02"
---

Goes.
`)

	if _, err := s.SyncDir(dir); err != nil {
		t.Fatalf("SyncDir failed: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "posts", "drop.md")); err != nil {
		t.Fatal(err)
	}

	result, err := s.SyncDir(dir)
	if err != nil {
		t.Fatalf("SyncDir failed: %v", err)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
	if _, err := s.GetAny("drop"); err == nil {
		t.Error("drop should be gone after its file was removed")
	}
	if _, err := s.GetPost("keep"); err != nil {
		t.Errorf("keep should survive: %v", err)
	}
}

func TestSyncDirKeepsEntriesForBrokenFiles(t *testing.T) {
	s := setupTestStore(t)
	dir := t.TempDir()

	writeContentFile(t, dir, "posts/fragile.md", `---
title: "Fragile"
date: "2024-01-01"
---

Fine for now.
`)
	if _, err := s.SyncDir(dir); err != nil {
		t.Fatalf("SyncDir failed: %v", err)
	}

	// Break the file: missing title fails validation.
	writeContentFile(t, dir, "posts/fragile.md", `---
date: "2024-01-01"
---

Broken now.
`)

	result, err := s.SyncDir(dir)
	if err != nil {
		t.Fatalf("SyncDir failed: %v", err)
	}
	if result.Report.OK() {
		t.Fatal("expected a problem for the broken file")
	}
	if result.Removed != 0 {
		t.Errorf("Removed = %d, want 0 (broken files keep their entry)", result.Removed)
	}

	// The last good version stays live until the file is fixed or deleted.
	got, err := s.GetPost("fragile")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Fragile" {
		t.Errorf("Title = %q, want %q", got.Title, "Fragile")
	}
}
