package inkpress

import (
	"fmt"

	"github.com/kylekorndoerfer/inkpress/content"
)

// SyncResult summarizes one ingestion run of a content directory.
type SyncResult struct {
	Upserted int
	Removed  int
	Report   *content.Report
}

// SyncDir ingests a content directory into the store: every valid file is
// upserted under its slug, entries whose source file is gone are removed,
// and the integrity report for the run is returned. Files with problems are
// skipped, never deleted from the table implicitly; a file must disappear
// from disk before its entry is removed.
func (s *Store) SyncDir(dir string) (SyncResult, error) {
	posts, problems, err := content.LoadDir(dir)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load content dir: %w", err)
	}
	report := content.Check(posts, problems)

	result := SyncResult{Report: report}
	live := make(map[string]bool, len(posts))
	for _, p := range posts {
		live[p.Slug] = true
		if err := s.SavePost(p); err != nil {
			return result, fmt.Errorf("save %s: %w", p.Slug, err)
		}
		result.Upserted++
	}

	// Keep entries for files that failed this run; only drop rows whose
	// source file no longer exists at all.
	for _, prob := range problems {
		if prob.Path != "" {
			live[content.SlugFromPath(prob.Path)] = true
		}
	}

	existing, err := s.ListAll()
	if err != nil {
		return result, err
	}
	for _, p := range existing {
		if live[p.Slug] {
			continue
		}
		if err := s.DeletePost(p.Slug); err != nil {
			return result, fmt.Errorf("remove %s: %w", p.Slug, err)
		}
		result.Removed++
	}
	return result, nil
}
