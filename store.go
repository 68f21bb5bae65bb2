package inkpress

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kylekorndoerfer/inkpress/content"
)

// Store wraps a SQLite database holding the ingested content table, keyed by
// slug, plus uploaded image metadata. Content files are the source of truth;
// the table is (re)populated by SyncDir.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    kind TEXT NOT NULL DEFAULT 'post',
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    source_path TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `slug, kind, title, date, tags, summary, content, published, source_path`

func scanPost(scan func(...any) error) (content.Post, error) {
	var slug, kind, title, date, tags, summary, body, sourcePath string
	var published int
	if err := scan(&slug, &kind, &title, &date, &tags, &summary, &body, &published, &sourcePath); err != nil {
		return content.Post{}, err
	}
	return content.Post{
		Slug:    slug,
		Kind:    content.Kind(kind),
		Title:   title,
		Date:    date,
		Tags:    ParseTags(tags),
		Summary: summary,
		Body:    body,
		Draft:   published == 0,
		Path:    sourcePath,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts carrying that tag,
// compared case-insensitively.
func (s *Store) ListPosts(tag string) ([]content.Post, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 AND kind = 'post' ORDER BY date DESC`)
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND kind = 'post' AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC`, normalized)
}

// ListPages returns all published standalone pages.
func (s *Store) ListPages() ([]content.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 AND kind = 'page' ORDER BY title`)
}

// ListAll returns every ingested entry, drafts and pages included,
// ordered by date descending (for the admin dashboard).
func (s *Store) ListAll() ([]content.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`)
}

// ListTags returns a sorted, deduplicated slice of all tags from published
// posts. Display case follows the first authored occurrence.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1 AND kind = 'post' ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]string)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			key := strings.ToLower(t)
			if _, ok := seen[key]; !ok {
				seen[key] = t
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(seen))
	for _, t := range seen {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i]) < strings.ToLower(result[j])
	})
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND kind = 'post' AND published = 1`, slug)
	return scanPost(row.Scan)
}

// GetPage returns a single published page by slug.
func (s *Store) GetPage(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND kind = 'page' AND published = 1`, slug)
	return scanPost(row.Scan)
}

// GetAny returns an entry by slug regardless of published status (for the
// admin draft preview).
func (s *Store) GetAny(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// SavePost upserts a content entry. Tags keep their authored order and case.
func (s *Store) SavePost(p content.Post) error {
	trimmed := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	tagString := "," + strings.Join(trimmed, ",") + ","
	kind := p.Kind
	if kind == "" {
		kind = content.KindPost
	}
	published := 0
	if p.Published() {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (slug, kind, title, date, tags, summary, content, published, source_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, string(kind), p.Title, p.Date, tagString, p.Summary, p.Body, published, p.Path)
	return err
}

// DeletePost removes an entry by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",Azure,CosmosDB,")
// into a slice, preserving order and case.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
