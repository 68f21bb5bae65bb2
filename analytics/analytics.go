// Package analytics provides privacy-first page view tracking for the blog.
// Visitor IPs are never stored; only a salted hash is kept.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// HashIP returns the salted hash recorded in place of a visitor IP.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(salt.value + ip))
	return hex.EncodeToString(sum[:])
}

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	IPHash    string    `json:"-"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Bot       bool      `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
}

// PathCount is an aggregated view count for one page path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// DayCount is an aggregated view count for one calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Summary is the aggregate view served on the admin dashboard.
type Summary struct {
	TotalViews int         `json:"total_views"`
	TopPaths   []PathCount `json:"top_paths"`
	Daily      []DayCount  `json:"daily"`
}

var botMarkers = []string{
	"bot", "crawler", "spider", "slurp", "crawling",
	"facebookexternalhit", "feedfetcher", "headless",
}

// IsBot reports whether a user agent looks like a crawler.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return true
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
