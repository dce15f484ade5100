package translations

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"translation-manager/internal/metrics"
)

// languageEntry is what the registry remembers about one lookup.
type languageEntry struct {
	found bool
	value string
	id    uint
}

// LanguageCache memoizes language lookups for the life of the process.
// Entries are never invalidated; Purge is the explicit way to observe
// changed language rows.
type LanguageCache struct {
	entries *lru.Cache[string, languageEntry]
}

// NewLanguageCache returns a cache holding at most size lookups.
func NewLanguageCache(size int) (*LanguageCache, error) {
	entries, err := lru.New[string, languageEntry](size)
	if err != nil {
		return nil, fmt.Errorf("language cache: %w", err)
	}
	return &LanguageCache{entries: entries}, nil
}

func (c *LanguageCache) get(key string) (languageEntry, bool) {
	e, ok := c.entries.Get(key)
	if ok {
		metrics.LanguageCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.LanguageCacheLookups.WithLabelValues("miss").Inc()
	}
	return e, ok
}

func (c *LanguageCache) set(key string, e languageEntry) {
	c.entries.Add(key, e)
}

// Purge drops every cached lookup.
func (c *LanguageCache) Purge() {
	c.entries.Purge()
}

// Len reports the number of cached lookups.
func (c *LanguageCache) Len() int {
	return c.entries.Len()
}

func existsKey(id uint) string {
	return fmt.Sprintf("exists:%d", id)
}

func localeKey(column string, id uint) string {
	return fmt.Sprintf("locale:%s:%d", column, id)
}

func codeKey(column, code string) string {
	return fmt.Sprintf("code:%s:%s", column, code)
}
