package translations

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-manager/internal/metrics"
)

func TestLanguagesIsValid(t *testing.T) {
	db := openTestDB(t)
	langs := newTestLanguages(t, db)
	ctx := context.Background()

	assert.True(t, langs.IsValid(ctx, 1))
	assert.True(t, langs.IsValid(ctx, 1))
	assert.False(t, langs.IsValid(ctx, 999))
	assert.False(t, langs.IsValid(ctx, 999))
	assert.False(t, langs.IsValid(ctx, 0))
}

func TestLanguagesCachesLookups(t *testing.T) {
	db := openTestDB(t)
	langs := newTestLanguages(t, db)
	ctx := context.Background()

	hits := metrics.LanguageCacheLookups.WithLabelValues("hit")
	before := testutil.ToFloat64(hits)

	require.True(t, langs.IsValid(ctx, 2))
	require.NoError(t, db.Delete(&testLanguage{}, 2).Error)

	// still answered from the cache
	assert.True(t, langs.IsValid(ctx, 2))
	assert.Equal(t, float64(1), testutil.ToFloat64(hits)-before)

	langs.ClearCache()
	assert.False(t, langs.IsValid(ctx, 2))
}

func TestLanguagesLocale(t *testing.T) {
	db := openTestDB(t)
	langs := newTestLanguages(t, db)
	ctx := context.Background()

	code, ok := langs.Locale(ctx, 2, "code")
	assert.True(t, ok)
	assert.Equal(t, "ar", code)

	title, ok := langs.Locale(ctx, 2, "title")
	assert.True(t, ok)
	assert.Equal(t, "Arabic", title, "locale and title entries must not collide")

	_, ok = langs.Locale(ctx, 999, "code")
	assert.False(t, ok)

	_, ok = langs.Locale(ctx, 1, "")
	assert.False(t, ok)
}

func TestLanguagesLocaleIsStaleUntilCleared(t *testing.T) {
	db := openTestDB(t)
	langs := newTestLanguages(t, db)
	ctx := context.Background()

	code, _ := langs.Locale(ctx, 3, "code")
	require.Equal(t, "fr", code)

	require.NoError(t, db.Model(&testLanguage{ID: 3}).Update("code", "fr-CA").Error)

	code, _ = langs.Locale(ctx, 3, "code")
	assert.Equal(t, "fr", code)

	langs.ClearCache()
	code, _ = langs.Locale(ctx, 3, "code")
	assert.Equal(t, "fr-CA", code)
}

func TestLanguagesLookupErrorsAreNotCached(t *testing.T) {
	db := openTestDB(t)
	cache, err := NewLanguageCache(8)
	require.NoError(t, err)
	langs := NewLanguages(db, cache, LanguagesOptions{Table: "missing_languages"}, nil)

	assert.False(t, langs.IsValid(context.Background(), 1))
	_, ok := langs.Locale(context.Background(), 1, "code")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestLanguagesIDForCode(t *testing.T) {
	db := openTestDB(t)
	langs := newTestLanguages(t, db)
	ctx := context.Background()

	id, ok := langs.IDForCode(ctx, "fr")
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)

	_, ok = langs.IDForCode(ctx, "de")
	assert.False(t, ok)

	_, ok = langs.IDForCode(ctx, "")
	assert.False(t, ok)
}
