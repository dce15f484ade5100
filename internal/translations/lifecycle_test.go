package translations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSaveCreatesOwnerAndTranslations(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()

	s := shoe{SKU: "NEW"}
	payload := ParsePayload([]byte(`{"1": {"name": "Boot"}, "3": {"name": "Botte"}, "999": {"name": "X"}, "abc": {"name": "Y"}}`))
	require.NoError(t, e.Save(ctx, &s, payload, "shoes.store"))
	require.NotZero(t, s.ID)

	rows, err := e.AllTranslations(ctx, s)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].LanguageID)
	assert.Equal(t, "boot", deref(rows[0].Slug))
	assert.Equal(t, uint(3), rows[1].LanguageID)
	assert.Equal(t, "fr", deref(rows[1].Locale))
}

func TestSaveSkipsConfiguredOperations(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()

	for _, op := range []string{"shoes.import", "nightly.bulk"} {
		s := shoe{SKU: op}
		require.NoError(t, e.Save(ctx, &s, Payload{1: {"name": "Ignored"}}, op))
		require.NotZero(t, s.ID, "owner is saved for %s", op)

		rows, err := e.AllTranslations(ctx, s)
		require.NoError(t, err)
		assert.Empty(t, rows, "translations skipped for %s", op)
	}
}

func TestSaveRollsBackOnConflict(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()

	taken := createShoe(t, db, "TAKEN")
	_, err := e.Upsert(ctx, taken, 1, Fields{"slug": "dup"})
	require.NoError(t, err)

	s := shoe{SKU: "FRESH"}
	err = e.Save(ctx, &s, Payload{1: {"name": "Fine"}, 2: {"slug": "dup"}}, "")
	require.ErrorIs(t, err, ErrConflict)

	var owners int64
	require.NoError(t, db.Model(&shoe{}).Where("sku = ?", "FRESH").Count(&owners).Error)
	assert.Zero(t, owners, "owner insert is rolled back")

	var rows int64
	require.NoError(t, db.Model(&shoeTranslation{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSetTranslations(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()
	s := createShoe(t, db, "SKU-1")

	got, err := e.SetTranslations(ctx, s, map[uint]Fields{
		2: {"name": "Two"},
		1: {"name": "One"},
		0: {"name": "Zero"},
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	rows, err := e.AllTranslations(ctx, s)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "One", rows[0].Name)
	assert.Equal(t, "Two", rows[1].Name)
}

func TestDeleteCascadesTranslations(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()

	s := createShoe(t, db, "SKU-7")
	keep := createShoe(t, db, "SKU-8")
	require.NoError(t, e.Save(ctx, &s, Payload{1: {"name": "Red Shoe"}, 2: {"name": "Red Shoe"}}, ""))
	require.NoError(t, e.Save(ctx, &keep, Payload{1: {"name": "Green Shoe"}}, ""))

	require.NoError(t, e.Delete(ctx, &s))

	rows, err := e.AllTranslations(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, rows)

	var owners int64
	require.NoError(t, db.Model(&shoe{}).Where("id = ?", s.ID).Count(&owners).Error)
	assert.Zero(t, owners)

	others, err := e.AllTranslations(ctx, keep)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestDeleteMissingOwner(t *testing.T) {
	db := openTestDB(t)
	e := newShoeEngine(t, db)
	ctx := context.Background()

	assert.ErrorIs(t, e.Delete(ctx, &shoe{}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, e.Delete(ctx, &shoe{ID: 404}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, e.Delete(ctx, nil), gorm.ErrRecordNotFound)
}
