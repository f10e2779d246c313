package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/mediacatalog/internal/domain"
)

func TestCategoryStoreCreate(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	c, err := store.Create(ctx, "Formación", "formacion")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Formación", c.Name)
	assert.Equal(t, "formacion", c.Slug)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCategoryStoreCreateDuplicateSlug(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	_, err := store.Create(ctx, "Events", "events")
	require.NoError(t, err)

	_, err = store.Create(ctx, "EVENTS", "events")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryStoreGetMissing(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	c, err := store.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = store.GetBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCategoryStoreListOrderedByName(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, n := range []string{"Zebra", "Alpha", "Mango"} {
		_, err := store.Create(ctx, n, n)
		require.NoError(t, err)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Mango", list[1].Name)
	assert.Equal(t, "Zebra", list[2].Name)
}

func TestCategoryStoreDeleteRemovesImages(t *testing.T) {
	d := openTestDB(t)
	categories := NewCategoryStore(d)
	images := NewImageStore(d)
	ctx := context.Background()

	c, err := categories.Create(ctx, "Events", "events")
	require.NoError(t, err)
	other, err := categories.Create(ctx, "Teams", "teams")
	require.NoError(t, err)

	_, err = images.Create(ctx, &domain.Image{CategoryID: c.ID, Src: "/gallery/events/a.jpg", Alt: "a", Title: "A", Type: domain.MediaTypeImage})
	require.NoError(t, err)
	kept, err := images.Create(ctx, &domain.Image{CategoryID: other.ID, Src: "/gallery/teams/b.jpg", Alt: "b", Title: "B", Type: domain.MediaTypeImage})
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, c.ID))

	got, err := categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	remaining, err := images.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestCategoryStoreDeleteMissing(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	err := store.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryStoreDeleteAll(t *testing.T) {
	d := openTestDB(t)
	categories := NewCategoryStore(d)
	images := NewImageStore(d)
	ctx := context.Background()

	c, err := categories.Create(ctx, "Events", "events")
	require.NoError(t, err)
	_, err = images.Create(ctx, &domain.Image{CategoryID: c.ID, Src: "/gallery/events/a.jpg", Alt: "a", Title: "A", Type: domain.MediaTypeImage})
	require.NoError(t, err)

	require.NoError(t, categories.DeleteAll(ctx))

	list, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	imgs, err := images.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestCategoryStoreDeleteStatementOrder(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectExec(`DELETE FROM images WHERE category_id = \?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM categories WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewCategoryStore(d).Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreDeleteAllStatementOrder(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectExec(`DELETE FROM images`).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`DELETE FROM categories`).WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, NewCategoryStore(d).DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreDeleteStopsWhenImageDeleteFails(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectExec(`DELETE FROM images WHERE category_id = \?`).
		WithArgs(int64(7)).
		WillReturnError(assert.AnError)

	err = NewCategoryStore(d).Delete(context.Background(), 7)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
