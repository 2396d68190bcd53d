package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	store := NewStore()
	first := store.Create("Dom Casmurro")
	second := store.Create("Grande Sertão")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	books := store.List()
	require.Len(t, books, 2)
	// listings preserve creation order
	assert.Equal(t, []Book{first, second}, books)
}

func TestUpdate(t *testing.T) {
	store := NewStore()
	book := store.Create("Dom Casmurro")

	updated, err := store.Update(book.ID, "Memórias Póstumas", "")
	require.NoError(t, err)
	assert.Equal(t, "Memórias Póstumas", updated.Title)
	assert.Empty(t, updated.CoverURL)

	updated, err = store.Update(book.ID, "", "/uploads/"+book.ID+"/42-cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Memórias Póstumas", updated.Title, "empty title must not erase the current one")
	assert.Equal(t, "/uploads/"+book.ID+"/42-cover.jpg", updated.CoverURL)
}

func TestUpdateUnknownBook(t *testing.T) {
	store := NewStore()
	_, err := store.Update("does-not-exist", "x", "")
	assert.ErrorAs(t, err, &BookNotFound{})
}

func TestListIsACopy(t *testing.T) {
	store := NewStore()
	book := store.Create("Dom Casmurro")
	books := store.List()
	books[0].Title = "mutated"
	got, found := store.Get(book.ID)
	require.True(t, found)
	assert.Equal(t, "Dom Casmurro", got.Title)
}
