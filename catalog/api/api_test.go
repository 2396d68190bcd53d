package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrebq/talebox/audiostore"
	"github.com/andrebq/talebox/catalog"
	"github.com/julienschmidt/httprouter"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogHandler(t *testing.T) (http.Handler, *catalog.Store) {
	assets, err := audiostore.NewStore(t.TempDir())
	require.NoError(t, err)
	books := catalog.NewStore()
	router := httprouter.New()
	RegisterRoutes(context.Background(), router, books, assets)
	return router, books
}

func TestCreateAndListBooks(t *testing.T) {
	handler, _ := catalogHandler(t)

	apitest.New().
		Handler(handler).
		Post("/api/books").
		JSON(`{"title":"Dom Casmurro"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.title`, "Dom Casmurro")).
		Assert(jsonpath.Present(`$.id`)).
		End()

	apitest.New().
		Handler(handler).
		Get("/api/books").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].title`, "Dom Casmurro")).
		End()
}

func TestUpdateTitle(t *testing.T) {
	handler, books := catalogHandler(t)
	book := books.Create("Dom Casmurro")

	apitest.New().
		Handler(handler).
		Put("/api/books/"+book.ID).
		JSON(`{"title":"Memórias Póstumas"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.title`, "Memórias Póstumas")).
		Assert(jsonpath.Equal(`$.id`, book.ID)).
		End()
}

func TestUpdateUnknownBook(t *testing.T) {
	handler, _ := catalogHandler(t)

	apitest.New().
		Handler(handler).
		Put("/api/books/does-not-exist").
		JSON(`{"title":"x"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal(`$.code`, "book_not_found")).
		End()
}

func TestUpdateCover(t *testing.T) {
	handler, books := catalogHandler(t)
	book := books.Create("Dom Casmurro")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "With Cover"))
	part, err := writer.CreateFormFile("cover", "cover.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("PUT", "/api/books/"+book.ID, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated catalog.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "With Cover", updated.Title)
	assert.Contains(t, updated.CoverURL, "/uploads/"+book.ID+"/")
	assert.Contains(t, updated.CoverURL, "cover.jpg")
}
