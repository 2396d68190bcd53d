package api

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/andrebq/talebox/audiostore"
	"github.com/andrebq/talebox/catalog"
	"github.com/andrebq/talebox/internal/httputil"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/julienschmidt/httprouter"
)

type (
	createBookRequest struct {
		Title string `json:"title"`
	}

	updateBookRequest struct {
		Title string `json:"title"`
	}
)

const maxCoverMemory = 8 << 20

// RegisterRoutes mounts book creation, listing and update. Updates need the
// audio store because a new cover is persisted in the book's storage area.
func RegisterRoutes(ctx context.Context, router *httprouter.Router, books *catalog.Store, assets *audiostore.Store) {
	router.HandlerFunc("POST", "/api/books", createBook(ctx, books))
	router.HandlerFunc("GET", "/api/books", listBooks(ctx, books))
	router.Handle("PUT", "/api/books/:id", updateBook(ctx, books, assets))
}

func createBook(ctx context.Context, books *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object with a title")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, books.Create(req.Title))
	}
}

func listBooks(ctx context.Context, books *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, books.List())
	}
}

func updateBook(ctx context.Context, books *catalog.Store, assets *audiostore.Store) httprouter.Handle {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		id := params.ByName("id")
		title, coverURL, ok := decodeUpdate(ctx, w, r, id, assets)
		if !ok {
			return
		}
		book, err := books.Update(id, title, coverURL)
		var notFound catalog.BookNotFound
		switch {
		case errors.As(err, &notFound):
			httputil.WriteError(w, http.StatusNotFound, "book_not_found", notFound.Error())
			return
		case err != nil:
			log.Error().Err(err).Str("book", id).Msg("unable to update book")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to update book")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, book)
	}
}

// decodeUpdate extracts the new title and, for multipart requests, stores the
// uploaded cover returning its URL. It writes the error response itself when
// the request cannot be decoded.
func decodeUpdate(ctx context.Context, w http.ResponseWriter, r *http.Request, bookID string, assets *audiostore.Store) (title, coverURL string, ok bool) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		var req updateBookRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object or multipart form data")
			return "", "", false
		}
		return req.Title, "", true
	}
	if err := r.ParseMultipartForm(maxCoverMemory); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "unable to parse multipart body")
		return "", "", false
	}
	title = r.FormValue("title")
	covers := r.MultipartForm.File["cover"]
	if len(covers) == 0 {
		return title, "", true
	}
	src, err := covers[0].Open()
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "unable to read uploaded cover")
		return "", "", false
	}
	defer src.Close()
	entry, err := assets.Save(r.Context(), bookID, audiostore.File{Name: covers[0].Filename, Content: src})
	if err != nil {
		log := logutil.GetOrDefault(ctx)
		log.Error().Err(err).Str("book", bookID).Msg("unable to store cover")
		httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to store cover")
		return "", "", false
	}
	return title, entry.URL, true
}
