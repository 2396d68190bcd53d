package api

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/andrebq/talebox/audiostore"
	"github.com/andrebq/talebox/internal/httputil"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/julienschmidt/httprouter"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory,
// the rest spills to temp files.
const maxUploadMemory = 32 << 20

func init() {
	// the builtin mime table does not know the common audiobook formats and
	// the system table may be missing entirely
	mime.AddExtensionType(".mp3", "audio/mpeg")
	mime.AddExtensionType(".m4a", "audio/mp4")
	mime.AddExtensionType(".m4b", "audio/mp4")
	mime.AddExtensionType(".ogg", "audio/ogg")
	mime.AddExtensionType(".flac", "audio/flac")
}

// RegisterRoutes mounts upload, listing and raw-file serving for a store.
func RegisterRoutes(ctx context.Context, router *httprouter.Router, store *audiostore.Store) {
	router.Handle("POST", "/api/books/:id/upload", uploadFiles(ctx, store))
	router.Handle("GET", "/api/books/:id/audios", listAudios(ctx, store))
	router.Handle("GET", "/uploads/:id/:file", serveFile(ctx, store))
}

func uploadFiles(ctx context.Context, store *audiostore.Store) httprouter.Handle {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be multipart form data")
			return
		}
		headers := r.MultipartForm.File["files"]
		files := make([]audiostore.File, 0, len(headers))
		for _, hdr := range headers {
			src, err := hdr.Open()
			if err != nil {
				httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "unable to read uploaded file")
				return
			}
			defer src.Close()
			files = append(files, audiostore.File{Name: hdr.Filename, Content: src})
		}
		entries, err := store.SaveAll(r.Context(), params.ByName("id"), files)
		var badName audiostore.InvalidName
		switch {
		case errors.As(err, &badName):
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", badName.Error())
			return
		case err != nil:
			log.Error().Err(err).Str("book", params.ByName("id")).Msg("unable to store uploaded files")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to store uploaded files")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string][]audiostore.Entry{"files": entries})
	}
}

func listAudios(ctx context.Context, store *audiostore.Store) httprouter.Handle {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		entries, err := store.List(r.Context(), params.ByName("id"))
		var badName audiostore.InvalidName
		switch {
		case errors.As(err, &badName):
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", badName.Error())
			return
		case err != nil:
			log.Error().Err(err).Str("book", params.ByName("id")).Msg("unable to list audios")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to list audios")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, entries)
	}
}

func serveFile(ctx context.Context, store *audiostore.Store) httprouter.Handle {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		buf, etag, err := store.Open(r.Context(), params.ByName("id"), params.ByName("file"))
		var notFound audiostore.AssetNotFound
		switch {
		case errors.As(err, &notFound):
			httputil.WriteError(w, http.StatusNotFound, "asset_not_found", notFound.Error())
			return
		case err != nil:
			log.Error().Err(err).Str("book", params.ByName("id")).Str("file", params.ByName("file")).Msg("unable to serve file")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to serve file")
			return
		}
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		if mt := mime.TypeByExtension(filepath.Ext(params.ByName("file"))); mt != "" {
			w.Header().Set("Content-Type", mt)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
		w.WriteHeader(http.StatusOK)
		w.Write(buf)
	}
}
