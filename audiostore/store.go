package audiostore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

type (
	// File is one incoming upload: the name the client gave it plus its
	// content.
	File struct {
		Name    string
		Content io.Reader
	}

	// Entry is a stored audio file exposed through a retrievable URL.
	Entry struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	// Store keeps uploaded files on disk, one directory per book id. A book's
	// storage area is created on first upload and is keyed purely by the id
	// string: the store never consults the catalog. Served bytes go through a
	// short-lived in-memory cache so repeated playback requests for the same
	// track skip the disk.
	Store struct {
		root      string
		cache     *bigcache.BigCache
		lastStamp int64
	}
)

const urlPrefix = "/uploads"

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("audiostore: unable to create uploads directory %v, cause %w", root, err)
	}
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	if err != nil {
		return nil, fmt.Errorf("audiostore: unable to create asset cache, cause %w", err)
	}
	return &Store{root: root, cache: cache}, nil
}

// SaveAll writes every file under the book's storage area, prefixing the
// original name with the current unix-millis so two uploads of the same file
// name do not collide. It returns one entry per file, named after the
// original file name.
func (s *Store) SaveAll(ctx context.Context, bookID string, files []File) ([]Entry, error) {
	if !safeSegment(bookID) {
		return nil, InvalidName{Name: bookID}
	}
	dir := filepath.Join(s.root, bookID)
	// creating an existing directory is a no-op, so concurrent first uploads
	// for the same book are safe
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("audiostore: unable to create storage area for book %v, cause %w", bookID, err)
	}
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f.Name)
		if !safeSegment(name) {
			return nil, InvalidName{Name: f.Name}
		}
		stored := fmt.Sprintf("%d-%s", s.nextStamp(), name)
		dst, err := os.Create(filepath.Join(dir, stored))
		if err != nil {
			return nil, fmt.Errorf("audiostore: unable to store %v for book %v, cause %w", name, bookID, err)
		}
		_, err = io.Copy(dst, f.Content)
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("audiostore: unable to write %v for book %v, cause %w", name, bookID, err)
		}
		entries = append(entries, Entry{Name: name, URL: path.Join(urlPrefix, bookID, stored)})
	}
	return entries, nil
}

// Save stores a single file and returns both the public entry and the name
// it was stored under.
func (s *Store) Save(ctx context.Context, bookID string, file File) (Entry, error) {
	entries, err := s.SaveAll(ctx, bookID, []File{file})
	if err != nil {
		return Entry{}, err
	}
	return entries[0], nil
}

// List returns every file under the book's storage area, named by the stored
// (prefixed) file name. A book with no storage area yields an empty list.
func (s *Store) List(ctx context.Context, bookID string) ([]Entry, error) {
	if !safeSegment(bookID) {
		return nil, InvalidName{Name: bookID}
	}
	files, err := os.ReadDir(filepath.Join(s.root, bookID))
	if os.IsNotExist(err) {
		return []Entry{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("audiostore: unable to list storage area for book %v, cause %w", bookID, err)
	}
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name: f.Name(),
			URL:  path.Join(urlPrefix, bookID, f.Name()),
		})
	}
	return entries, nil
}

// Open returns the raw bytes of a stored file plus an ETag derived from the
// content hash. Recently served files come from the cache instead of disk.
func (s *Store) Open(ctx context.Context, bookID, name string) ([]byte, string, error) {
	if !safeSegment(bookID) || !safeSegment(name) {
		return nil, "", AssetNotFound{BookID: bookID, Name: name}
	}
	key := bookID + "/" + name
	buf, err := s.cache.Get(key)
	if err != nil {
		buf, err = os.ReadFile(filepath.Join(s.root, bookID, name))
		if os.IsNotExist(err) {
			return nil, "", AssetNotFound{BookID: bookID, Name: name}
		} else if err != nil {
			return nil, "", fmt.Errorf("audiostore: unable to read %v of book %v, cause %w", name, bookID, err)
		}
		s.cache.Set(key, buf)
	}
	etag := `"` + strconv.FormatUint(xxhash.Sum64(buf), 16) + `"`
	return buf, etag, nil
}

// nextStamp returns the current unix-millis, bumped past the previous stamp
// so two files stored within the same millisecond still get distinct names.
func (s *Store) nextStamp() int64 {
	for {
		now := time.Now().UnixMilli()
		last := atomic.LoadInt64(&s.lastStamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&s.lastStamp, last, now) {
			return now
		}
	}
}

// safeSegment accepts only names that stay inside their directory when used
// as a single path element.
func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && s == filepath.Base(s)
}
