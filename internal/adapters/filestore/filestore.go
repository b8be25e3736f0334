// Package filestore keeps uploaded documents in a local directory and serves them back over http
package filestore

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	phttp "autofax/internal/platform/net/http"
)

// Route is where stored files are served from
const Route = "/files"

// ErrBadKey marks a key that does not name a file
var ErrBadKey = errors.New("invalid file key")

// Options configures the Store
type Options struct {
	// Dir is the root directory, created when missing
	Dir string
	// PublicURL is the base clients reach this service at, stored urls hang off it
	PublicURL string
}

// Store writes files under a root directory and answers with the url they are served at
type Store struct {
	dir    string
	public string
	log    logger.Logger
}

// New creates the root directory and returns a Store over it
func New(o Options) (*Store, error) {
	if strings.TrimSpace(o.Dir) == "" {
		return nil, perr.Validationf("filestore: dir is required")
	}
	dir, err := filepath.Abs(o.Dir)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "filestore: resolve dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "filestore: create dir")
	}
	return &Store{
		dir:    dir,
		public: strings.TrimRight(o.PublicURL, "/"),
		log:    *logger.Named("filestore"),
	}, nil
}

// Dir returns the absolute root directory
func (s *Store) Dir() string { return s.dir }

// Put writes data under key and returns its public url
// the file appears atomically, readers never see a partial upload
func (s *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "filestore: create dir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "filestore: create temp file")
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		if rerr := os.Remove(tmp.Name()); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			s.log.Warn().Err(rerr).Str("file", tmp.Name()).Msg("could not remove partial upload")
		}
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "filestore: write %s", rel)
	}

	s.log.Debug().Str("key", rel).Int("bytes", len(data)).Msg("file stored")
	return s.URL(rel), nil
}

// URL is the public url of key, every segment path escaped
func (s *Store) URL(key string) string {
	segs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return s.public + Route + "/" + strings.Join(segs, "/")
}

// Mount serves stored files read only under Route, directory listings are refused
func (s *Store) Mount(r phttp.Router) {
	files := http.StripPrefix(Route, http.FileServer(http.Dir(s.dir)))
	r.Handle(Route+"/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		files.ServeHTTP(w, req)
	}))
}

// cleanKey roots key so it can never climb out of the store
func cleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(key)), "/")
	if k == "" || strings.HasSuffix(key, "/") {
		return "", ErrBadKey
	}
	return k, nil
}
