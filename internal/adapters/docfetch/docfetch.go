// Package docfetch downloads remote documents into uniquely named local files
package docfetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/services/api/fax/domain"

	"github.com/ledongthuc/pdf"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 25 << 20
	filePattern     = "autofax-*.pdf"
	userAgent       = "autofax-docfetch"
)

// ErrTooLarge marks a document over the configured byte cap
var ErrTooLarge = errors.New("document exceeds size limit")

// Options configures the Fetcher
type Options struct {
	// Timeout bounds the whole download, ignored when Client is set
	Timeout time.Duration
	// MaxBytes caps the body size, zero uses the default
	MaxBytes int64
	// Dir holds the temp files, empty means os.TempDir
	Dir string
	// Client overrides the http client
	Client *http.Client
}

// Fetcher implements domain.Fetcher over plain HTTP(S) GET
type Fetcher struct {
	http     *http.Client
	maxBytes int64
	dir      string
	log      logger.Logger
}

// New creates a Fetcher with defaults applied
func New(o Options) *Fetcher {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}
	return &Fetcher{
		http:     client,
		maxBytes: o.MaxBytes,
		dir:      o.Dir,
		log:      *logger.Named("docfetch"),
	}
}

// Fetch downloads url into a fresh temp file. Any file created is removed before an error is returned
func (f *Fetcher) Fetch(ctx context.Context, url string) (domain.TransientDocument, error) {
	file, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "document fetch failed: bad url")
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "document fetch failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, perr.Upstreamf("document fetch failed: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.dir, filePattern)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "create temp document")
	}
	path := tmp.Name()

	n, err := copyCapped(tmp, resp.Body, f.maxBytes)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			f.log.Warn().Err(rerr).Str("file", path).Msg("could not remove partial document")
		}
		if errors.Is(err, ErrTooLarge) {
			return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "document fetch failed: over %d bytes", f.maxBytes)
		}
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "document fetch failed: read body")
	}

	pages := countPages(path, n)
	f.log.Debug().
		Str("file", filepath.Base(path)).
		Int64("bytes", n).
		Int("pages", pages).
		Dur("latency", time.Since(start)).
		Msg("document stored")
	return &File{path: path, size: n, pages: pages}, nil
}

// countPages is best effort, the gateway is the judge of what it can send
// so anything the pdf reader cannot open counts as zero pages
func countPages(path string, size int64) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	fh, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = fh.Close() }()

	r, err := pdf.NewReader(fh, size)
	if err != nil {
		return 0
	}
	return r.NumPage()
}

// copyCapped copies at most limit bytes and reports ErrTooLarge when src has more
func copyCapped(dst io.Writer, src io.Reader, limit int64) (int64, error) {
	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return n, err
	}
	if n > limit {
		return n, ErrTooLarge
	}
	return n, nil
}

// File is a downloaded document on local disk, owned by a single dispatch
type File struct {
	path  string
	size  int64
	pages int

	once   sync.Once
	relErr error
}

// Path is the absolute local path
func (f *File) Path() string { return f.path }

// Size is the number of bytes written
func (f *File) Size() int64 { return f.size }

// Pages is the page count read from the pdf, zero when it could not be parsed
func (f *File) Pages() int { return f.pages }

// Name is the base file name
func (f *File) Name() string { return filepath.Base(f.path) }

// Bytes reads the whole file
func (f *File) Bytes() ([]byte, error) { return os.ReadFile(f.path) }

// Release removes the file once. A file that is already gone is not an error
func (f *File) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.relErr = err
		}
	})
	return f.relErr
}
