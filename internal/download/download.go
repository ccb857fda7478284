// Package download provides the file acquirers behind an import: a
// direct HTTP fetch into memory, and a server-side download delegated to
// the catalog's downloader plugin.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vmunix/stashgrab/internal/importer"
)

const (
	defaultMaxSize = 512 << 20 // 512 MiB
	defaultTimeout = 5 * time.Minute

	// Browser-like headers defeat the common hotlink checks; the Referer
	// is set to the media URL's own origin.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Direct fetches media over HTTP into memory. Implements
// importer.Acquirer for sources reachable from this process.
type Direct struct {
	client  *http.Client
	maxSize int64
	log     *slog.Logger
}

// NewDirect creates a direct HTTP acquirer. A nil client gets a
// five-minute-timeout default.
func NewDirect(client *http.Client, log *slog.Logger) *Direct {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Direct{client: client, maxSize: defaultMaxSize, log: log.With("component", "download")}
}

// Acquire fetches the primary URL, falling back to the secondary when
// the primary fails.
func (d *Direct) Acquire(ctx context.Context, req importer.AcquireRequest) (*importer.AcquireResult, error) {
	data, err := d.fetch(ctx, req.URL, req.OnProgress)
	if err != nil && req.FallbackURL != "" {
		d.log.Warn("primary fetch failed, trying fallback",
			"url", req.URL, "fallback", req.FallbackURL, "error", err)
		data, err = d.fetch(ctx, req.FallbackURL, req.OnProgress)
	}
	if err != nil {
		return nil, err
	}
	return &importer.AcquireResult{Data: data}, nil
}

func (d *Direct) fetch(ctx context.Context, rawURL string, onProgress importer.ProgressFunc) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "*/*")
	if origin := originOf(rawURL); origin != "" {
		httpReq.Header.Set("Referer", origin+"/")
		httpReq.Header.Set("Origin", origin)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrDownloadFailed, resp.StatusCode, rawURL)
	}
	if resp.ContentLength > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	var buf bytes.Buffer
	reader := &progressReader{
		r:     io.LimitReader(resp.Body, d.maxSize+1),
		total: resp.ContentLength,
		on:    onProgress,
	}
	n, err := buf.ReadFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrDownloadFailed, err)
	}
	if n > d.maxSize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, d.maxSize)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty response from %s", ErrDownloadFailed, rawURL)
	}

	d.log.Debug("fetched media", "url", rawURL, "bytes", n)
	if onProgress != nil {
		onProgress(1.0)
	}
	return buf.Bytes(), nil
}

func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// progressReader reports download progress as a 0..1 fraction when the
// total size is known.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	on    importer.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.on != nil && p.total > 0 && n > 0 {
		fraction := float64(p.read) / float64(p.total)
		if fraction > 1 {
			fraction = 1
		}
		p.on(fraction)
	}
	return n, err
}
