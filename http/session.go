// Package http provides the HTTP-backed implementation of pdfgrab.Session
// for fetching pages and streaming document bodies over a shared cookie
// jar.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/fmaia/pdfgrab"
	"golang.org/x/net/publicsuffix"
)

// Identity headers sent on every request. Some origins reject requests
// lacking a recognized client signature.
var identityHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "pt-BR,pt;q=0.9,en;q=0.8",
}

// DefaultPageTimeout bounds page HTML fetches.
const DefaultPageTimeout = 15 * time.Second

// DefaultStreamTimeout bounds streaming document downloads. Document
// bodies may be large, so this is deliberately long.
const DefaultStreamTimeout = 120 * time.Second

// Ensure Session implements pdfgrab.Session at compile time.
var _ pdfgrab.Session = (*Session)(nil)

// Session retrieves pages and documents over a single cookie jar with
// fixed identity headers. It is not safe for concurrent mutation;
// retrieval is sequential by design.
type Session struct {
	client        *http.Client
	jar           *cookiejar.Jar
	pageTimeout   time.Duration
	streamTimeout time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithPageTimeout sets the timeout for page fetches.
// Defaults to DefaultPageTimeout.
func WithPageTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.pageTimeout = d
	}
}

// WithStreamTimeout sets the timeout for document streaming.
// Defaults to DefaultStreamTimeout.
func WithStreamTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.streamTimeout = d
	}
}

// NewSession creates a Session with an empty cookie jar.
func NewSession(opts ...Option) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	s := &Session{
		jar:           jar,
		pageTimeout:   DefaultPageTimeout,
		streamTimeout: DefaultStreamTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Jar: jar}
	return s, nil
}

// SetCookies merges records into the session's jar.
func (s *Session) SetCookies(records []pdfgrab.CookieRecord) {
	for _, rec := range records {
		host := rec.BrowserDomain()
		if host == "" {
			continue
		}
		u := &url.URL{Scheme: "https", Host: host, Path: "/"}
		s.jar.SetCookies(u, []*http.Cookie{{
			Name:   rec.Name,
			Value:  rec.Value,
			Path:   rec.Path,
			Secure: rec.Secure,
		}})
	}
}

// Fetch retrieves a page and returns its HTML. Non-2xx responses are
// errors.
func (s *Session) Fetch(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.pageTimeout)
	defer cancel()

	resp, err := s.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Stream opens a streaming GET for a document body. The returned reader
// must be closed by the caller; closing it releases the stream timeout.
func (s *Session) Stream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.streamTimeout)

	resp, err := s.get(ctx, rawURL)
	if err != nil {
		cancel()
		return nil, err
	}
	return &streamBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// get issues a GET with identity headers and reports non-2xx statuses as
// errors, uniformly with transport failures.
func (s *Session) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range identityHeaders {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp, nil
}

// streamBody ties the stream-timeout cancelation to the body's lifetime.
type streamBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *streamBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
