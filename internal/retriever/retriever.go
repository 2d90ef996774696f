package retriever

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"wordbubble/internal/keywords"
)

const (
	// DefaultBaseURL resolves retrieval keys to English Wikipedia articles.
	DefaultBaseURL   = "https://en.wikipedia.org/wiki/"
	defaultUserAgent = "wordbubble/1.0"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 8 << 20
)

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected response status")
	// ErrNotText is returned when the response is not an HTML or text document.
	ErrNotText = errors.New("response is not a text document")
)

// invisible elements whose text is dropped before extraction.
const invisibleSelector = "script, style, noscript, template"

// HTTP fetches pages by appending the path-escaped key to a base URL and
// extracts their visible text.
type HTTP struct {
	client    *http.Client
	baseURL   string
	userAgent string
	maxBody   int64
}

var _ keywords.Retriever = (*HTTP)(nil)

// Config holds the HTTP retriever settings; zero values select defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewHTTP wires an HTTP client; a nil client gets one with cfg.Timeout.
func NewHTTP(client *http.Client, cfg Config) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &HTTP{client: client, baseURL: cfg.BaseURL, userAgent: cfg.UserAgent, maxBody: maxBodyBytes}
}

// BaseURL returns the URL keys are resolved against.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// URL returns the page URL for a retrieval key.
func (h *HTTP) URL(key string) string {
	return h.baseURL + url.PathEscape(key)
}

// Fetch downloads the page for key and returns its visible text.
func (h *HTTP) Fetch(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(key), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	header := resp.Header.Get("Content-Type")
	mediaType, err := contentType(header)
	if err != nil {
		return "", err
	}

	limited := &io.LimitedReader{R: resp.Body, N: h.maxBody}
	body, err := charset.NewReader(limited, header)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}
	defer func() {
		if limited.N <= 0 {
			slog.Debug("document truncated at size limit", "key", key, "limit_bytes", h.maxBody)
		}
	}()

	if mediaType == "text/plain" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(raw), nil
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	return VisibleText(doc), nil
}

// VisibleText returns the concatenated text nodes of doc with scripts,
// styles and templates removed.
func VisibleText(doc *goquery.Document) string {
	doc.Find(invisibleSelector).Remove()
	return doc.Text()
}

// contentType returns the media type of a response. An absent header is
// treated as HTML.
func contentType(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "text/html", nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotText, err)
	}
	switch {
	case mediaType == "text/plain":
		return mediaType, nil
	case mediaType == "application/xhtml+xml", strings.HasPrefix(mediaType, "text/"):
		return "text/html", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNotText, mediaType)
	}
}
