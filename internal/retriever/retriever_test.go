package retriever

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Go (programming language)</title>
  <style>.mw-body { color: red; }</style>
  <script>var tracker = "analytics";</script>
</head>
<body>
  <h1>Go</h1>
  <p>Go is a statically typed, compiled language.</p>
  <noscript>Enable JavaScript</noscript>
  <template><p>hidden template</p></template>
</body>
</html>`

func TestFetchExtractsVisibleText(t *testing.T) {
	t.Parallel()

	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/wiki/", UserAgent: "wordbubble-test"})

	text, err := h.Fetch(context.Background(), "Go_(programming_language)")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if gotPath != "/wiki/Go_%28programming_language%29" && gotPath != "/wiki/Go_(programming_language)" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotUA != "wordbubble-test" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "wordbubble-test")
	}

	for _, want := range []string{"Go (programming language)", "statically typed, compiled language."} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	for _, hidden := range []string{"analytics", "color: red", "Enable JavaScript", "hidden template"} {
		if strings.Contains(text, hidden) {
			t.Errorf("text contains invisible content %q", hidden)
		}
	}
}

func TestFetchPlainText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("<b>not markup</b>"))
	}))
	defer srv.Close()

	h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/"})
	text, err := h.Fetch(context.Background(), "plain")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if text != "<b>not markup</b>" {
		t.Errorf("text = %q, want raw body", text)
	}
}

func TestFetchDecodesCharset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        string
	}{
		{
			name:        "latin-1 plain text",
			contentType: "text/plain; charset=iso-8859-1",
			body:        []byte("caf\xe9 cr\xe8me"),
			want:        "café crème",
		},
		{
			name:        "windows-1252 html",
			contentType: "text/html; charset=windows-1252",
			body:        []byte("<p>na\xefve r\xe9sum\xe9</p>"),
			want:        "naïve résumé",
		},
		{
			name:        "utf-8 html",
			contentType: "text/html; charset=utf-8",
			body:        []byte("<p>naïve résumé</p>"),
			want:        "naïve résumé",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write(tt.body)
			}))
			defer srv.Close()

			h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/"})
			text, err := h.Fetch(context.Background(), "Topic")
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if text != tt.want {
				t.Errorf("text = %q, want %q", text, tt.want)
			}
		})
	}
}

func TestFetchEmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
	}))
	defer srv.Close()

	h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/"})
	text, err := h.Fetch(context.Background(), "empty")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestFetchTruncatesLargeBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/"})
	h.maxBody = 16

	text, err := h.Fetch(context.Background(), "big")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(text) != 16 {
		t.Errorf("len(text) = %d, want 16", len(text))
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		want        error
	}{
		{name: "not found", status: http.StatusNotFound, contentType: "text/html", want: ErrStatus},
		{name: "server error", status: http.StatusBadGateway, contentType: "text/html", want: ErrStatus},
		{name: "binary body", status: http.StatusOK, contentType: "image/png", want: ErrNotText},
		{name: "json body", status: http.StatusOK, contentType: "application/json", want: ErrNotText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("<p>body</p>"))
			}))
			defer srv.Close()

			h := NewHTTP(srv.Client(), Config{BaseURL: srv.URL + "/"})
			if _, err := h.Fetch(context.Background(), "Topic"); !errors.Is(err, tt.want) {
				t.Errorf("Fetch error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	h := NewHTTP(nil, Config{BaseURL: srv.URL + "/", Timeout: 50 * time.Millisecond})
	if _, err := h.Fetch(context.Background(), "slow"); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestFetchContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHTTP(nil, Config{BaseURL: "http://127.0.0.1:1/"})
	if _, err := h.Fetch(ctx, "anything"); err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	h := NewHTTP(nil, Config{})
	tests := []struct {
		key  string
		want string
	}{
		{"Go", DefaultBaseURL + "Go"},
		{"Machine_learning", DefaultBaseURL + "Machine_learning"},
		{"C/C++", DefaultBaseURL + "C%2FC++"},
		{"What?", DefaultBaseURL + "What%3F"},
	}
	for _, tt := range tests {
		if got := h.URL(tt.key); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestVisibleText(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div>keep<script>drop()</script> this</div>`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if got := VisibleText(doc); got != "keep this" {
		t.Errorf("VisibleText = %q, want %q", got, "keep this")
	}
}
