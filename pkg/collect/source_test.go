package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticSource(t *testing.T) {
	source := NewStaticSource("fixture", "https://example.com/page", "<html><body>hi</body></html>")

	if source.Name() != "fixture" {
		t.Errorf("unexpected name: %q", source.Name())
	}

	page, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.URL != "https://example.com/page" {
		t.Errorf("unexpected URL: %q", page.URL)
	}
	if page.HTML != "<html><body>hi</body></html>" {
		t.Errorf("unexpected HTML: %q", page.HTML)
	}
	if page.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestStaticSource_CancelledContext(t *testing.T) {
	source := NewStaticSource("fixture", "https://example.com", "<html></html>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := source.Fetch(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<html><body>served</body></html>"))
	}))
	defer server.Close()

	source := NewHTTPSource("live", server.URL)

	page, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.HTML != "<html><body>served</body></html>" {
		t.Errorf("unexpected HTML: %q", page.HTML)
	}
	if page.URL != server.URL {
		t.Errorf("unexpected URL: %q", page.URL)
	}
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	source := NewHTTPSource("live", server.URL)

	if _, err := source.Fetch(context.Background()); err == nil {
		t.Error("expected error for non-200 status")
	}
}
