package genimage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adforgehq/adforge/pkg/cache"
)

func noBackoff(int) time.Duration { return 0 }

// newFalServer serves the generation endpoint and a download endpoint.
// failures controls how many generation calls return 500 before success.
func newFalServer(t *testing.T, failures int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	mux := http.NewServeMux()

	var srv *httptest.Server
	mux.HandleFunc("/test-model", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		n := calls.Add(1)
		if r.Header.Get("Authorization") != "Key test-key" {
			t.Errorf("bad auth header: %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing request ID header")
		}
		var body falRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if body.NumInferenceSteps != 28 || body.GuidanceScale != 3.5 || body.NumImages != 1 || !body.EnableSafetyChecker {
			t.Errorf("unexpected generation parameters: %+v", body)
		}
		if int(n) <= failures {
			http.Error(w, "upstream busy", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"images":[{"url":%q}]}`, srv.URL+"/result.png")
	})
	mux.HandleFunc("/result.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte("png-bytes"))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testClient(srv *httptest.Server, c cache.Cache) *Client {
	return NewClient(ClientConfig{
		APIKey:     "test-key",
		Model:      "test-model",
		BaseURL:    srv.URL,
		MaxRetries: 3,
		Backoff:    noBackoff,
		Cache:      c,
	})
}

func TestGenerateImageSuccess(t *testing.T) {
	srv, calls := newFalServer(t, 0)
	c := testClient(srv, nil)

	data, err := c.GenerateImage(context.Background(), "a prompt", 1080, 1080)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestGenerateImageRetriesServerErrors(t *testing.T) {
	srv, calls := newFalServer(t, 2)
	c := testClient(srv, nil)

	data, err := c.GenerateImage(context.Background(), "a prompt", 1080, 1080)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestGenerateImageExhaustsRetries(t *testing.T) {
	srv, calls := newFalServer(t, 10)
	c := testClient(srv, nil)

	if _, err := c.GenerateImage(context.Background(), "a prompt", 1080, 1080); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestGenerateImageMissingURLRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"images":[]}`)
	}))
	defer srv.Close()

	c := testClient(srv, nil)
	if _, err := c.GenerateImage(context.Background(), "a prompt", 1080, 1080); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 3 {
		t.Fatalf("a URL-less response counts as a failed attempt, want 3 attempts, got %d", calls.Load())
	}
}

func TestGenerateImageUsesCache(t *testing.T) {
	srv, calls := newFalServer(t, 0)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := testClient(srv, fc)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		data, err := c.GenerateImage(ctx, "a prompt", 1080, 1080)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "png-bytes" {
			t.Fatalf("unexpected payload: %q", data)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("second call should hit the cache, got %d backend calls", calls.Load())
	}
}

func TestHasCredentials(t *testing.T) {
	if NewClient(ClientConfig{Model: "m"}).HasCredentials() {
		t.Error("no key should mean no credentials")
	}
	if !NewClient(ClientConfig{APIKey: "k", Model: "m"}).HasCredentials() {
		t.Error("key present should mean credentials")
	}
}
