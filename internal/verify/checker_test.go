package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/veridex/veridex/internal/model"
)

func testConfig() model.VerifyConfig {
	return model.VerifyConfig{
		Workers:       4,
		RatePerSecond: 100,
		Burst:         100,
		Timeout:       5 * time.Second,
		UserAgent:     "veridex-test/1.0",
	}
}

// noSleep disables retry backoff for the duration of a test
func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func TestCheck_AccessibleAndMissing(t *testing.T) {
	noSleep(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.WriteHeader(http.StatusNotFound)
		case "/ok":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewChecker(testConfig())
	results := c.Check(context.Background(), []string{srv.URL + "/ok", srv.URL + "/gone"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Accessible || results[0].StatusCode != http.StatusOK {
		t.Errorf("expected /ok to be accessible, got %+v", results[0])
	}
	if results[1].Accessible || results[1].StatusCode != http.StatusNotFound {
		t.Errorf("expected /gone to be inaccessible with 404, got %+v", results[1])
	}
}

func TestCheck_PreservesInputOrder(t *testing.T) {
	noSleep(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	uris := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}
	results := NewChecker(testConfig()).Check(context.Background(), uris)

	for i, r := range results {
		if r.URI != uris[i] {
			t.Errorf("result %d out of order: got %s, want %s", i, r.URI, uris[i])
		}
	}
}

func TestCheck_RobotsDisallowed(t *testing.T) {
	noSleep(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker(testConfig())
	results := c.Check(context.Background(), []string{srv.URL + "/private/doc", srv.URL + "/public"})

	if !results[0].RobotsBlocked {
		t.Errorf("expected /private/doc to be robots-blocked, got %+v", results[0])
	}
	if results[0].Accessible {
		t.Errorf("robots-blocked URL must not be marked accessible")
	}
	if !results[1].Accessible {
		t.Errorf("expected /public to be accessible, got %+v", results[1])
	}
}

func TestCheck_RetriesServerErrors(t *testing.T) {
	noSleep(t)

	var heads int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		heads++
		if heads < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	results := NewChecker(testConfig()).Check(context.Background(), []string{srv.URL + "/flaky"})

	if !results[0].Accessible {
		t.Errorf("expected success after retries, got %+v", results[0])
	}
	if heads != 3 {
		t.Errorf("expected 3 attempts, got %d", heads)
	}
}

func TestCheck_RedirectReported(t *testing.T) {
	noSleep(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.WriteHeader(http.StatusNotFound)
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	results := NewChecker(testConfig()).Check(context.Background(), []string{srv.URL + "/old"})

	if !results[0].Accessible {
		t.Errorf("redirect target is accessible, got %+v", results[0])
	}
	if results[0].RedirectURL != srv.URL+"/new" {
		t.Errorf("expected redirect target to be reported, got %q", results[0].RedirectURL)
	}
}

func TestCheck_EmptyInput(t *testing.T) {
	results := NewChecker(testConfig()).Check(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestCheck_UnreachableHost(t *testing.T) {
	noSleep(t)

	results := NewChecker(testConfig()).Check(context.Background(), []string{"http://127.0.0.1:1/x"})
	if results[0].Accessible {
		t.Errorf("unreachable host must not be accessible")
	}
	if results[0].Error == "" {
		t.Errorf("expected an error message for an unreachable host")
	}
}

func TestRobots_FetchFailureAllows(t *testing.T) {
	r := NewRobotsChecker("veridex-test/1.0", 500*time.Millisecond)
	if !r.IsAllowed(context.Background(), "http://127.0.0.1:1/x") {
		t.Errorf("unreachable robots.txt must allow the probe")
	}
}
