// Package verify performs opt-in liveness checks on citation URLs after a
// result has been produced. It issues HEAD requests only and never pulls
// page content into the pipeline.
package verify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/veridex/veridex/internal/model"
)

const checkMaxRetries = 3

// sleepFunc is the sleep used between retries (injectable for tests)
var sleepFunc = time.Sleep

// Result is the outcome of checking one citation URL
type Result struct {
	URI           string `json:"uri"`
	Accessible    bool   `json:"accessible"`
	StatusCode    int    `json:"status_code,omitempty"`
	RobotsBlocked bool   `json:"robots_blocked,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Checker validates citation URLs concurrently with per-domain rate limits
// and robots.txt compliance
type Checker struct {
	httpClient *http.Client
	robots     *RobotsChecker
	workers    int
	userAgent  string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perSec   rate.Limit
	burst    int
}

// NewChecker creates a checker from configuration
func NewChecker(cfg model.VerifyConfig) *Checker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 4
	}
	perSec := cfg.RatePerSecond
	if perSec <= 0 {
		perSec = 2
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Checker{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    NewRobotsChecker(cfg.UserAgent, timeout),
		workers:   workers,
		userAgent: cfg.UserAgent,
		limiters:  make(map[string]*rate.Limiter),
		perSec:    rate.Limit(perSec),
		burst:     burst,
	}
}

// Check validates all URIs concurrently, preserving input order in the
// result slice
func (c *Checker) Check(ctx context.Context, uris []string) []Result {
	results := make([]Result, len(uris))
	if len(uris) == 0 {
		return results
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.workers)

	for i, uri := range uris {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = Result{URI: u, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkWithRetry(ctx, u)
		}(i, uri)
	}

	wg.Wait()
	return results
}

// checkOne performs a single HEAD check
func (c *Checker) checkOne(ctx context.Context, rawURL string) Result {
	result := Result{URI: rawURL}

	if allowed := c.robots.IsAllowed(ctx, rawURL); !allowed {
		result.RobotsBlocked = true
		return result
	}

	if err := c.wait(ctx, rawURL); err != nil {
		result.Error = fmt.Sprintf("rate limit: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Accessible = true
	}
	if resp.Request.URL.String() != rawURL {
		result.RedirectURL = resp.Request.URL.String()
	}

	return result
}

// checkWithRetry retries transient failures with exponential backoff
func (c *Checker) checkWithRetry(ctx context.Context, rawURL string) Result {
	var result Result
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		result = c.checkOne(ctx, rawURL)
		if !isRetryable(result) {
			return result
		}
		if attempt < checkMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return result
}

// isRetryable reports transient failures worth a second attempt
func isRetryable(result Result) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == 429 {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

// wait blocks until the per-domain rate limiter clears the request
func (c *Checker) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return c.limiter(parsed.Host).Wait(ctx)
}

// limiter returns the rate limiter for a domain, creating it on first use
func (c *Checker) limiter(domain string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.limiters[domain]; ok {
		return l
	}
	l := rate.NewLimiter(c.perSec, c.burst)
	c.limiters[domain] = l
	return l
}
