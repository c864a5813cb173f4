package linkcheck

import (
	"context"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Probe timeouts. These bounds are the only wait limits in the pipeline's
// reachability pass.
const (
	headTimeout = 5000 * time.Millisecond
	getTimeout  = 4000 * time.Millisecond
)

// UserAgent identifies our probes to origin servers.
const UserAgent = "CareerLockinBot/1.0 (+https://careerlockin.com/bot)"

const cacheSize = 1024

// Verifier performs bounded-time reachability probes. The HTTP client is
// injected so tests can substitute one, and conclusive probe outcomes are
// memoized per URL: roadmaps repeat canonical documentation URLs often.
type Verifier struct {
	client *http.Client
	cache  *lru.Cache[string, Result]
}

// NewVerifier creates a Verifier using the given HTTP client. Pass nil to use
// http.DefaultClient. Per-request timeouts come from context deadlines, so the
// client's own Timeout is left untouched.
func NewVerifier(client *http.Client) *Verifier {
	if client == nil {
		client = http.DefaultClient
	}
	cache, err := lru.New[string, Result](cacheSize)
	if err != nil {
		// lru.New only fails on non-positive size.
		panic(err)
	}
	return &Verifier{client: client, cache: cache}
}

// Verify classifies a URL's reachability as valid or unknown. Static
// validation runs first and its invalid result propagates unchanged; after
// that the network can only answer valid or unknown. A flaky network or an
// anti-bot block must never get a resource dropped, so no network outcome
// maps to invalid.
func (v *Verifier) Verify(ctx context.Context, raw string) Result {
	if res := Validate(raw); res.Status == StatusInvalid {
		return res
	}

	if cached, ok := v.cache.Get(raw); ok {
		return cached
	}

	res := v.probe(ctx, raw)
	// Only valid outcomes are conclusive. An unknown may be a transient
	// outage or a cancelled context; memoizing it would pin the URL at
	// unknown for the process lifetime.
	if res.Status == StatusValid {
		v.cache.Add(raw, res)
	}
	return res
}

func (v *Verifier) probe(ctx context.Context, raw string) Result {
	headCtx, cancel := context.WithTimeout(ctx, headTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, http.MethodHead, raw, nil)
	if err != nil {
		return Result{Status: StatusUnknown, Reason: "could not build probe request"}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{Status: StatusUnknown, Reason: "network error during HEAD probe"}
	}
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Result{Status: StatusValid}
	case resp.StatusCode == http.StatusMethodNotAllowed:
		// Common for servers that reject HEAD but serve GET fine.
		return Result{Status: StatusValid}
	case resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		// Hostile to automated probing or transient failure; not proof of
		// brokenness.
		return Result{Status: StatusUnknown, Reason: "server refused probe"}
	default:
		return v.probeRangedGet(ctx, raw)
	}
}

// probeRangedGet is the fallback for HEAD responses that look like genuine
// client errors: a single one-byte ranged GET.
func (v *Verifier) probeRangedGet(ctx context.Context, raw string) Result {
	getCtx, cancel := context.WithTimeout(ctx, getTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(getCtx, http.MethodGet, raw, nil)
	if err != nil {
		return Result{Status: StatusUnknown, Reason: "could not build probe request"}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Range", "bytes=0-0")

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{Status: StatusUnknown, Reason: "network error during GET probe"}
	}
	_ = resp.Body.Close()

	if (resp.StatusCode >= 200 && resp.StatusCode < 300) || resp.StatusCode == http.StatusPartialContent {
		return Result{Status: StatusValid}
	}
	return Result{Status: StatusUnknown, Reason: "GET probe was not conclusive"}
}
