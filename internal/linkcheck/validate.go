// Package linkcheck classifies resource URLs: static policy validation and
// bounded-time reachability probing.
package linkcheck

import (
	"net/url"
	"strings"
)

// Status is the outcome of a URL check.
type Status string

// Check outcomes. Validate never returns StatusUnknown; Verify never returns
// StatusInvalid from the network path.
const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusUnknown Status = "unknown"
)

// Result pairs a check outcome with a human-readable reason.
type Result struct {
	Status Status
	Reason string
}

// shortenerDomains are link-shortener hosts we refuse outright. Shortened
// links hide their destination, so they can never be grounded against a
// search result.
var shortenerDomains = []string{
	"bit.ly",
	"t.co",
	"tinyurl.com",
	"goo.gl",
	"ow.ly",
	"is.gd",
	"buff.ly",
	"cutt.ly",
	"short.link",
	"rb.gy",
	"tiny.cc",
	"rebrand.ly",
	"shorturl.at",
	"t.ly",
}

// Validate classifies a candidate URL by scheme and shortener policy. It is a
// pure function: no I/O, deterministic.
func Validate(raw string) Result {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return Result{Status: StatusInvalid, Reason: "Invalid URL"}
	}

	if parsed.Scheme != "https" {
		return Result{Status: StatusInvalid, Reason: "URL must use https"}
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	for _, domain := range shortenerDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return Result{Status: StatusInvalid, Reason: "URL shorteners are not allowed"}
		}
	}

	return Result{Status: StatusValid}
}
