package urlutil

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// Normalize resolves link relative to base into an absolute URL with the
// fragment stripped. It returns false for non-http(s) schemes and for any
// input that fails to parse. No further canonicalization is applied: dedup
// downstream is byte-equality on the normalized form, so case and trailing
// slashes are deliberately left alone.
func Normalize(base, link string) (string, bool) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	linkURL, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	resolved := baseURL.ResolveReference(linkURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

// SameOrigin reports whether two URLs share scheme, host and port. Path and
// query are irrelevant. Unparseable input is never same-origin.
func SameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Scheme == ub.Scheme && ua.Host == ub.Host
}

// HashURL creates a SHA256 hash of a URL string. Used for consistent, safe
// cache keys in Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}
