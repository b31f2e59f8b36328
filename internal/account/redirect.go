package account

import (
	"net/url"
	"strings"
)

// RedirectPolicy decides which frontend origins may receive reset links.
type RedirectPolicy struct {
	origins map[string]struct{}
}

// NewRedirectPolicy builds a policy from origins such as
// "https://app.example.com". An empty list allows any http(s) URL.
func NewRedirectPolicy(origins []string) RedirectPolicy {
	p := RedirectPolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		p.origins[strings.ToLower(o)] = struct{}{}
	}
	return p
}

// Allowed reports whether raw is an absolute http(s) URL on an allowed origin.
// Fragments are refused since the reset link appends path segments.
func (p RedirectPolicy) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.User != nil || strings.Contains(raw, "#") {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	if len(p.origins) == 0 {
		return true
	}
	_, ok := p.origins[scheme+"://"+strings.ToLower(u.Host)]
	return ok
}
