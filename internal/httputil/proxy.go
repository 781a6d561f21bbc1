// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP clients used by the fetch stage.
package httputil

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// DefaultTimeout is used when HTTPConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ProxyPool rotates through a fixed list of proxies, one per request.
type ProxyPool struct {
	mu   sync.Mutex
	urls []*url.URL
	next int
}

// NewProxyPool parses proxy URLs. Entries without a scheme are treated as
// http proxies; blank entries are skipped.
func NewProxyPool(raw []string) (*ProxyPool, error) {
	p := &ProxyPool{}
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.Contains(s, "://") {
			s = "http://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy %q: %w", s, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("proxy %q has no host", s)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("proxy %q: unsupported scheme %q", s, u.Scheme)
		}
		p.urls = append(p.urls, u)
	}
	return p, nil
}

// Len returns the number of proxies in the pool.
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.urls)
}

// Proxy returns the next proxy in rotation. It has the signature of
// http.Transport.Proxy; an empty pool means a direct connection.
func (p *ProxyPool) Proxy(*http.Request) (*url.URL, error) {
	if p.Len() == 0 {
		return nil, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.urls[p.next%len(p.urls)]
	p.next++
	return u, nil
}

// NewClient returns an HTTP client with the configured timeout. When pool is
// non-empty every request goes through the next proxy in the pool.
func NewClient(cfg types.HTTPConfig, pool *ProxyPool) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if pool.Len() > 0 {
		transport.Proxy = pool.Proxy
		// A fresh connection per request so rotation is not defeated by
		// keep-alive reuse of the previous proxy.
		transport.DisableKeepAlives = true
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
