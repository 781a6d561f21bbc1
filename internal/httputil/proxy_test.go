// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-page/pkg/types"
)

func TestNewProxyPool(t *testing.T) {
	pool, err := NewProxyPool([]string{"http://a.example:8080", " ", "b.example:3128", "socks5://user:pw@c.example:1080"})
	require.NoError(t, err)
	assert.Equal(t, 3, pool.Len())

	var hosts []string
	for i := 0; i < 4; i++ {
		u, err := pool.Proxy(nil)
		require.NoError(t, err)
		hosts = append(hosts, u.Host)
	}
	assert.Equal(t, []string{"a.example:8080", "b.example:3128", "c.example:1080", "a.example:8080"}, hosts)
}

func TestNewProxyPoolErrors(t *testing.T) {
	for _, raw := range []string{"ftp://x.example:21", "http://", "http://bad host:80"} {
		_, err := NewProxyPool([]string{raw})
		assert.Error(t, err, raw)
	}
}

func TestEmptyPoolIsDirect(t *testing.T) {
	var pool *ProxyPool
	u, err := pool.Proxy(nil)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, pool.Len())
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.HTTPConfig{}, nil)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	c = NewClient(types.HTTPConfig{Timeout: 5 * time.Second}, nil)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestNewClientRotatesThroughProxies(t *testing.T) {
	// Each fake proxy answers plain-HTTP proxy requests itself.
	var hitsA, hitsB int32
	proxyA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hitsA, 1)
		fmt.Fprint(w, "via a")
	}))
	defer proxyA.Close()
	proxyB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hitsB, 1)
		fmt.Fprint(w, "via b")
	}))
	defer proxyB.Close()

	pool, err := NewProxyPool([]string{proxyA.URL, proxyB.URL})
	require.NoError(t, err)
	client := NewClient(types.HTTPConfig{Timeout: 5 * time.Second}, pool)

	target, _ := url.Parse("http://scholar.invalid/citations")
	for i := 0; i < 4; i++ {
		resp, err := client.Get(target.String())
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hitsA))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hitsB))
}
