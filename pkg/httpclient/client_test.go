package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, "<rss/>")
	}))
	defer srv.Close()

	c := NewRestyClient(2 * time.Second)
	resp, err := c.Get(context.Background(), srv.URL, BrowserHeaders())
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, "<rss/>", string(resp.Body()))
	assert.Contains(t, resp.Header("Content-Type"), "rss")
}

func TestRestyClientReturnsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRestyClient(2 * time.Second)
	resp, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err, "non-200 is a response, not a transport error")
	assert.Equal(t, 404, resp.StatusCode())
}

func TestRestyClientFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "landed")
	}))
	defer target.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer hop.Close()

	c := NewRestyClient(2 * time.Second)
	resp, err := c.Get(context.Background(), hop.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "landed", string(resp.Body()))
}

func TestIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewRestyClient(20 * time.Millisecond)
	_, err := c.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	assert.False(t, IsTimeout(nil))
	assert.False(t, IsTimeout(fmt.Errorf("plain error")))
}

func TestRandomUserAgentFromPool(t *testing.T) {
	pool := make(map[string]struct{}, len(userAgents))
	for _, ua := range userAgents {
		pool[ua] = struct{}{}
	}

	for range 20 {
		_, ok := pool[RandomUserAgent()]
		assert.True(t, ok)
	}
}

func TestBrowserHeaders(t *testing.T) {
	h := BrowserHeaders()

	assert.NotEmpty(t, h["User-Agent"])
	assert.Contains(t, h["Accept"], "text/html")
	assert.NotEmpty(t, h["Accept-Language"])
}
