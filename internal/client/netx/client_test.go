package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func TestClient_Do_AddsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ping", time.Second, staticTokens{token: "abc"})
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/CheckList/MC", nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer abc", gotAuth)

	// no token source, no header
	c = NewClient(srv.URL, "ping", time.Second, nil)
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/CheckList/MC", nil)
	resp, err = c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, gotAuth)
}

func TestClient_Do_ExpiredTokenNotSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ping", time.Second, staticTokens{err: common.ErrTokenExpired})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	_, err := c.Do(req)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.False(t, called)
}

func TestClient_Ping(t *testing.T) {
	var alive atomic.Bool
	alive.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Heartbeat/IsAlive" {
			http.NotFound(w, r)
			return
		}
		if !alive.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))

	c := NewClient(srv.URL+"/api/", "/Heartbeat/IsAlive", time.Second, nil)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	alive.Store(false)
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)

	srv.Close()
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)
}
