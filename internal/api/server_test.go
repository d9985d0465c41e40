package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/pkg/config"
	"github.com/wonny/fundwise/pkg/logger"
)

func TestServer_RunAndShutdown(t *testing.T) {
	log := logger.Nop()
	cfg := &config.Config{Port: "0", Env: "development"}
	server := New(cfg, log, NewRouter(Handlers{}, nil, log))

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, ready) }()

	var addr string
	select {
	case addr = <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewLimiter(t *testing.T) {
	limiter := NewLimiter(&config.Config{API: config.APIConfig{RateLimit: 5, RateBurst: 2}})
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}
