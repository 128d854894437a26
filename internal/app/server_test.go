//go:build !integration

package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/college-order-service/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "ok")
})

func TestNewServer_WriteTimeout(t *testing.T) {
	tests := []struct {
		name           string
		requestTimeout time.Duration
		want           time.Duration
	}{
		{name: "unset", want: baseWriteTimeout},
		{name: "short", requestTimeout: 5 * time.Second, want: baseWriteTimeout},
		{name: "long confirm window", requestTimeout: 30 * time.Second, want: 35 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, config.ServerConfig{Port: "8080", RequestTimeout: tt.requestTimeout})

			assert.Equal(t, ":8080", server.Addr())
			assert.Equal(t, tt.want, server.httpServer.WriteTimeout)
			assert.Equal(t, shutdownTimeout, server.shutdownTimeout)
		})
	}
}

func serveLocal(t *testing.T, ctx context.Context) (string, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(okHandler, config.ServerConfig{})
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()
	return "http://" + ln.Addr().String(), done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
		return nil
	}
}

func TestServer_ServeUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	url, done := serveLocal(t, ctx)

	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	assert.NoError(t, waitDone(t, done))

	_, err = http.Get(url)
	assert.Error(t, err)
}

func TestServer_ShutdownBeforeServe(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})
	assert.NoError(t, server.Shutdown())
}

func TestServer_RunStopsOnSignal(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})

	done := make(chan error, 1)
	go func() { done <- server.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	assert.NoError(t, waitDone(t, done))
}

func TestServer_RunListenError(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "invalid-port"})

	err := server.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen :invalid-port")
}
