//go:build integration

// Package testutil starts the MongoDB testcontainers used by integration
// tests. A package either shares one container through RunWithMongoDB in
// its TestMain or starts a private one per test with StartMongoDB.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is started when MONGO_TEST_IMAGE is unset.
const DefaultMongoImage = "mongo:7.0"

const startTimeout = 2 * time.Minute

var shared struct {
	mu  sync.RWMutex
	uri string
}

func image() string {
	if v := os.Getenv("MONGO_TEST_IMAGE"); v != "" {
		return v
	}
	return DefaultMongoImage
}

func start(ctx context.Context) (*mongodb.MongoDBContainer, string, error) {
	ctx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	c, err := mongodb.Run(ctx, image())
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, "", fmt.Errorf("start mongodb container: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, "", fmt.Errorf("mongodb connection string: %w", err)
	}
	return c, uri, nil
}

// RunWithMongoDB starts one container for the package, runs its tests and
// terminates it. Use it as os.Exit(testutil.RunWithMongoDB(m)).
func RunWithMongoDB(m *testing.M) int {
	c, uri, err := start(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			fmt.Fprintf(os.Stderr, "terminate mongodb container: %v\n", err)
		}
	}()

	shared.mu.Lock()
	shared.uri = uri
	shared.mu.Unlock()

	return m.Run()
}

// MongoURI returns the URI of the package container.
func MongoURI(t testing.TB) string {
	t.Helper()
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	if shared.uri == "" {
		t.Fatal("no shared mongodb container; call RunWithMongoDB from TestMain")
	}
	return shared.uri
}

// StartMongoDB starts a container owned by t and returns its URI.
func StartMongoDB(t testing.TB) string {
	t.Helper()
	c, uri, err := start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testcontainers.CleanupContainer(t, c)
	return uri
}

// DatabaseName derives a database name unique to t. MongoDB limits names
// to 63 bytes and forbids /\. "$*<>:|?
func DatabaseName(t testing.TB) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\. "$*<>:|?`, r) {
			return '_'
		}
		return r
	}, t.Name())
	if len(name) > 50 {
		name = name[:50]
	}
	return name + "_" + uuid.NewString()[:8]
}
