package testutil

import (
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

type TestEnv struct {
	ServerURL string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{ServerURL: os.Getenv("TEST_SERVER_URL")}
}

// Setup returns a client for the running service and skips the test when no
// server is configured.
func (e *TestEnv) Setup(t *testing.T) *Client {
	t.Helper()

	if e.ServerURL == "" {
		t.Skip("TEST_SERVER_URL not set")
	}
	client := NewClient(e.ServerURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)
	return client
}
