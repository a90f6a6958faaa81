package testutil

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

const (
	startupTimeout   = 2 * time.Minute
	terminateTimeout = 30 * time.Second
)

// startContainer runs req and returns host:port for the exposed port, plus a
// terminate func that is also registered with t.Cleanup. Calling it twice is safe.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start %s", req.Image)

	var terminated bool
	terminate := func() {
		if terminated {
			return
		}
		terminated = true
		tctx, tcancel := context.WithTimeout(context.Background(), terminateTimeout)
		defer tcancel()
		if err := c.Terminate(tctx); err != nil {
			t.Logf("terminate %s: %v", req.Image, err)
		}
	}
	t.Cleanup(terminate)

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)

	return net.JoinHostPort(host, mapped.Port()), terminate
}

// retry calls fn until it succeeds or the deadline passes; the port of a fresh
// container opens before the server inside accepts clients.
func retry(t *testing.T, what string, within time.Duration, fn func() error) {
	t.Helper()

	deadline := time.Now().Add(within)
	for {
		err := fn()
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%s: %v", what, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
