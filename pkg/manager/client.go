// Package manager provides the client for the management service's manager
// API, currently the probe action that triggers hardware and repository
// detection on the remote side.
package manager

import (
	"context"

	"github.com/installd/switchboard/pkg/httpclient"
)

// API paths of the manager service.
const (
	probePath     = "/manager/probe"
	probeSyncPath = "/manager/probe_sync"
)

// SyncMode values recognized by Probe.
const (
	// SyncModeSynchronous selects the synchronous probe endpoint.
	SyncModeSynchronous = "1"
)

// Client talks to the manager part of the management service.
type Client struct {
	api      *httpclient.Client
	syncMode func() string
}

// Option configures a Client.
type Option func(*Client)

// WithSyncMode injects the source of the probe sync-mode flag. The source
// is consulted on every Probe call, never cached, so operational tooling
// can flip the flag between calls. The conventional adapter reads the
// PROBE_SYNC configuration value.
func WithSyncMode(source func() string) Option {
	return func(c *Client) {
		if source != nil {
			c.syncMode = source
		}
	}
}

// NewClient creates a manager client on top of the base HTTP client.
// Without a sync-mode source the probe action is a no-op.
func NewClient(api *httpclient.Client, opts ...Option) *Client {
	c := &Client{
		api:      api,
		syncMode: func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Probe triggers probing on the management service. The sync-mode flag is
// resolved at call time and selects the behavior: an empty value skips the
// remote call entirely and reports success, SyncModeSynchronous invokes the
// synchronous endpoint, and any other value invokes the default endpoint.
// The action posts an empty payload and discards the response body.
func (c *Client) Probe(ctx context.Context) error {
	switch c.syncMode() {
	case "":
		return nil
	case SyncModeSynchronous:
		return c.api.Post(ctx, probeSyncPath, nil)
	default:
		return c.api.Post(ctx, probePath, nil)
	}
}
