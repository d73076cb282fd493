package network

import (
	"context"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/httpclient"
)

// API paths of the network service.
const (
	devicesPath     = "/network/devices"
	connectionsPath = "/network/connections"
	applyPath       = "/network/system/apply"
)

// Client talks to the network part of the management service.
type Client struct {
	api *httpclient.Client
}

// NewClient creates a network client on top of the base HTTP client.
func NewClient(api *httpclient.Client) *Client {
	return &Client{api: api}
}

// Devices returns the network devices known to the service.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	return httpclient.Get[[]Device](ctx, c.api, devicesPath)
}

// Connections returns all configured network connections.
func (c *Client) Connections(ctx context.Context) ([]Connection, error) {
	return httpclient.Get[[]Connection](ctx, c.api, connectionsPath)
}

// Connection returns the connection with the given id.
func (c *Client) Connection(ctx context.Context, id string) (Connection, error) {
	return httpclient.Get[Connection](ctx, c.api, connectionsPath+"/"+id)
}

// AddOrUpdateConnection creates or updates a connection keyed by its ID.
// It probes the item path first: an existing connection is replaced in
// place, a missing one is created against the collection. The remote state
// may change between the probe and the write; that window is accepted
// behavior, not corrected. Any probe failure other than not-found aborts
// the operation with no write issued.
func (c *Client) AddOrUpdateConnection(ctx context.Context, conn Connection) error {
	path := connectionsPath + "/" + conn.ID

	_, err := httpclient.Get[Connection](ctx, c.api, path)
	switch {
	case err == nil:
		return c.api.Put(ctx, path, conn)
	case errors.IsNotFound(err):
		return c.api.Post(ctx, connectionsPath, conn)
	default:
		return err
	}
}

// Apply tells the service to apply the configured network state. The action
// carries no meaningful response body.
func (c *Client) Apply(ctx context.Context) error {
	return c.api.Put(ctx, applyPath, nil)
}
