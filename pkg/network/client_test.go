package network_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/httpclient"
	"github.com/installd/switchboard/pkg/network"
)

// fakeService records every request the client issues, serving a small
// in-memory connection collection.
type fakeService struct {
	mu          sync.Mutex
	connections map[string]network.Connection
	gets        []string
	posts       []string
	puts        []string
	probeStatus int // non-zero forces this status on item GETs
}

func newFakeService() *fakeService {
	return &fakeService{connections: make(map[string]network.Connection)}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/network/devices", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_ = json.NewEncoder(w).Encode([]network.Device{
			{Name: "eth0", Type: "ethernet", State: "up"},
			{Name: "wlan0", Type: "wireless", State: "down"},
		})
	})

	mux.HandleFunc("/network/system/apply", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/network/connections", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			all := make([]network.Connection, 0, len(f.connections))
			for _, conn := range f.connections {
				all = append(all, conn)
			}
			_ = json.NewEncoder(w).Encode(all)
		case http.MethodPost:
			var conn network.Connection
			_ = json.NewDecoder(r.Body).Decode(&conn)
			f.connections[conn.ID] = conn
			w.WriteHeader(http.StatusCreated)
		}
	})

	mux.HandleFunc("/network/connections/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		id := strings.TrimPrefix(r.URL.Path, "/network/connections/")
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if f.probeStatus != 0 {
				http.Error(w, "probe failed", f.probeStatus)
				return
			}
			conn, ok := f.connections[id]
			if !ok {
				http.Error(w, `{"error":"connection not found"}`, http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(conn)
		case http.MethodPut:
			var conn network.Connection
			_ = json.NewDecoder(r.Body).Decode(&conn)
			f.connections[id] = conn
			w.WriteHeader(http.StatusNoContent)
		}
	})

	return mux
}

func (f *fakeService) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		f.gets = append(f.gets, r.URL.Path)
	case http.MethodPost:
		f.posts = append(f.posts, r.URL.Path)
	case http.MethodPut:
		f.puts = append(f.puts, r.URL.Path)
	}
}

func newTestClient(t *testing.T) (*network.Client, *fakeService) {
	t.Helper()
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return network.NewClient(httpclient.New(srv.URL)), svc
}

func TestDevices(t *testing.T) {
	client, _ := newTestClient(t)

	devices, err := client.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "eth0", devices[0].Name)
	assert.Equal(t, "wireless", devices[1].Type)
}

func TestConnectionNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Connection(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	var protoErr *errors.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusNotFound, protoErr.StatusCode)
}

func TestUpsertCreatesUnknownConnection(t *testing.T) {
	client, svc := newTestClient(t)

	conn := network.Connection{ID: "wlan0", Interface: "wlan0", Method4: "auto"}
	require.NoError(t, client.AddOrUpdateConnection(context.Background(), conn))

	assert.Equal(t, []string{"/network/connections"}, svc.posts)
	assert.Empty(t, svc.puts)
	assert.Equal(t, conn, svc.connections["wlan0"])
}

func TestUpsertReplacesKnownConnection(t *testing.T) {
	client, svc := newTestClient(t)
	svc.connections["eth0"] = network.Connection{ID: "eth0", Method4: "auto"}

	updated := network.Connection{ID: "eth0", Method4: "manual", Addresses: []string{"192.168.1.5/24"}}
	require.NoError(t, client.AddOrUpdateConnection(context.Background(), updated))

	assert.Equal(t, []string{"/network/connections/eth0"}, svc.puts)
	assert.Empty(t, svc.posts)
	assert.Equal(t, updated, svc.connections["eth0"])
}

func TestUpsertPropagatesProbeFailureWithoutWriting(t *testing.T) {
	client, svc := newTestClient(t)
	svc.probeStatus = http.StatusInternalServerError

	err := client.AddOrUpdateConnection(context.Background(), network.Connection{ID: "eth0"})
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
	assert.Empty(t, svc.posts, "no create may be issued after a failed probe")
	assert.Empty(t, svc.puts, "no replace may be issued after a failed probe")
}

func TestUpsertThenFetchRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	want := network.Connection{
		ID:        "wlan0",
		Interface: "wlan0",
		Wireless:  &network.Wireless{SSID: "lab", Security: "wpa-psk"},
	}
	require.NoError(t, client.AddOrUpdateConnection(ctx, want))

	got, err := client.Connection(ctx, "wlan0")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApply(t *testing.T) {
	client, svc := newTestClient(t)

	require.NoError(t, client.Apply(context.Background()))
	assert.Equal(t, []string{"/network/system/apply"}, svc.puts)
}
