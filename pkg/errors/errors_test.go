package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/installd/switchboard/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestTransportError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.TransportError{
			Op:  "GET",
			URL: "http://localhost:9090/api/network/devices",
			Err: base,
		}
		assert.Contains(t, err.Error(), "transport failure")
		assert.Contains(t, err.Error(), "connection refused")
		assert.True(t, errors.Is(err, pkgerrors.ErrServiceUnreachable))
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewTransportError("PUT", "http://nohost/api", errors.New("no such host"))
		assert.True(t, pkgerrors.IsServiceUnreachable(err))
	})

	t.Run("not a protocol failure", func(t *testing.T) {
		err := pkgerrors.NewTransportError("GET", "http://nohost/api", errors.New("timeout"))
		assert.False(t, pkgerrors.IsNotFound(err))
	})
}

func TestProtocolError(t *testing.T) {
	t.Run("not found mapping", func(t *testing.T) {
		err := &pkgerrors.ProtocolError{
			StatusCode: 404,
			Endpoint:   "/network/connections/eth0",
		}
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("gone maps to not found", func(t *testing.T) {
		err := pkgerrors.NewProtocolError(410, "/network/connections/eth0", "")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("other statuses do not map to not found", func(t *testing.T) {
		for _, status := range []int{400, 403, 409, 500, 503} {
			err := pkgerrors.NewProtocolError(status, "/manager/probe", "boom")
			assert.False(t, pkgerrors.IsNotFound(err), "status %d", status)
		}
	})

	t.Run("message includes status and body", func(t *testing.T) {
		err := pkgerrors.NewProtocolError(422, "/network/connections", `{"error":"bad ip"}`)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "bad ip")
	})

	t.Run("as target", func(t *testing.T) {
		var protoErr *pkgerrors.ProtocolError
		wrapped := fmt.Errorf("fetch: %w", pkgerrors.NewProtocolError(404, "/x", ""))
		require.True(t, errors.As(wrapped, &protoErr))
		assert.Equal(t, 404, protoErr.StatusCode)
	})
}

func TestDecodeError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.NewDecodeError("/network/devices", `{"trunc`, base)
	assert.Contains(t, err.Error(), "unexpected response shape")
	assert.Equal(t, base, errors.Unwrap(err))
	assert.False(t, pkgerrors.IsNotFound(err))
	assert.False(t, pkgerrors.IsServiceUnreachable(err))
}

func TestLagError(t *testing.T) {
	err := &pkgerrors.LagError{Missed: 7}
	assert.Equal(t, "subscriber lagged, missed 7 events", err.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrSubscriberLagged))
	assert.True(t, pkgerrors.IsLagged(err))
	assert.False(t, pkgerrors.IsHubClosed(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "locale",
			Message: "not a valid language tag",
		}
		assert.Equal(t, "validation failed for field locale: not a valid language tag", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid profile"}
		assert.Equal(t, "validation failed: invalid profile", err.Error())
	})
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "body", nil))
		assert.NoError(t, pkgerrors.WrapParse("json", "response", nil))
		assert.NoError(t, pkgerrors.WrapResource("create", "request", "", nil))
	})

	t.Run("wrapping preserves the cause", func(t *testing.T) {
		base := pkgerrors.NewProtocolError(404, "/x", "")
		wrapped := pkgerrors.WrapResource("fetch", "connection", "eth0", base)
		assert.Contains(t, wrapped.Error(), "eth0")
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}
