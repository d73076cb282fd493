package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/installd/switchboard/pkg/events"
	"github.com/installd/switchboard/pkg/logging"
	"github.com/installd/switchboard/pkg/network"
)

// Applier drives the management service to match a profile.
type Applier struct {
	network *network.Client
	hub     *events.Hub
	logger  *zerolog.Logger
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithHub attaches a broadcast hub; applied state changes are announced on
// it as ProductChanged and LocaleChanged events.
func WithHub(hub *events.Hub) ApplierOption {
	return func(a *Applier) {
		a.hub = hub
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) ApplierOption {
	return func(a *Applier) {
		a.logger = logger
	}
}

// NewApplier creates an applier on top of the network client.
func NewApplier(netClient *network.Client, opts ...ApplierOption) *Applier {
	a := &Applier{
		network: netClient,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply validates the profile, upserts every declared connection, applies
// the network state, and announces the product and locale selections. The
// first failing step aborts the run and its error propagates unmodified.
func (a *Applier) Apply(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	for _, conn := range p.Connections {
		a.logger.Info().Str("connection", conn.ID).Msg("Upserting connection")
		if err := a.network.AddOrUpdateConnection(ctx, conn); err != nil {
			return err
		}
	}

	if len(p.Connections) > 0 {
		if err := a.network.Apply(ctx); err != nil {
			return err
		}
	}

	if a.hub != nil {
		a.hub.Publish(events.ProductChanged{ID: p.Product})
		if p.Locale != "" {
			a.hub.Publish(events.LocaleChanged{Locale: p.Locale})
		}
	}

	a.logger.Info().
		Str("product", p.Product).
		Int("connections", len(p.Connections)).
		Msg("Profile applied")

	return nil
}
