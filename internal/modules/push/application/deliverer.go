package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

var (
	pushDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_deliveries_total",
		Help: "Pushes accepted by the provider.",
	})
	pushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_failures_total",
		Help: "Pushes the provider rejected, including invalid tokens.",
	})
	tokensPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_tokens_pruned_total",
		Help: "Device tokens removed after the provider reported them invalid.",
	})
)

// Deliverer resolves a recipient's device tokens, pushes to all of
// them, and prunes the registrations the provider reports as
// permanently dead.
type Deliverer struct {
	tokens   domain.DeviceTokenRepository
	provider domain.Provider
	logger   *slog.Logger
}

// NewDeliverer creates a Deliverer. provider may be nil when push is
// not configured; deliveries then become no-ops.
func NewDeliverer(tokens domain.DeviceTokenRepository, provider domain.Provider, logger *slog.Logger) *Deliverer {
	return &Deliverer{tokens: tokens, provider: provider, logger: logger}
}

func (d *Deliverer) Deliver(ctx context.Context, recipientID uuid.UUID, payload domain.Payload) error {
	if d.provider == nil {
		return nil
	}

	registrations, err := d.tokens.ListByOwner(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(registrations) == 0 {
		return nil
	}

	tokens := make([]string, len(registrations))
	for i, reg := range registrations {
		tokens[i] = reg.Token
	}

	results, err := d.provider.Send(ctx, tokens, payload)
	if err != nil {
		// The whole batch failed; this says nothing about individual
		// tokens, so none may be pruned. Returning the error lets the
		// queue retry the delivery.
		d.logger.Error("push batch failed", "recipient_id", recipientID, "tokens", len(tokens), "error", err)
		return err
	}

	for _, res := range results {
		switch {
		case res.Invalid:
			pushFailed.Inc()
			if err := d.tokens.Delete(ctx, res.Token); err != nil {
				d.logger.Error("failed to prune invalid device token", "error", err)
				continue
			}
			tokensPruned.Inc()
			d.logger.Info("pruned invalid device token", "recipient_id", recipientID)
		case res.Err != nil:
			// Transient per-token failure; keep the registration.
			pushFailed.Inc()
			d.logger.Warn("push to device failed", "recipient_id", recipientID, "error", res.Err)
		default:
			pushDelivered.Inc()
		}
	}
	return nil
}
