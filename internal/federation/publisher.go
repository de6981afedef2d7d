// Package federation emits retraction events for destroyed photos so
// remote pods can withdraw their copies. The wire-level federation
// protocol itself lives outside this service; publishing the event is
// where our responsibility ends.
package federation

import (
	"context"
	"log/slog"

	"prism/internal/domain/models"
)

// RetractionPublisher is notified exactly once per successful destroy.
// The publish must be confirmed before the destroy is reported complete;
// redelivery and retries are the consumer's concern.
type RetractionPublisher interface {
	PublishRetraction(ctx context.Context, retraction *models.Retraction) error
}

// LogPublisher records retractions to the log only. Used when no Redis is
// configured, e.g. single-pod deployments and tests.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that only logs retractions
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// PublishRetraction logs the retraction and confirms immediately
func (p *LogPublisher) PublishRetraction(_ context.Context, retraction *models.Retraction) error {
	p.logger.Info("retraction emitted (no federation transport configured)",
		"photo_id", retraction.PhotoID,
		"owner_id", retraction.OwnerID,
	)
	return nil
}
