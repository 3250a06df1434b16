package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/logger"
)

// LicenseEventType represents the type of license event
type LicenseEventType string

const (
	// LicenseEventExpiryWarning indicates a license is inside its warning window
	LicenseEventExpiryWarning LicenseEventType = "expiry_warning"
	// LicenseEventAccessBlockChanged indicates a parent block flag changed
	LicenseEventAccessBlockChanged LicenseEventType = "access_block_changed"
)

// LicenseEvent is the cross-instance notification payload. Consumers use it
// to refresh dashboards and push in-app toasts.
type LicenseEvent struct {
	Type            LicenseEventType `json:"type"`
	CompanyID       uint             `json:"company_id"`
	LicenseID       uint             `json:"license_id,omitempty"`
	DaysUntilExpiry int              `json:"days_until_expiry,omitempty"`
	Blocked         bool             `json:"blocked,omitempty"`
	Timestamp       int64            `json:"timestamp"`
}

// LicenseEventHandler is a callback function for handling license events
type LicenseEventHandler func(ctx context.Context, event LicenseEvent)

const licenseEventChannel = "atrium:license:events"

// RedisLicenseEventBus publishes and consumes license events over Redis
// Pub/Sub. Publishing is best-effort; callers treat failures as non-fatal.
type RedisLicenseEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisLicenseEventBus creates a new Redis-based license event bus
func NewRedisLicenseEventBus(client *redis.Client, logger logger.Interface) *RedisLicenseEventBus {
	return &RedisLicenseEventBus{
		client: client,
		logger: logger,
	}
}

// PublishExpiryWarning publishes a license expiry warning event
func (b *RedisLicenseEventBus) PublishExpiryWarning(ctx context.Context, lic *license.License, comp *company.Company, daysUntilExpiry int) error {
	return b.publish(ctx, LicenseEvent{
		Type:            LicenseEventExpiryWarning,
		CompanyID:       comp.ID(),
		LicenseID:       lic.ID(),
		DaysUntilExpiry: daysUntilExpiry,
		Timestamp:       time.Now().Unix(),
	})
}

// PublishAccessBlockChanged publishes a parent block change event
func (b *RedisLicenseEventBus) PublishAccessBlockChanged(ctx context.Context, comp *company.Company, blocked bool) error {
	return b.publish(ctx, LicenseEvent{
		Type:      LicenseEventAccessBlockChanged,
		CompanyID: comp.ID(),
		Blocked:   blocked,
		Timestamp: time.Now().Unix(),
	})
}

func (b *RedisLicenseEventBus) publish(ctx context.Context, event LicenseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, licenseEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish license event",
			"type", event.Type,
			"company_id", event.CompanyID,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("license event published",
		"type", event.Type,
		"company_id", event.CompanyID,
		"license_id", event.LicenseID,
	)
	return nil
}

// Subscribe subscribes to license events and calls the handler for each one
func (b *RedisLicenseEventBus) Subscribe(ctx context.Context, handler LicenseEventHandler) error {
	pubsub := b.client.Subscribe(ctx, licenseEventChannel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to license events", "channel", licenseEventChannel)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("license event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("license event channel closed")
				return nil
			}

			var event LicenseEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal license event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			// Handle in a background goroutine so a slow handler cannot
			// stall the event loop.
			go handler(context.Background(), event)
		}
	}
}
