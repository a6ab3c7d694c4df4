package webhook

import (
	"context"

	"AsmiDesk/entity"
)

// Core is the router surface the webhook handler needs.
type Core interface {
	HandleInboundEvent(ctx context.Context, raw []byte) entity.WebhookResult
}
