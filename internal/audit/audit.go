package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/socialpost/internal/observability/logger"
)

// Eventos de auditoría del ciclo de vida de records y handshakes.
// Nunca incluyen material de tokens (ni plaintext ni ciphertext).
const (
	EventHandshakeStarted   = "social.handshake.started"
	EventHandshakeCompleted = "social.handshake.completed"
	EventHandshakeFailed    = "social.handshake.failed"
	EventRecordCreated      = "social.record.created"
	EventRecordTokenUpdated = "social.record.token_updated"
	EventRecordDeleted      = "social.record.deleted"
)

// Log escribe un evento de auditoría estructurado. En el futuro esto puede
// conectarse a una DB o a un sink externo.
func Log(ctx context.Context, event string, fields map[string]any) {
	zfields := []zap.Field{
		logger.String("audit_event", event),
		logger.String("ts", time.Now().UTC().Format(time.RFC3339Nano)),
	}
	for k, v := range fields {
		zfields = append(zfields, logger.Any(k, v))
	}
	logger.From(ctx).Info("audit", zfields...)
}
