package handlers

import (
	"github.com/codelancer/api/internal/eventbus"
	"go.uber.org/zap"
)

// publishEvent sends an event without failing the request
func publishEvent(p eventbus.Publisher, logger *zap.Logger, subject string, data interface{}) {
	if err := p.Publish(subject, data); err != nil {
		logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
