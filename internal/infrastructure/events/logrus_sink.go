package events

import (
	interfaces "seller-service/internal/interfaces/infrastructure"
	"seller-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogrusSink emits business events as structured log records for downstream
// analytics and audit. Emission is fire-and-forget.
type LogrusSink struct{}

func NewLogrusSink() *LogrusSink {
	return &LogrusSink{}
}

func (s *LogrusSink) Emit(event string, payload map[string]interface{}, actorID *uuid.UUID) {
	fields := logrus.Fields{
		"business_event": event,
	}
	for key, value := range payload {
		fields[key] = value
	}
	if actorID != nil {
		fields["actor_id"] = actorID.String()
	}

	logger.WithFields(fields).Info("Business event emitted")
}

var _ interfaces.EventSink = (*LogrusSink)(nil)
