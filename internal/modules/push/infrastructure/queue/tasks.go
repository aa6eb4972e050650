package queue

import (
	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

const (
	// TaskTypeDeliver is the asynq task type for one push delivery.
	TaskTypeDeliver = "push:deliver"

	// QueuePush is the asynq queue push deliveries run on.
	QueuePush = "push"
)

// DeliverTaskPayload is the serialized body of a push:deliver task.
type DeliverTaskPayload struct {
	RecipientID uuid.UUID      `json:"recipient_id"`
	Payload     domain.Payload `json:"payload"`
}
