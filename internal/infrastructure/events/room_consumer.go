package events

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/contracts"
	"github.com/hilthontt/rendezvous/internal/infrastructure/logging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type roomConsumer struct {
	rabbitmq  *messaging.RabbitMQ
	auditRepo domain.RoomAuditRepository
	logger    logging.Logger
}

func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, auditRepo domain.RoomAuditRepository, logger logging.Logger) *roomConsumer {
	return &roomConsumer{
		rabbitmq:  rabbitmq,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Listen drains the room events queue and turns each event into an audit-log
// entry. Without an audit repository the consumer only logs, which keeps the
// queue drained when Mongo is not configured.
func (c *roomConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.RoomEventsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			c.logger.Errorf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			c.logger.Errorf("Failed to unmarshal room event: %v", err)
			return err
		}

		c.logger.Debug(logging.RabbitMQ, logging.RoomLifecycle, "room event received", map[logging.ExtraKey]any{
			logging.RoomCode: payload.RoomCode,
			"eventType":      string(payload.EventType),
		})

		if c.auditRepo == nil {
			return nil
		}

		entry := domain.NewRoomAuditLog(payload.RoomCode, payload.EventType, payload.Timestamp, map[string]any{
			"answered": payload.Answered,
		})

		if err := c.auditRepo.Log(ctx, entry); err != nil {
			c.logger.Errorf("Failed to write audit log for room %s: %v", payload.RoomCode, err)
			return err
		}

		return nil
	})
}
