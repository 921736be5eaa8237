package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/contracts"
	"github.com/hilthontt/rendezvous/internal/infrastructure/messaging"
)

// RoomPublisher emits room lifecycle events on the room exchange. A nil
// publisher is valid and drops every event, so the AMQP wiring stays
// optional.
type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, roomCode string) error {
	return p.publish(ctx, contracts.EventRoomCreated, roomCode, domain.EventRoomCreated, false)
}

func (p *RoomPublisher) PublishAnswerReceived(ctx context.Context, roomCode string) error {
	return p.publish(ctx, contracts.EventAnswerReceived, roomCode, domain.EventAnswerReceived, true)
}

func (p *RoomPublisher) PublishAnswerConsumed(ctx context.Context, roomCode string) error {
	return p.publish(ctx, contracts.EventAnswerConsumed, roomCode, domain.EventAnswerConsumed, true)
}

func (p *RoomPublisher) PublishRoomExpired(ctx context.Context, roomCode string, answered bool) error {
	return p.publish(ctx, contracts.EventRoomExpired, roomCode, domain.EventRoomExpired, answered)
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey string, roomCode string, eventType domain.RoomEventType, answered bool) error {
	if p == nil || p.rabbitmq == nil {
		return nil
	}

	payload := messaging.RoomEventData{
		RoomCode:  roomCode,
		EventType: eventType,
		Answered:  answered,
		Timestamp: time.Now().UTC(),
	}

	roomEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	envelope, err := json.Marshal(contracts.AmqpMessage{
		RoomCode: roomCode,
		Data:     roomEventJSON,
	})
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, envelope)
}
