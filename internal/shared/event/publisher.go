package event

import (
	"context"
	"fmt"
)

// LowImportancePublisher implements the Publisher interface for in-memory events.
type LowImportancePublisher struct {
	inMemoryBus *InMemPubSub
}

// NewLowImportancePublisher creates a new LowImportancePublisher.
func NewLowImportancePublisher(bus *InMemPubSub) *LowImportancePublisher {
	return &LowImportancePublisher{inMemoryBus: bus}
}

// Publish sends a low-importance event to the in-memory bus.
func (p *LowImportancePublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	switch topic {
	case string(UserRegisteredInMemoryEvent):
		if _, ok := payload.(UserRegisteredPayload); !ok {
			return fmt.Errorf("invalid payload type for %s: %T", topic, payload)
		}
	case string(UserVerifiedInMemoryEvent):
		if _, ok := payload.(UserVerifiedPayload); !ok {
			return fmt.Errorf("invalid payload type for %s: %T", topic, payload)
		}
	case string(ContactCreatedInMemoryEvent):
		if _, ok := payload.(ContactCreatedPayload); !ok {
			return fmt.Errorf("invalid payload type for %s: %T", topic, payload)
		}
	default:
		return fmt.Errorf("unsupported in-memory event topic: %s", topic)
	}

	p.inMemoryBus.PublishEvent(Topic(topic), payload)
	return nil
}

// AsynqClient defines the interface for enqueuing tasks.
type AsynqClient interface {
	EnqueueTask(taskType string, payload interface{}) error
}

// HighImportancePublisher implements the Publisher interface for
// must-not-be-lost tasks using Asynq.
type HighImportancePublisher struct {
	asynqClient AsynqClient
}

// NewHighImportancePublisher creates a new HighImportancePublisher.
func NewHighImportancePublisher(client AsynqClient) *HighImportancePublisher {
	return &HighImportancePublisher{asynqClient: client}
}

// Publish enqueues a high-importance task using Asynq.
func (p *HighImportancePublisher) Publish(ctx context.Context, taskType string, payload interface{}) error {
	if err := p.asynqClient.EnqueueTask(taskType, payload); err != nil {
		return fmt.Errorf("failed to enqueue Asynq task %s: %w", taskType, err)
	}
	return nil
}
