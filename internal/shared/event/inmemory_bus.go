package event

import (
	"sync"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/utils"
)

// Subscriber channels are buffered; a slow consumer drops events rather
// than blocking the publisher.
const subscriberBuffer = 10

// InMemPubSub is a process-local topic bus for low-importance events.
// Events are fire-and-forget: nothing is persisted and a full subscriber
// channel loses the event.
type InMemPubSub struct {
	mu          sync.RWMutex
	subscribers map[Topic][]chan interface{}
}

func NewInMemoryBus() *InMemPubSub {
	return &InMemPubSub{
		subscribers: make(map[Topic][]chan interface{}),
	}
}

// PublishEvent delivers payload to every subscriber of topic.
func (p *InMemPubSub) PublishEvent(topic Topic, payload interface{}) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	utils.Logger.Debug("In-Memory Bus: Publishing event", zap.String("topic", string(topic)))

	for _, ch := range p.subscribers[topic] {
		select {
		case ch <- payload:
		default:
			utils.Logger.Warn("In-Memory Bus: Subscriber channel is full, dropping event",
				zap.String("topic", string(topic)))
		}
	}
}

// SubscribeEvent registers a new subscriber channel for topic.
func (p *InMemPubSub) SubscribeEvent(topic Topic) chan interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan interface{}, subscriberBuffer)
	p.subscribers[topic] = append(p.subscribers[topic], ch)
	utils.Logger.Info("In-Memory Bus: Subscribed to topic",
		zap.String("topic", string(topic)),
		zap.Int("total_subscribers", len(p.subscribers[topic])))
	return ch
}

// UnsubscribeEvent removes and closes a subscriber channel.
func (p *InMemPubSub) UnsubscribeEvent(topic Topic, ch chan interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			p.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			close(ch)
			utils.Logger.Info("In-Memory Bus: Unsubscribed from topic",
				zap.String("topic", string(topic)),
				zap.Int("remaining_subscribers", len(p.subscribers[topic])))
			return
		}
	}
}
