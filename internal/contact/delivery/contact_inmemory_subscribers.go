package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// ContactInmemoryEventSubscribers consumes in-memory events for the contact
// feature.
type ContactInmemoryEventSubscribers struct {
	inMemoryBus *event.InMemPubSub
}

func NewContactInmemoryEventSubscribers(bus *event.InMemPubSub) *ContactInmemoryEventSubscribers {
	return &ContactInmemoryEventSubscribers{inMemoryBus: bus}
}

func (s *ContactInmemoryEventSubscribers) StartAllSubscribers(ctx context.Context) {
	go s.listenToContactCreatedEvents(ctx)
}

func (s *ContactInmemoryEventSubscribers) listenToContactCreatedEvents(ctx context.Context) {
	ch := s.inMemoryBus.SubscribeEvent(event.ContactCreatedInMemoryEvent)
	utils.Logger.Debug("Contact subscriber: listening for contact.created.inmemory events")

	for {
		select {
		case eventData := <-ch:
			payload, ok := eventData.(event.ContactCreatedPayload)
			if !ok {
				utils.Logger.Warn("Contact subscriber: unexpected payload for contact.created.inmemory",
					zap.Any("data", eventData))
				continue
			}
			utils.Logger.Info("Contact created",
				zap.Int64("contact_id", payload.ContactID), zap.Int64("owner_id", payload.OwnerID))
		case <-ctx.Done():
			utils.Logger.Debug("Contact subscriber: contact.created.inmemory listener stopped")
			return
		}
	}
}
