package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// UserInmemoryEventSubscribers handles in-memory events relevant to the
// user feature. These are low-importance notifications; losing one on
// shutdown is acceptable.
type UserInmemoryEventSubscribers struct {
	inMemoryBus *event.InMemPubSub
}

func NewUserInmemoryEventSubscribers(bus *event.InMemPubSub) *UserInmemoryEventSubscribers {
	return &UserInmemoryEventSubscribers{inMemoryBus: bus}
}

// StartAllSubscribers kicks off all in-memory event listeners for this feature.
func (s *UserInmemoryEventSubscribers) StartAllSubscribers(ctx context.Context) {
	go s.listenToUserRegisteredEvents(ctx)
	go s.listenToUserVerifiedEvents(ctx)
}

func (s *UserInmemoryEventSubscribers) listenToUserRegisteredEvents(ctx context.Context) {
	ch := s.inMemoryBus.SubscribeEvent(event.UserRegisteredInMemoryEvent)
	utils.Logger.Debug("User subscriber: listening for user.registered.inmemory events")

	for {
		select {
		case eventData := <-ch:
			payload, ok := eventData.(event.UserRegisteredPayload)
			if !ok {
				utils.Logger.Warn("User subscriber: unexpected payload for user.registered.inmemory",
					zap.Any("data", eventData))
				continue
			}
			utils.Logger.Info("User registered",
				zap.Int64("user_id", payload.UserID), zap.String("email", payload.Email))
		case <-ctx.Done():
			utils.Logger.Debug("User subscriber: user.registered.inmemory listener stopped")
			return
		}
	}
}

func (s *UserInmemoryEventSubscribers) listenToUserVerifiedEvents(ctx context.Context) {
	ch := s.inMemoryBus.SubscribeEvent(event.UserVerifiedInMemoryEvent)
	utils.Logger.Debug("User subscriber: listening for user.verified.inmemory events")

	for {
		select {
		case eventData := <-ch:
			payload, ok := eventData.(event.UserVerifiedPayload)
			if !ok {
				utils.Logger.Warn("User subscriber: unexpected payload for user.verified.inmemory",
					zap.Any("data", eventData))
				continue
			}
			utils.Logger.Info("User verified",
				zap.Int64("user_id", payload.UserID), zap.String("email", payload.Email))
		case <-ctx.Done():
			utils.Logger.Debug("User subscriber: user.verified.inmemory listener stopped")
			return
		}
	}
}
