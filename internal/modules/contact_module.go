package modules

import (
	"github.com/gofiber/fiber/v2"

	authDelivery "github.com/iots1/contacts-api/internal/auth/delivery"
	"github.com/iots1/contacts-api/internal/contact/adapters"
	"github.com/iots1/contacts-api/internal/contact/delivery"
	"github.com/iots1/contacts-api/internal/contact/usecase"
	"github.com/iots1/contacts-api/internal/shared/infrastructure"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// SetupContactModule wires the contact feature and registers the /contacts
// routes. Every route requires authentication.
func SetupContactModule(
	router fiber.Router,
	deps infrastructure.AppDependencies,
	authMiddleware *authDelivery.AuthMiddleware,
) {
	utils.Logger.Info("========== Setup Contact Module ==========")

	repo := adapters.NewPostgresContactRepository(deps.DB)
	utils.Logger.Debug("Contact module: Contact repository initialized.")

	contactUsecase := usecase.NewContactUsecase(repo, deps.LowPub)
	utils.Logger.Debug("Contact module: Contact use case initialized.")

	contactInMemorySubscribers := delivery.NewContactInmemoryEventSubscribers(deps.InMemPubSub)
	contactInMemorySubscribers.StartAllSubscribers(deps.AppCtx)
	utils.Logger.Debug("Contact module: Contact in-memory event subscribers started.")

	contactHandler := delivery.NewContactHandler(contactUsecase)
	setupContactRoutes(router, contactHandler, authMiddleware)

	utils.Logger.Info("========== Contact module setup complete. ==========")
}

func setupContactRoutes(router fiber.Router, contactHandler *delivery.ContactHandler, authMiddleware *authDelivery.AuthMiddleware) {
	contacts := router.Group("/contacts", authMiddleware.RequireAuth())

	contacts.Post("/", contactHandler.CreateContact)
	contacts.Get("/", contactHandler.ListContacts)
	// Registered before /:id so "birthdays" is not parsed as a contact ID.
	contacts.Get("/birthdays/upcoming", contactHandler.UpcomingBirthdays)
	contacts.Get("/:id", contactHandler.GetContact)
	contacts.Patch("/:id", contactHandler.UpdateContact)
	contacts.Delete("/:id", contactHandler.DeleteContact)
}
