package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iots1/contacts-api/internal/contact/domain"
	"github.com/iots1/contacts-api/internal/contact/usecase"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// TestMain mirrors the validator bootstrap done in cmd/app/main.go so the
// handlers under test can reach the global validator.
func TestMain(m *testing.M) {
	utils.SetGlobalValidator(validator.New())
	os.Exit(m.Run())
}

// memoryContactRepository backs the handler tests without Postgres.
type memoryContactRepository struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[int64]*domain.Contact
}

func newMemoryContactRepository() *memoryContactRepository {
	return &memoryContactRepository{nextID: 1, contacts: make(map[int64]*domain.Contact)}
}

func (r *memoryContactRepository) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *contact
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.contacts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryContactRepository) FindByID(_ context.Context, ownerID, id int64) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrContactNotFound
	}
	out := *c
	return &out, nil
}

func (r *memoryContactRepository) List(_ context.Context, _ int64, _ domain.ListFilter) ([]*domain.Contact, error) {
	return nil, nil
}

func (r *memoryContactRepository) Update(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[contact.ID]
	if !ok || c.OwnerID != contact.OwnerID {
		return nil, domain.ErrContactNotFound
	}
	updated := *contact
	updated.UpdatedAt = time.Now()
	r.contacts[contact.ID] = &updated
	out := updated
	return &out, nil
}

func (r *memoryContactRepository) Delete(_ context.Context, _, _ int64) error {
	return domain.ErrContactNotFound
}

func (r *memoryContactRepository) UpcomingBirthdays(_ context.Context, _ int64, _ time.Time, _ int) ([]*domain.Contact, error) {
	return nil, nil
}

// newHandlerApp mounts the contact routes the way the module does, with a
// stub in place of the auth middleware.
func newHandlerApp() (*fiber.App, *memoryContactRepository) {
	repo := newMemoryContactRepository()
	lowPub := event.NewLowImportancePublisher(event.NewInMemoryBus())
	handler := NewContactHandler(usecase.NewContactUsecase(repo, lowPub))

	app := fiber.New()
	contacts := app.Group("/contacts", func(c *fiber.Ctx) error {
		c.Locals("userID", int64(1))
		return c.Next()
	})
	contacts.Post("/", handler.CreateContact)
	contacts.Patch("/:id", handler.UpdateContact)
	return app, repo
}

func patchContact(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("PATCH", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestPatchContactPartialBody(t *testing.T) {
	app, repo := newHandlerApp()

	birthDate := time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(context.Background(), &domain.Contact{
		OwnerID:   1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		BirthDate: &birthDate,
	})
	require.NoError(t, err)

	// A body carrying only a phone number is a valid partial update.
	status, parsed := patchContact(t, app, "/contacts/1", `{"phone":"555-0101"}`)
	require.Equal(t, fiber.StatusOK, status)

	data, ok := parsed["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "555-0101", data["phone"])
	assert.Equal(t, created.FirstName, data["first_name"])
	assert.Equal(t, created.Email, data["email"])
	assert.Equal(t, "1990-04-15", data["birth_date"])
}

func TestPatchContactInvalidFieldStillRejected(t *testing.T) {
	app, repo := newHandlerApp()

	_, err := repo.Create(context.Background(), &domain.Contact{
		OwnerID:   1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)

	status, _ := patchContact(t, app, "/contacts/1", `{"email":"not-an-email"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateContactWithoutOptionalFields(t *testing.T) {
	app, _ := newHandlerApp()

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com"}`
	req := httptest.NewRequest("POST", "/contacts/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
