package delivery

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iots1/contacts-api/internal/auth/adapters"
	"github.com/iots1/contacts-api/internal/shared/cache"
	"github.com/iots1/contacts-api/internal/shared/event"
	userDomain "github.com/iots1/contacts-api/internal/user/domain"
	userUsecase "github.com/iots1/contacts-api/internal/user/usecase"
)

// singleUserRepository serves exactly one user; everything else is not found.
type singleUserRepository struct {
	user *userDomain.User
}

func (r *singleUserRepository) Create(_ context.Context, _ *userDomain.User) (*userDomain.User, error) {
	return nil, userDomain.ErrUserAlreadyExists
}

func (r *singleUserRepository) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	if r.user != nil && r.user.ID == id {
		out := *r.user
		return &out, nil
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *singleUserRepository) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	if r.user != nil && r.user.Email == email {
		out := *r.user
		return &out, nil
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *singleUserRepository) SetVerified(_ context.Context, id int64) (*userDomain.User, error) {
	return r.FindByID(context.Background(), id)
}

func (r *singleUserRepository) UpdateAvatar(_ context.Context, id int64, _ string) (*userDomain.User, error) {
	return r.FindByID(context.Background(), id)
}

func (r *singleUserRepository) UpdatePassword(_ context.Context, id int64, _ string) (*userDomain.User, error) {
	return r.FindByID(context.Background(), id)
}

func newMiddlewareFixture(t *testing.T, user *userDomain.User) (*fiber.App, adapters.JWTTokenGenerator) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := userUsecase.NewUserUsecase(
		&singleUserRepository{user: user},
		cache.NewCacheManager(client),
		30*time.Minute,
		event.NewLowImportancePublisher(event.NewInMemoryBus()),
	)
	jwtGen := adapters.NewJWTTokenGenerator("test-secret", 30*time.Minute, 7*24*time.Hour)
	mw := NewAuthMiddleware(jwtGen, users)

	app := fiber.New()
	app.Get("/protected", mw.RequireAuth(), func(c *fiber.Ctx) error {
		current, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"email": current.Email})
	})
	app.Get("/admin", mw.RequireAuth(), mw.RequireRole(userDomain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, jwtGen
}

func testUser(role string) *userDomain.User {
	return &userDomain.User{
		ID:         1,
		Email:      "jane@example.com",
		Password:   "hashed",
		IsVerified: true,
		Role:       role,
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	app, _ := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	app, _ := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	app, jwtGen := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

	_, refresh, _, err := jwtGen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthAcceptsAccessToken(t *testing.T) {
	app, jwtGen := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

	access, _, _, err := jwtGen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	app, jwtGen := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

	access, _, _, err := jwtGen.GenerateTokenPair(2, "gone@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	t.Run("user role is forbidden", func(t *testing.T) {
		app, jwtGen := newMiddlewareFixture(t, testUser(userDomain.RoleUser))

		access, _, _, err := jwtGen.GenerateTokenPair(1, "jane@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin role passes", func(t *testing.T) {
		app, jwtGen := newMiddlewareFixture(t, testUser(userDomain.RoleAdmin))

		access, _, _, err := jwtGen.GenerateTokenPair(1, "jane@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
