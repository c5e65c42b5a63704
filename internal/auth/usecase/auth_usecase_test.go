package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iots1/contacts-api/internal/auth/adapters"
	"github.com/iots1/contacts-api/internal/auth/models"
	"github.com/iots1/contacts-api/internal/auth/repository"
	sharedAdapters "github.com/iots1/contacts-api/internal/shared/adapters"
	"github.com/iots1/contacts-api/internal/shared/cache"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/user/domain"
	userUsecase "github.com/iots1/contacts-api/internal/user/usecase"
)

// fakeUserRepository is an in-memory domain.UserRepository.
type fakeUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepository) SetVerified(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsVerified = true
	out := *u
	return &out, nil
}

func (r *fakeUserRepository) UpdateAvatar(_ context.Context, id int64, avatarURL string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.AvatarURL = &avatarURL
	out := *u
	return &out, nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id int64, hashedPassword string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Password = hashedPassword
	out := *u
	return &out, nil
}

// fakeTokenRepository is an in-memory repository.RefreshTokenRepository.
type fakeTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]int64 // token hash -> user ID
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{tokens: make(map[string]int64)}
}

func (r *fakeTokenRepository) Save(_ context.Context, userID int64, jti string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[repository.HashToken(jti)] = userID
	return nil
}

func (r *fakeTokenRepository) Consume(_ context.Context, jti string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash := repository.HashToken(jti)
	userID, ok := r.tokens[hash]
	if !ok {
		return 0, repository.ErrTokenNotFound
	}
	delete(r.tokens, hash)
	return userID, nil
}

func (r *fakeTokenRepository) RevokeAllForUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, uid := range r.tokens {
		if uid == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func (r *fakeTokenRepository) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func (r *fakeTokenRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// recordingPublisher captures published tasks for assertions.
type recordingPublisher struct {
	mu        sync.Mutex
	published []publishedTask
}

type publishedTask struct {
	name    string
	payload interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, name string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedTask{name: name, payload: payload})
	return nil
}

func (p *recordingPublisher) tasksNamed(name string) []publishedTask {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedTask
	for _, t := range p.published {
		if t.name == name {
			out = append(out, t)
		}
	}
	return out
}

type authFixture struct {
	auth     *AuthUsecase
	users    *userUsecase.UserUsecase
	userRepo *fakeUserRepository
	tokens   *fakeTokenRepository
	highPub  *recordingPublisher
	jwt      adapters.JWTTokenGenerator
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	userRepo := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	highPub := &recordingPublisher{}
	lowPub := event.NewLowImportancePublisher(event.NewInMemoryBus())
	jwtGen := adapters.NewJWTTokenGenerator("test-secret", 30*time.Minute, 7*24*time.Hour)

	users := userUsecase.NewUserUsecase(userRepo, cache.NewCacheManager(client), 30*time.Minute, lowPub)
	auth := NewAuthUsecase(users, tokens, jwtGen, sharedAdapters.NewPasswordHasher(),
		highPub, 30*time.Minute, 7*24*time.Hour)

	return &authFixture{
		auth:     auth,
		users:    users,
		userRepo: userRepo,
		tokens:   tokens,
		highPub:  highPub,
		jwt:      jwtGen,
	}
}

func (f *authFixture) registerVerified(t *testing.T, email, password string) {
	t.Helper()
	ctx := context.Background()
	resp, err := f.auth.Register(ctx, &models.RegisterRequest{Email: email, Password: password})
	require.NoError(t, err)
	_, err = f.userRepo.SetVerified(ctx, resp.ID)
	require.NoError(t, err)
}

func TestRegisterQueuesVerificationEmail(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()

	resp, err := f.auth.Register(context.Background(), &models.RegisterRequest{
		Email:    email,
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, email, resp.Email)
	assert.False(t, resp.IsVerified)
	assert.Equal(t, domain.RoleUser, resp.Role)

	tasks := f.highPub.tasksNamed(event.SendVerificationEmailTaskName)
	require.Len(t, tasks, 1)
	payload, ok := tasks[0].payload.(event.SendVerificationEmailPayload)
	require.True(t, ok)
	assert.Equal(t, email, payload.Email)
	assert.NotEmpty(t, payload.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()

	_, err := f.auth.Register(context.Background(), &models.RegisterRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	_, err = f.auth.Register(context.Background(), &models.RegisterRequest{Email: email, Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginFlows(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()

	_, err := f.auth.Register(context.Background(), &models.RegisterRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	// Unverified accounts cannot log in.
	_, err = f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	user, err := f.userRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	_, err = f.userRepo.SetVerified(context.Background(), user.ID)
	require.NoError(t, err)

	// Wrong password and unknown email both map to the same error.
	_, err = f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(context.Background(), &models.LoginRequest{Email: gofakeit.Email(), Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64((30 * time.Minute).Seconds()), resp.ExpiresIn)
	assert.Equal(t, 1, f.tokens.count(), "login must persist the refresh jti")
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "password1")

	login, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	rotated, err := f.auth.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, f.tokens.count(), "old jti consumed, new jti stored")

	// The old refresh token is now dead.
	_, err = f.auth.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshReuseRevokesAllSessions(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "password1")

	first, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)
	second, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)
	require.Equal(t, 2, f.tokens.count())

	// Rotate the first token, then present it again: reuse.
	_, err = f.auth.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	_, err = f.auth.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Reuse detection revokes everything, including the second session.
	assert.Equal(t, 0, f.tokens.count())
	_, err = f.auth.Refresh(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "password1")

	login, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	_, err = f.auth.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutConsumesToken(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "password1")

	login, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(context.Background(), login.RefreshToken))
	assert.Equal(t, 0, f.tokens.count())

	// Logging out twice is fine.
	require.NoError(t, f.auth.Logout(context.Background(), login.RefreshToken))
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()

	_, err := f.auth.Register(context.Background(), &models.RegisterRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	tasks := f.highPub.tasksNamed(event.SendVerificationEmailTaskName)
	require.Len(t, tasks, 1)
	token := tasks[0].payload.(event.SendVerificationEmailPayload).Token

	user, err := f.auth.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Idempotent: a second verification succeeds.
	user, err = f.auth.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	_, err = f.auth.VerifyEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()

	_, err := f.auth.Register(context.Background(), &models.RegisterRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, f.auth.ResendVerification(context.Background(), email))
	assert.Len(t, f.highPub.tasksNamed(event.SendVerificationEmailTaskName), 2)

	// Unknown addresses succeed without leaking existence.
	require.NoError(t, f.auth.ResendVerification(context.Background(), gofakeit.Email()))
	assert.Len(t, f.highPub.tasksNamed(event.SendVerificationEmailTaskName), 2)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "oldpassword")

	login, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "oldpassword"})
	require.NoError(t, err)

	require.NoError(t, f.auth.RequestPasswordReset(context.Background(), email))
	tasks := f.highPub.tasksNamed(event.SendPasswordResetEmailTaskName)
	require.Len(t, tasks, 1)
	token := tasks[0].payload.(event.SendPasswordResetEmailPayload).Token

	require.NoError(t, f.auth.ConfirmPasswordReset(context.Background(), &models.PasswordResetConfirm{
		Token:       token,
		NewPassword: "newpassword",
	}))

	// Old sessions are revoked and the old password no longer works.
	assert.Equal(t, 0, f.tokens.count())
	_, err = f.auth.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "oldpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "newpassword"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestPasswordResetUnknownEmailSilent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.auth.RequestPasswordReset(context.Background(), gofakeit.Email()))
	assert.Empty(t, f.highPub.tasksNamed(event.SendPasswordResetEmailTaskName))
}

func TestConfirmPasswordResetRejectsWrongScope(t *testing.T) {
	f := newAuthFixture(t)
	email := gofakeit.Email()
	f.registerVerified(t, email, "password1")

	login, err := f.auth.Login(context.Background(), &models.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	err = f.auth.ConfirmPasswordReset(context.Background(), &models.PasswordResetConfirm{
		Token:       login.AccessToken,
		NewPassword: "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
