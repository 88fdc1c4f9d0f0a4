package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salusclinic/booking-api/internal/model"
	pkgauth "github.com/salusclinic/booking-api/pkg/auth"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	user.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) UpdateEmailVerified(_ context.Context, id uuid.UUID, verified bool) error {
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	user.EmailVerified = verified
	return nil
}

type storedToken struct {
	userID uuid.UUID
	expiry time.Time
	used   bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *fakeTokenRepo) store(userID uuid.UUID, token string, expiry time.Time) {
	r.tokens[token] = &storedToken{userID: userID, expiry: expiry}
}

func (r *fakeTokenRepo) validate(token string) (uuid.UUID, error) {
	t, ok := r.tokens[token]
	if !ok || t.used || time.Now().After(t.expiry) {
		return uuid.Nil, fmt.Errorf("invalid or expired token")
	}
	return t.userID, nil
}

func (r *fakeTokenRepo) invalidate(token string) error {
	t, ok := r.tokens[token]
	if !ok {
		return fmt.Errorf("token not found")
	}
	t.used = true
	return nil
}

func (r *fakeTokenRepo) StoreVerificationToken(_ context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	r.store(userID, token, expiry)
	return nil
}

func (r *fakeTokenRepo) ValidateVerificationToken(_ context.Context, token string) (uuid.UUID, error) {
	return r.validate(token)
}

func (r *fakeTokenRepo) InvalidateVerificationToken(_ context.Context, token string) error {
	return r.invalidate(token)
}

func (r *fakeTokenRepo) StoreResetToken(_ context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	r.store(userID, token, expiry)
	return nil
}

func (r *fakeTokenRepo) ValidateResetToken(_ context.Context, token string) (uuid.UUID, error) {
	return r.validate(token)
}

func (r *fakeTokenRepo) InvalidateResetToken(_ context.Context, token string) error {
	return r.invalidate(token)
}

type fakeSessionStore struct {
	revoked map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{revoked: make(map[string]bool)}
}

func (s *fakeSessionStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *fakeSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

type fakeEmailService struct {
	verifications []string
	resets        []string
}

func (s *fakeEmailService) SendVerification(_ context.Context, email, _ string) error {
	s.verifications = append(s.verifications, email)
	return nil
}

func (s *fakeEmailService) SendPasswordReset(_ context.Context, email, _ string) error {
	s.resets = append(s.resets, email)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenRepo, *fakeSessionStore, *fakeEmailService) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	sessions := newFakeSessionStore()
	mailer := &fakeEmailService{}
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	svc := NewService(users, tokens, sessions, jwtSvc, mailer)
	return svc, users, tokens, sessions, mailer
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:       "mario.bianchi@example.com",
		Password:    "password123",
		FirstName:   "Mario",
		LastName:    "Bianchi",
		FiscalCode:  "BNCMRA80A01F205X",
		PhoneNumber: "+39 333 1234567",
		BirthDate:   "1980-01-01",
	}
}

func TestRegisterCreatesPatientProfile(t *testing.T) {
	svc, users, tokens, _, mailer := newTestService()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, model.RolePatient, user.Role)
	assert.False(t, user.EmailVerified)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	stored, err := users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mario", stored.FirstName)
	assert.Equal(t, "BNCMRA80A01F205X", stored.FiscalCode)

	assert.Equal(t, []string{user.Email}, mailer.verifications)
	assert.Len(t, tokens.tokens, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeRegistration, apperrors.CodeOf(err))
}

func TestLoginUnverifiedEmailRejected(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Correct credentials, but the email was never verified.
	_, err = svc.Login(context.Background(), "mario.bianchi@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuth, apperrors.CodeOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "mario.bianchi@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuth, apperrors.CodeOf(err))
}

func TestVerifyEmailThenLogin(t *testing.T) {
	svc, _, tokens, _, _ := newTestService()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	var verificationToken string
	for tok, st := range tokens.tokens {
		if st.userID == user.ID {
			verificationToken = tok
		}
	}
	require.NotEmpty(t, verificationToken)

	require.NoError(t, svc.VerifyEmail(context.Background(), verificationToken))

	resp, err := svc.Login(context.Background(), "mario.bianchi@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The token is single use.
	err = svc.VerifyEmail(context.Background(), verificationToken)
	require.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, tokens, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	for tok := range tokens.tokens {
		require.NoError(t, svc.VerifyEmail(context.Background(), tok))
	}

	resp, err := svc.Login(context.Background(), "mario.bianchi@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuth, apperrors.CodeOf(err))
}

func TestResetPasswordUnknownEmailSilent(t *testing.T) {
	svc, _, _, _, mailer := newTestService()

	err := svc.ResetPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, mailer.resets)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, tokens, _, mailer := newTestService()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	for tok := range tokens.tokens {
		require.NoError(t, svc.VerifyEmail(context.Background(), tok))
	}

	require.NoError(t, svc.ResetPassword(context.Background(), user.Email))
	assert.Equal(t, []string{user.Email}, mailer.resets)

	var resetToken string
	for tok, st := range tokens.tokens {
		if !st.used {
			resetToken = tok
		}
	}
	require.NotEmpty(t, resetToken)

	require.NoError(t, svc.ConfirmReset(context.Background(), resetToken, "new-password-1"))

	_, err = svc.Login(context.Background(), user.Email, "password123")
	require.Error(t, err)

	_, err = svc.Login(context.Background(), user.Email, "new-password-1")
	require.NoError(t, err)
}

func TestConfirmResetInvalidToken(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	err := svc.ConfirmReset(context.Background(), "bogus", "new-password-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeReset, apperrors.CodeOf(err))
}
