package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/salusclinic/booking-api/internal/model"
	authService "github.com/salusclinic/booking-api/internal/service/auth"
	pkgauth "github.com/salusclinic/booking-api/pkg/auth"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (r *fakeUserRepo) UpdateEmailVerified(_ context.Context, id uuid.UUID, verified bool) error {
	for _, u := range r.users {
		if u.ID == id {
			u.EmailVerified = verified
		}
	}
	return nil
}

type fakeTokenRepo struct{}

func (fakeTokenRepo) StoreVerificationToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (fakeTokenRepo) ValidateVerificationToken(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, fmt.Errorf("invalid token")
}

func (fakeTokenRepo) InvalidateVerificationToken(context.Context, string) error { return nil }

func (fakeTokenRepo) StoreResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (fakeTokenRepo) ValidateResetToken(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, fmt.Errorf("invalid token")
}

func (fakeTokenRepo) InvalidateResetToken(context.Context, string) error { return nil }

type fakeSessionStore struct{}

func (fakeSessionStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (fakeSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type fakeEmailService struct{}

func (fakeEmailService) SendVerification(context.Context, string, string) error { return nil }

func (fakeEmailService) SendPasswordReset(context.Context, string, string) error { return nil }

func setupRouter(users *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	svc := authService.NewService(users, fakeTokenRepo{}, fakeSessionStore{}, jwtSvc, fakeEmailService{})

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group(""))
	return engine
}

func seedUser(users *fakeUserRepo, verified bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.users["anna@example.com"] = &model.User{
		ID:            uuid.New(),
		Email:         "anna@example.com",
		PasswordHash:  string(hash),
		EmailVerified: verified,
		Role:          model.RolePatient,
	}
}

func postJSON(engine *gin.Engine, path string, body map[string]string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginUnverifiedRejected(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	seedUser(users, false)
	engine := setupRouter(users)

	w := postJSON(engine, "/login", map[string]string{
		"email":    "anna@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "verifica la tua email")
}

func TestLoginVerifiedSucceeds(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	seedUser(users, true)
	engine := setupRouter(users)

	w := postJSON(engine, "/login", map[string]string{
		"email":    "anna@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
}

func TestLoginBadCredentials(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	seedUser(users, true)
	engine := setupRouter(users)

	w := postJSON(engine, "/login", map[string]string{
		"email":    "anna@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterReturnsProfile(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	engine := setupRouter(users)

	w := postJSON(engine, "/registrati", map[string]string{
		"email":       "luca@example.com",
		"password":    "password123",
		"firstName":   "Luca",
		"lastName":    "Neri",
		"fiscalCode":  "NRELCU85B02F205Y",
		"phoneNumber": "+39 333 7654321",
		"birthDate":   "1985-02-02",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.RolePatient, resp.Data.Role)
	assert.False(t, resp.Data.EmailVerified)
}

func TestRegisterMissingFields(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	engine := setupRouter(users)

	w := postJSON(engine, "/registrati", map[string]string{
		"email":    "luca@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailMissingToken(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	engine := setupRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/verifica-email", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordAlwaysSucceeds(t *testing.T) {
	users := &fakeUserRepo{users: make(map[string]*model.User)}
	engine := setupRouter(users)

	w := postJSON(engine, "/recupera-password", map[string]string{
		"email": "nobody@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}
