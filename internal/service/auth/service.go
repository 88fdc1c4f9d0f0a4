package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/salusclinic/booking-api/internal/email"
	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/repository"
	pkgauth "github.com/salusclinic/booking-api/pkg/auth"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

const (
	resetTokenExpiry  = 1 * time.Hour
	verifyTokenExpiry = 48 * time.Hour
	bcryptCost        = 12
)

type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	sessions  repository.SessionStore
	jwtSvc    pkgauth.JWTService
	emailSvc  email.Service
}

func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository,
	sessions repository.SessionStore, jwtSvc pkgauth.JWTService, emailSvc email.Service) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		sessions:  sessions,
		jwtSvc:    jwtSvc,
		emailSvc:  emailSvc,
	}
}

// Register creates the credential and the profile document in one step.
// The profile is written with role "patient" and a creation timestamp;
// a verification email is sent before login is possible.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, apperrors.Registration("email già registrata", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Registration("errore durante la registrazione", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FiscalCode:   req.FiscalCode,
		PhoneNumber:  req.PhoneNumber,
		BirthDate:    req.BirthDate,
		Role:         model.RolePatient,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Registration("errore durante la registrazione", err)
	}

	// A failed send must not lose the account: the user can ask for a
	// resend from the verification page.
	if err := s.sendVerificationEmail(ctx, user); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	return user, nil
}

// Login authenticates credentials and enforces the local policy that
// an unverified email cannot sign in, even with a correct password.
func (s *Service) Login(ctx context.Context, loginEmail, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, loginEmail)
	if err != nil {
		return nil, apperrors.Auth("credenziali non valide")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Auth("credenziali non valide")
	}

	if !user.EmailVerified {
		return nil, apperrors.Auth("per favore verifica la tua email prima di accedere")
	}

	return s.generateTokens(user)
}

// ResetPassword requests a reset email. An unknown address is reported
// as success so the endpoint cannot be used to probe for accounts.
func (s *Service) ResetPassword(ctx context.Context, resetEmail string) error {
	user, err := s.userRepo.GetByEmail(ctx, resetEmail)
	if err != nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.tokenRepo.StoreResetToken(ctx, user.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return apperrors.Reset("errore durante il recupero password", err)
	}

	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, token); err != nil {
		return apperrors.Reset("errore durante il recupero password", err)
	}

	return nil
}

// ConfirmReset completes the reset flow started by ResetPassword.
func (s *Service) ConfirmReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokenRepo.ValidateResetToken(ctx, token)
	if err != nil {
		return apperrors.Reset("token non valido o scaduto", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.Reset("errore durante il recupero password", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hashedPassword)); err != nil {
		return apperrors.Reset("errore durante il recupero password", err)
	}

	return s.tokenRepo.InvalidateResetToken(ctx, token)
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return apperrors.Auth("token non valido")
	}

	return s.sessions.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}

// ValidateToken checks signature, expiry and the revocation list. It is
// the per-request session check the auth middleware runs.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Auth("token non valido")
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Auth("sessione terminata")
	}

	return claims, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokenRepo.ValidateVerificationToken(ctx, token)
	if err != nil {
		return apperrors.BadRequest("token di verifica non valido o scaduto", err)
	}

	if err := s.userRepo.UpdateEmailVerified(ctx, userID, true); err != nil {
		return apperrors.Internal(err)
	}

	return s.tokenRepo.InvalidateVerificationToken(ctx, token)
}

func (s *Service) ResendVerification(ctx context.Context, resendEmail string) error {
	user, err := s.userRepo.GetByEmail(ctx, resendEmail)
	if err != nil {
		return apperrors.NotFound("utente", err)
	}

	if user.EmailVerified {
		return apperrors.BadRequest("email già verificata", nil)
	}

	return s.sendVerificationEmail(ctx, user)
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("utente", err)
	}
	return user, nil
}

func (s *Service) generateTokens(user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) sendVerificationEmail(ctx context.Context, user *model.User) error {
	token := uuid.New().String()
	if err := s.tokenRepo.StoreVerificationToken(ctx, user.ID, token, time.Now().Add(verifyTokenExpiry)); err != nil {
		return err
	}

	return s.emailSvc.SendVerification(ctx, user.Email, token)
}
