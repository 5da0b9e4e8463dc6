package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

// TokenRevoker abstracts the revocation store (Redis). Revoked token ids are
// kept only until the token would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService implements registration, login, and token lifecycle.
type AuthService struct {
	repo        ports.UserRepository
	revoker     TokenRevoker
	jwtSecret   string
	tokenTTL    time.Duration
	refreshTTL  time.Duration
	singleAdmin bool
	log         zerolog.Logger
}

// NewAuthService wires an AuthService. When singleAdmin is true, registering
// a second admin account is rejected with domain.ErrAdminExists.
func NewAuthService(
	repo ports.UserRepository,
	revoker TokenRevoker,
	jwtSecret string,
	tokenTTL, refreshTTL time.Duration,
	singleAdmin bool,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:        repo,
		revoker:     revoker,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		refreshTTL:  refreshTTL,
		singleAdmin: singleAdmin,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrMissingFields, role)
	}

	if role == domain.RoleAdmin && s.singleAdmin {
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("register: count admins: %w", err)
		}
		if admins > 0 {
			return nil, domain.ErrAdminExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email reports the same failure as a wrong password.
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("email", email).Msg("failed login attempt")
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.signToken(user, s.tokenTTL, "")
	if err != nil {
		return nil, nil, fmt.Errorf("login: sign access token: %w", err)
	}
	refresh, err := s.signToken(user, s.refreshTTL, "refresh")
	if err != nil {
		return nil, nil, fmt.Errorf("login: sign refresh token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user authenticated")
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", domain.ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if revoked, err := s.revoker.IsRevoked(ctx, jti); err == nil && revoked {
		return "", domain.ErrTokenRevoked
	}

	sub, _ := claims["sub"].(string)
	// Re-read the user so the fresh token carries the current role.
	user, err := s.repo.FindByID(ctx, sub)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.signToken(user, s.tokenTTL, "")
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return domain.ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := s.revoker.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("logout: revoke token: %w", err)
	}

	s.log.Info().Str("jti", jti).Msg("token revoked")
	return nil
}

func (s *AuthService) signToken(user *domain.User, ttl time.Duration, typ string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if typ != "" {
		claims["typ"] = typ
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}
