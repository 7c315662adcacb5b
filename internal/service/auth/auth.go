// Package auth owns the operator session: login against the fixed demo
// credential, persisted sessions, and the signed tokens that prove them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/models"
	"github.com/wafr/wafradmin/internal/repository"
)

const (
	defaultSigningAlg       = "HS256"
	defaultSessionTTL       = 24 * time.Hour
	defaultAccessHeaderName = "Authorization"
	defaultAccessAuthScheme = "Bearer"

	// The demo credential pair. Only this operator can log in.
	defaultAdminEmail    = "admin@wafr.com"
	defaultAdminPassword = "password"
)

// adminOperator is the descriptor every successful login binds to
var adminOperator = models.Operator{
	ID:    "1",
	Name:  "Admin User",
	Email: "admin@wafr.com",
	Role:  "admin",
}

type Config struct {
	// Secret key to sign session tokens. Required.
	SecretKey string

	// JWT MAC algorithm. Defaults to HS256.
	Alg string

	// How long a session stays valid. Defaults to 24h.
	SessionTTL time.Duration

	// Credential override, mostly for tests
	AdminEmail    string
	AdminPassword string

	// Hasher for the fixed credential. Defaults to bcrypt.
	Hasher PasswordHasher
}

type AuthService struct {
	token       tokenManager
	hasher      PasswordHasher
	sessionRepo repository.SessionRepo

	sessionTTL time.Duration

	adminEmail string
	adminHash  string

	accessHeaderName string
	accessAuthScheme string
}

func NewService(cfg Config, sessionRepo repository.SessionRepo) (*AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if sessionRepo == nil {
		return nil, errors.New("session repo must not be nil")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningAlg
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = defaultAdminEmail
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = defaultAdminPassword
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	// Hash the fixed credential once; login only ever compares
	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("can't hash admin password. Err: %w", err)
	}

	return &AuthService{
		token:            tokenManager{key: cfg.SecretKey, alg: jwt.GetSigningMethod(cfg.Alg)},
		hasher:           hasher,
		sessionRepo:      sessionRepo,
		sessionTTL:       cfg.SessionTTL,
		adminEmail:       cfg.AdminEmail,
		adminHash:        adminHash,
		accessHeaderName: defaultAccessHeaderName,
		accessAuthScheme: defaultAccessAuthScheme,
	}, nil
}

// Login checks the credential pair, persists a fresh session and issues the
// token proving it. Mismatch returns apperrors.ErrInvalidCredentials with no
// state change.
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.Session, models.IssuedToken, error) {
	// Compare the hash even on a wrong email so both failure paths cost the same
	err := s.hasher.Compare(s.adminHash, password)
	if email != s.adminEmail || err != nil {
		return models.Session{}, models.IssuedToken{}, apperrors.ErrInvalidCredentials
	}

	now := time.Now().Truncate(time.Second)
	session := models.Session{
		ID:        uuid.New(),
		Operator:  adminOperator,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return models.Session{}, models.IssuedToken{}, fmt.Errorf("can't persist session. Err: %w", err)
	}

	token, err := s.token.Issue(session)
	if err != nil {
		return models.Session{}, models.IssuedToken{}, fmt.Errorf("token could not be issued, sorry. %w", err)
	}

	return session, token, nil
}

// Logout drops the persisted session the token points at. Unconditional:
// an unknown or mangled token still ends the caller anonymous.
func (s *AuthService) Logout(ctx context.Context, access string) error {
	sessionID, err := s.token.Parse(access)
	if err != nil {
		return nil
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}

// Restore resolves a token back to its operator: verify the signature, then
// require the session to still exist and not be expired
func (s *AuthService) Restore(ctx context.Context, access string) (models.Operator, error) {
	sessionID, err := s.token.Parse(access)
	if err != nil {
		return models.Operator{}, fmt.Errorf("%w: %w", apperrors.ErrSessionNotFound, err)
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return models.Operator{}, err
	}

	if sessionExpired(session, time.Now()) {
		return models.Operator{}, apperrors.ErrSessionExpired
	}

	return session.Operator, nil
}

// Auth authenticates an incoming request from its Authorization header
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.Operator, error) {
	access, err := s.readAccessToken(r)
	if err != nil {
		return models.Operator{}, err
	}

	return s.Restore(ctx, access)
}

// ReadAccessToken extracts the bearer token from the request, if present
func (s *AuthService) ReadAccessToken(r *http.Request) (string, error) {
	return s.readAccessToken(r)
}

func (s *AuthService) readAccessToken(r *http.Request) (string, error) {
	header := r.Header.Get(s.accessHeaderName)
	if header == "" {
		return "", apperrors.ErrSessionNotFound
	}

	scheme, access, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, s.accessAuthScheme) || access == "" {
		return "", apperrors.ErrSessionNotFound
	}

	return access, nil
}
