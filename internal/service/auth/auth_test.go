package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/models"
	"github.com/wafr/wafradmin/internal/repository/memstore"
)

func newService(t *testing.T) *AuthService {
	t.Helper()

	s, err := NewService(Config{SecretKey: "test-secret-key"}, memstore.NewSessionRepo())
	require.NoError(t, err, "auth service should be created without errors")

	return s
}

func TestAuthService_New(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := newService(t)

		require.Equal(t, defaultAccessHeaderName, s.accessHeaderName, "default access header name should be set")
		require.Equal(t, defaultAccessAuthScheme, s.accessAuthScheme, "default access auth scheme should be set")
		require.Equal(t, defaultSessionTTL, s.sessionTTL, "default session ttl should be set")
		require.Equal(t, defaultAdminEmail, s.adminEmail, "default admin email should be set")
		require.Equal(t, DefaultHasher, s.hasher, "default hasher should be bcrypt")
	})

	t.Run("fails without secret key", func(t *testing.T) {
		_, err := NewService(Config{}, memstore.NewSessionRepo())
		require.Error(t, err)
	})

	t.Run("fails without session repo", func(t *testing.T) {
		_, err := NewService(Config{SecretKey: "key"}, nil)
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("fixed credential ok", func(t *testing.T) {
		s := newService(t)

		session, token, err := s.Login(t.Context(), "admin@wafr.com", "password")

		require.NoError(t, err)
		require.NotEmpty(t, token.Value, "access token should not be empty")
		require.Equal(t, "admin", session.Operator.Role)
		require.Equal(t, "Admin User", session.Operator.Name)
		require.Equal(t, "admin@wafr.com", session.Operator.Email)
	})

	t.Run("session is persisted", func(t *testing.T) {
		repo := memstore.NewSessionRepo()
		s, err := NewService(Config{SecretKey: "test-secret-key"}, repo)
		require.NoError(t, err)

		session, _, err := s.Login(t.Context(), "admin@wafr.com", "password")
		require.NoError(t, err)

		saved, err := repo.Get(t.Context(), session.ID)
		require.NoError(t, err)
		require.Equal(t, session, saved)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{
			name:     "wrong password",
			email:    "admin@wafr.com",
			password: "wrong",
		},
		{
			name:     "unknown email",
			email:    "someone@wafr.com",
			password: "password",
		},
		{
			name:     "both empty",
			email:    "",
			password: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(t)

			_, _, err := s.Login(t.Context(), tt.email, tt.password)

			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}

	t.Run("credential override", func(t *testing.T) {
		s, err := NewService(Config{
			SecretKey:     "test-secret-key",
			AdminEmail:    "ops@wafr.com",
			AdminPassword: "stronger-one",
		}, memstore.NewSessionRepo())
		require.NoError(t, err)

		_, _, err = s.Login(t.Context(), "admin@wafr.com", "password")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		_, token, err := s.Login(t.Context(), "ops@wafr.com", "stronger-one")
		require.NoError(t, err)
		require.NotEmpty(t, token.Value)
	})
}

func TestAuthService_Restore(t *testing.T) {
	t.Run("issued token resolves to the operator", func(t *testing.T) {
		s := newService(t)

		_, token, err := s.Login(t.Context(), "admin@wafr.com", "password")
		require.NoError(t, err)

		operator, err := s.Restore(t.Context(), token.Value)

		require.NoError(t, err)
		require.Equal(t, "admin", operator.Role)
		require.Equal(t, "1", operator.ID)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		s := newService(t)

		_, err := s.Restore(t.Context(), "not-a-token")

		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("token signed with a different key fails", func(t *testing.T) {
		s := newService(t)
		other, err := NewService(Config{SecretKey: "other-secret"}, memstore.NewSessionRepo())
		require.NoError(t, err)

		_, token, err := other.Login(t.Context(), "admin@wafr.com", "password")
		require.NoError(t, err)

		_, err = s.Restore(t.Context(), token.Value)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("token without a persisted session fails", func(t *testing.T) {
		repo := memstore.NewSessionRepo()
		s, err := NewService(Config{SecretKey: "test-secret-key"}, repo)
		require.NoError(t, err)

		session, token, err := s.Login(t.Context(), "admin@wafr.com", "password")
		require.NoError(t, err)

		require.NoError(t, repo.Delete(t.Context(), session.ID))

		_, err = s.Restore(t.Context(), token.Value)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("outlived session is expired", func(t *testing.T) {
		session := models.Session{ExpiresAt: time.Now().Add(-time.Minute)}
		require.True(t, sessionExpired(session, time.Now()))

		session.ExpiresAt = time.Now().Add(time.Minute)
		require.False(t, sessionExpired(session, time.Now()))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("restore after logout stays anonymous", func(t *testing.T) {
		s := newService(t)

		_, token, err := s.Login(t.Context(), "admin@wafr.com", "password")
		require.NoError(t, err)

		require.NoError(t, s.Logout(t.Context(), token.Value))

		_, err = s.Restore(t.Context(), token.Value)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("logout with a mangled token still succeeds", func(t *testing.T) {
		s := newService(t)

		require.NoError(t, s.Logout(t.Context(), "whatever"))
	})
}

func TestAuthService_Auth(t *testing.T) {
	s := newService(t)

	_, token, err := s.Login(context.Background(), "admin@wafr.com", "password")
	require.NoError(t, err)

	newRequest := func(t *testing.T, header string) *http.Request {
		r, err := http.NewRequest(http.MethodGet, "/users", nil)
		require.NoError(t, err)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	t.Run("bearer token ok", func(t *testing.T) {
		operator, err := s.Auth(t.Context(), newRequest(t, "Bearer "+token.Value))

		require.NoError(t, err)
		require.Equal(t, "admin", operator.Role)
	})

	t.Run("scheme matching is case insensitive", func(t *testing.T) {
		_, err := s.Auth(t.Context(), newRequest(t, "bearer "+token.Value))

		require.NoError(t, err)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token.Value},
		{"scheme only", "Bearer"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Auth(t.Context(), newRequest(t, tt.header))

			require.Error(t, err)
		})
	}
}
