package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewServerApp(t *testing.T) {
	t.Run("starts with a secret key", func(t *testing.T) {
		c := NewConfig()
		c.SecretKey = "secret"
		c.SessionFile = filepath.Join(t.TempDir(), "sessions.json")

		srv, err := NewServerApp(c)

		require.NoError(t, err)
		require.Equal(t, c.ListenAddr, srv.ListenAddr)
		require.NotNil(t, srv.Handler)
	})

	t.Run("fails without a secret key", func(t *testing.T) {
		c := NewConfig()
		c.SessionFile = filepath.Join(t.TempDir(), "sessions.json")

		_, err := NewServerApp(c)

		require.Error(t, err, "auth service requires a secret key")
	})

	t.Run("fails on unknown environment", func(t *testing.T) {
		c := NewConfig()
		c.SecretKey = "secret"
		c.Environment = "staging"

		_, err := NewServerApp(c)

		require.Error(t, err)
	})
}
