package e2e

import (
	"math/rand"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wafr/wafradmin/internal/handlers"
	"github.com/wafr/wafradmin/internal/logger"
	"github.com/wafr/wafradmin/internal/mockgen"
	"github.com/wafr/wafradmin/internal/repository/memstore"
	"github.com/wafr/wafradmin/internal/repository/sessionfile"
	"github.com/wafr/wafradmin/internal/service/auth"
	"github.com/wafr/wafradmin/internal/service/directory"
	"github.com/wafr/wafradmin/internal/statement"
)

type Services struct {
	AuthService      *auth.AuthService
	DirectoryService *directory.DirectoryService
	UserRepo         *memstore.UserRepo
}

// Serve boots the whole console stack over a seeded roster and runs the
// handler under httptest. Sessions are persisted to a file under t.TempDir,
// so restarting within one test keeps operators signed in.
func Serve(t *testing.T, fn func(srvURL string, s Services)) {
	t.Helper()

	gen := mockgen.NewWithSource(rand.NewSource(1))
	userRepo := memstore.NewUserRepo(gen.Users(50))

	sessionRepo, err := sessionfile.New(filepath.Join(t.TempDir(), "sessions.json"))
	require.NoError(t, err, "session store should open without errors")

	authService, err := auth.NewService(auth.Config{SecretKey: "test-secret"}, sessionRepo)
	require.NoError(t, err, "auth service starting error")

	directoryService, err := directory.NewService(userRepo, gen)
	require.NoError(t, err, "directory service starting error")

	builder, err := statement.NewBuilder()
	require.NoError(t, err, "statement builder starting error")

	router := handlers.NewRouter(authService, directoryService, builder, logger.NewNoOpLogger())

	srv := httptest.NewServer(router)
	defer srv.Close()

	fn(srv.URL, Services{
		AuthService:      authService,
		DirectoryService: directoryService,
		UserRepo:         userRepo,
	})
}
