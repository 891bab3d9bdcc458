// Package httpapi exposes the server's public HTTP API: identity and session
// endpoints, profile management and the game catalog.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/stackr/internal/logging"
	"github.com/dmitrijs2005/stackr/internal/server/config"
	"github.com/dmitrijs2005/stackr/internal/server/services"
	"github.com/gorilla/mux"
)

// Server holds the HTTP handlers and their service dependencies.
type Server struct {
	auth     *services.AuthService
	profiles *services.ProfileService
	games    *services.GameService
	addr     string
	logger   logging.Logger
}

// NewServer constructs the HTTP API server.
func NewServer(cfg *config.Config, auth *services.AuthService, profiles *services.ProfileService,
	games *services.GameService, logger logging.Logger) *Server {
	return &Server{
		auth:     auth,
		profiles: profiles,
		games:    games,
		addr:     cfg.EndpointAddrHTTP,
		logger:   logger.With("module", "httpapi"),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/iam/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/iam/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/iam/google", s.handleGoogleLogin).Methods(http.MethodPost)
	r.HandleFunc("/iam/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/iam/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/iam/me", s.requireAuth(s.handleMe)).Methods(http.MethodGet)

	r.HandleFunc("/iam/profile", s.requireAuth(s.handleGetProfile)).Methods(http.MethodGet)
	r.HandleFunc("/iam/profile", s.requireAuth(s.handleUpdateProfile)).Methods(http.MethodPatch)
	r.HandleFunc("/iam/profile/avatar", s.requireAuth(s.handleAvatarUpload)).Methods(http.MethodPost)
	r.HandleFunc("/iam/profile/avatar/confirm", s.requireAuth(s.handleAvatarConfirm)).Methods(http.MethodPost)

	r.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	r.HandleFunc("/games", s.requireAuth(s.handleCreateGame)).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", s.requireAuth(s.handleUpdateGame)).Methods(http.MethodPut)
	r.HandleFunc("/games/{id}", s.requireAuth(s.handleDeleteGame)).Methods(http.MethodDelete)

	r.HandleFunc("/users/me/games", s.requireAuth(s.handleListLibrary)).Methods(http.MethodGet)
	r.HandleFunc("/users/me/games/{id}", s.requireAuth(s.handleAddToLibrary)).Methods(http.MethodPost)
	r.HandleFunc("/users/me/games/{id}", s.requireAuth(s.handleRemoveFromLibrary)).Methods(http.MethodDelete)

	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http api listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
