//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wizzzlaundry/backend/internal/auth"
	"github.com/wizzzlaundry/backend/internal/catalog"
	"github.com/wizzzlaundry/backend/internal/order"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, selections []order.Selection, pickupDate, deliveryDate time.Time, address string) (order.Order, error)
	ListOrders(ctx context.Context, userID string) []order.Order
	CancelOrder(ctx context.Context, orderID string) error
}

type Identity interface {
	Register(email string) error
	VerifyCode(email, code string) bool
	Login(email string) (auth.User, string, error)
	Authenticate(token string) (auth.User, bool)
	Logout(token string)
}

type Assistant interface {
	Ask(ctx context.Context, question string) string
}

type Catalog interface {
	All() []catalog.ServiceItem
}

type Server struct {
	orders       OrderService
	identity     Identity
	assistant    Assistant
	catalog      Catalog
	server       *http.Server
	logger       *zap.Logger
	AuditManager *AuditManager
}

func New(orders OrderService, identity Identity, assistant Assistant, cat Catalog, logger *zap.Logger) *Server {
	return &Server{
		orders:       orders,
		identity:     identity,
		assistant:    assistant,
		catalog:      cat,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond, logger),
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.auditLogMiddleware)

	router.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/verify", s.handleVerify).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)

	router.HandleFunc("/api/services", s.handleListServices).Methods(http.MethodGet)

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}/cancel", s.handleCancelOrder).Methods(http.MethodPost)
	authed.HandleFunc("/assistant", s.handleAssistant).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

type contextKey string

const userContextKey contextKey = "user"

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		user, ok := s.identity.Authenticate(token)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func userFrom(ctx context.Context) (auth.User, bool) {
	user, ok := ctx.Value(userContextKey).(auth.User)
	return user, ok
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondOrderError maps domain errors onto HTTP statuses.
func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidState):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
