package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wizzzlaundry/backend/internal/auth"
	"github.com/wizzzlaundry/backend/internal/order"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.identity.Login(loginRequest.Email)
	if err != nil {
		if errors.Is(err, auth.ErrAuth) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var registerRequest struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&registerRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.identity.Register(registerRequest.Email); err != nil {
		if errors.Is(err, auth.ErrAuth) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Registration accepted, verification required",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var verifyRequest struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&verifyRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !s.identity.VerifyCode(verifyRequest.Email, verifyRequest.Code) {
		respondError(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Account verified",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	// Idempotent: logging out an unknown or already-invalidated token still
	// succeeds.
	s.identity.Logout(token)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing session")
		return
	}

	var orderRequest struct {
		Items        []order.Selection `json:"items"`
		PickupDate   time.Time         `json:"pickup_date"`
		DeliveryDate time.Time         `json:"delivery_date"`
		Address      string            `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&orderRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.orders.CreateOrder(r.Context(), user.ID, orderRequest.Items,
		orderRequest.PickupDate, orderRequest.DeliveryDate, orderRequest.Address)
	if err != nil {
		respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing session")
		return
	}

	respondJSON(w, http.StatusOK, s.orders.ListOrders(r.Context(), user.ID))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	if err := s.orders.CancelOrder(r.Context(), orderID); err != nil {
		respondOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Order cancelled successfully",
	})
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var askRequest struct {
		Question string `json:"question"`
	}

	if err := json.NewDecoder(r.Body).Decode(&askRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if askRequest.Question == "" {
		respondError(w, http.StatusBadRequest, "Missing question")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"answer": s.assistant.Ask(r.Context(), askRequest.Question),
	})
}
