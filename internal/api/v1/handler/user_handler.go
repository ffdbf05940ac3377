package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/middleware"
	"courseapp/internal/model"
	"courseapp/internal/repository"
	"courseapp/internal/service"

	"github.com/go-playground/validator/v10"
)

// UserHandler handles learner signup, signin and the purchased library.
type UserHandler struct {
	authService     service.AuthService
	purchaseService service.PurchaseService
	validate        *validator.Validate
}

func NewUserHandler(authService service.AuthService, purchaseService service.PurchaseService, v *validator.Validate) *UserHandler {
	return &UserHandler{authService: authService, purchaseService: purchaseService, validate: v}
}

// RegisterRoutes mounts user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, userMw func(http.Handler) http.Handler) {
	mux.HandleFunc("/user/signup", h.signup)
	mux.HandleFunc("/user/signin", h.signin)
	mux.Handle("/user/purchases", userMw(http.HandlerFunc(h.getPurchases)))
}

func (h *UserHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.authService.Signup(r.Context(), model.KindUser, service.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			http.Error(w, "User already exists with this email", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.SignupResponseDTO{Message: "You are signed up", ID: id})
}

func (h *UserHandler) signin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SigninRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.authService.Signin(r.Context(), model.KindUser, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrincipalNotFound):
			http.Error(w, "User does not exist", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, "Incorrect password", http.StatusForbidden)
		default:
			http.Error(w, "Failed to sign in: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.SigninResponseDTO{
		Message:   "You are logged in",
		Token:     session.Token,
		FirstName: session.FirstName,
	})
}

func (h *UserHandler) getPurchases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	purchases, err := h.purchaseService.GetPurchasesForUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to retrieve purchases: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewPurchaseListResponseDTO(purchases))
}
