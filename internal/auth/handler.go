package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/bookstore-api/internal/httputil"
	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service      *Service
	isProduction bool
}

func NewHandler(service *Service, isProduction bool) *Handler {
	return &Handler{
		service:      service,
		isProduction: isProduction,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// UserResponse is the sanitized view of a user; it never carries the password hash
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// MeResponse is returned by the current-user endpoint
type MeResponse struct {
	User UserResponse `json:"user"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new account and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Missing fields or email already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeValidationError, http.StatusBadRequest)
			return
		}
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			respondError(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w, err, !h.isProduction)
		return
	}

	logger.Info("user registered successfully", "user_id", result.User.ID)

	respondJSON(w, AuthResponse{
		Message: "User registered successfully",
		User:    toUserResponse(result.User),
		Token:   result.Token,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Invalid request body or credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			respondError(w, ErrInvalidCredentials.Error(), httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w, err, !h.isProduction)
		return
	}

	logger.Info("user logged in successfully", "user_id", result.User.ID)

	respondJSON(w, AuthResponse{
		Message: "Login successful",
		User:    toUserResponse(result.User),
		Token:   result.Token,
	}, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Description  Return the profile of the authenticated caller
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MeResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "User no longer exists"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	email, _ := GetUserEmailFromContext(r.Context())
	logger = logger.WithFields(map[string]any{"user_id": userID, "email": email})

	current, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("current user not found")
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load current user", "user_id", userID, "error", err.Error())
		httputil.RespondInternalError(w, err, !h.isProduction)
		return
	}

	respondJSON(w, MeResponse{User: toUserResponse(current)}, http.StatusOK)
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
