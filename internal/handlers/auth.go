package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"TASKTRACKER_BACK-END/internal/dto"
	"TASKTRACKER_BACK-END/internal/models"
	"TASKTRACKER_BACK-END/internal/password"
	"TASKTRACKER_BACK-END/internal/store"
	"TASKTRACKER_BACK-END/internal/token"
	"TASKTRACKER_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users store.UserRepository
	codec *token.Codec
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users store.UserRepository, codec *token.Codec) *AuthHandler {
	return &AuthHandler{users: users, codec: codec}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new user account and return a token for instant login
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "All fields are required")
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		writeInternalError(w, "hashing password", err)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Duplicate email", "Email already registered")
			return
		}
		writeInternalError(w, "creating user", err)
		return
	}

	tok, err := h.codec.Issue(user.ID, now)
	if err != nil {
		writeInternalError(w, "issuing token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Message: "Registration successful",
		Token:   tok,
		User:    toUserResponse(user),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email and password are required")
		return
	}

	// Wrong password at login is 400, not 401: no token was presented, the
	// credentials were simply bad. One message for both a missing user and a
	// wrong password so the response does not reveal which emails exist.
	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid credentials", "Invalid email or password")
			return
		}
		writeInternalError(w, "looking up user", err)
		return
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid credentials", "Invalid email or password")
		return
	}

	tok, err := h.codec.Issue(user.ID, time.Now())
	if err != nil {
		writeInternalError(w, "issuing token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   tok,
		User:    toUserResponse(user),
	})
}

// Profile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's public profile
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "User profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{User: toUserResponse(user)})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(u.UpdatedAt),
	}
}

// writeInternalError logs the underlying failure and returns a generic 500
// so store and infrastructure details never reach the client.
func writeInternalError(w http.ResponseWriter, action string, err error) {
	log.Printf("%s: %v", action, err)
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Something went wrong")
}
