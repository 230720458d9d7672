package users

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/storage"
	"github.com/eduportal/resources-service/internal/types/users"
	"github.com/eduportal/resources-service/internal/utils/jwt"
	"github.com/eduportal/resources-service/internal/utils/password"
	"github.com/eduportal/resources-service/internal/utils/response"
)

// SignUp registers a new portal account
// @Summary Sign up
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.SignUpRequest true "Account details"
// @Success 201 {object} response.Response "User created successfully"
// @Failure 400 {object} response.Response "Validation failed"
// @Failure 409 {object} response.Response "Email already registered"
// @Router /users/signup [post]
func SignUp(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.SignUpRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		hashed, err := password.HashPassword(req.Password)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		userID, err := store.CreateUser(req.Email, hashed, req.FullName)
		if err != nil {
			slog.Error("failed to create user", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusConflict, response.GeneralError(errors.New("email already registered")))
			return
		}

		slog.Info("User created", slog.String("user_id", userID))
		response.WriteJSON(w, http.StatusCreated, response.RequestOK("User created successfully", map[string]string{"id": userID}))
	}
}

// Login exchanges credentials for a token
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.SignInRequest true "Credentials"
// @Success 200 {object} response.Response "Login successful"
// @Failure 400 {object} response.Response "Validation failed"
// @Failure 401 {object} response.Response "Invalid credentials"
// @Router /users/login [post]
func Login(store storage.Storage, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.SignInRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		userID, hashedPassword, err := store.GetUserByEmail(req.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("invalid credentials")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if !password.CheckPasswordHash(req.Password, hashedPassword) {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("invalid credentials")))
			return
		}

		token, err := jwt.CreateToken(userID, jwtSecret)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if err := store.UpdateLastLogin(userID); err != nil {
			slog.Warn("failed to update last login", slog.String("user_id", userID))
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Login successful", map[string]string{"token": token}))
	}
}

// requireAdmin resolves the caller and checks their role. The role lives on
// the user row, so a demoted admin loses access on their next request.
func requireAdmin(store storage.Storage, w http.ResponseWriter, r *http.Request) bool {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
		return false
	}

	caller, err := store.GetUserByID(userID)
	if err != nil {
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return false
	}

	if caller.Role != "admin" {
		response.WriteJSON(w, http.StatusForbidden, response.GeneralError(errors.New("admin access required")))
		return false
	}

	return true
}

// List returns every account, for the admin user screen
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} response.Response "Users fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Admin access required"
// @Security BearerAuth
// @Router /users [get]
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(store, w, r) {
			return
		}

		accounts, err := store.ListUsers()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Users fetched successfully", accounts))
	}
}

// Update applies a partial account update (name, role, status)
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param patch body users.UserPatch true "Fields to update"
// @Success 200 {object} response.Response "User updated successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Admin access required"
// @Security BearerAuth
// @Router /users/{id} [patch]
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(store, w, r) {
			return
		}

		targetID := r.PathValue("id")
		if targetID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("user ID is required")))
			return
		}

		var patch users.UserPatch
		err := json.NewDecoder(r.Body).Decode(&patch)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(patch); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		account, err := store.UpdateUser(targetID, patch)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("user not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("User updated", slog.String("user_id", account.ID))
		response.WriteJSON(w, http.StatusOK, response.RequestOK("User updated successfully", account))
	}
}

// Deactivate soft-deletes an account by flipping its status
// @Summary Deactivate a user
// @Tags users
// @Param id path string true "User ID"
// @Success 200 {object} response.Response "User deactivated successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Admin access required"
// @Security BearerAuth
// @Router /users/{id} [delete]
func Deactivate(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(store, w, r) {
			return
		}

		targetID := r.PathValue("id")
		if targetID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("user ID is required")))
			return
		}

		if err := store.DeactivateUser(targetID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("User deactivated successfully", nil))
	}
}

// Profile returns the caller's account
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} response.Response "Profile fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func Profile(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		user, err := store.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("user not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Profile fetched successfully", user))
	}
}
