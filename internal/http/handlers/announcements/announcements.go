package announcements

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eduportal/resources-service/internal/events"
	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/storage"
	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/utils/response"
)

// Create publishes a new announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body types.AnnouncementInput true "Announcement"
// @Success 201 {object} response.Response "Announcement created successfully"
// @Failure 400 {object} response.Response "Validation failed"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /announcements [post]
func Create(store storage.Storage, publisher events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		var in types.AnnouncementInput
		err := json.NewDecoder(r.Body).Decode(&in)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(in); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		announcement, err := store.CreateAnnouncement(userID, in)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		publisher.PublishAnnouncementCreated(userID, announcement.Title)

		slog.Info("Announcement created", slog.String("announcement_id", announcement.ID))
		response.WriteJSON(w, http.StatusCreated, response.RequestOK("Announcement created successfully", announcement))
	}
}

// List returns active announcements, pinned first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} response.Response "Announcements fetched successfully"
// @Router /announcements [get]
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcements, err := store.ListActiveAnnouncements()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Announcements fetched successfully", announcements))
	}
}

// UpdateStatus flips an announcement between active and inactive
// @Summary Update an announcement's status
// @Tags announcements
// @Accept json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Response "Announcement updated successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /announcements/{id}/status [patch]
func UpdateStatus(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		announcementID := r.PathValue("id")
		if announcementID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("announcement ID is required")))
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid request body")))
			return
		}

		if body.Status != types.StatusActive && body.Status != types.StatusInactive {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("status must be active or inactive")))
			return
		}

		if err := store.UpdateAnnouncementStatus(announcementID, body.Status); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Announcement updated successfully", nil))
	}
}

// TogglePin flips an announcement's pin flag
// @Summary Pin or unpin an announcement
// @Tags announcements
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Response "Announcement updated successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /announcements/{id}/pin [patch]
func TogglePin(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		announcementID := r.PathValue("id")
		if announcementID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("announcement ID is required")))
			return
		}

		if err := store.ToggleAnnouncementPin(announcementID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Announcement updated successfully", nil))
	}
}

// View records that an announcement was read
// @Summary Record an announcement view
// @Tags announcements
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Response "View recorded"
// @Router /announcements/{id}/view [post]
func View(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcementID := r.PathValue("id")
		if announcementID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("announcement ID is required")))
			return
		}

		if err := store.IncrementAnnouncementViews(announcementID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("View recorded", nil))
	}
}
