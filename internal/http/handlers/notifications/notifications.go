package notifications

import (
	"errors"
	"net/http"

	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/storage"
	"github.com/eduportal/resources-service/internal/utils/response"
)

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Response "Notifications fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/notifications [get]
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		notifications, err := store.ListNotificationsForUser(userID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Notifications fetched successfully", notifications))
	}
}

// UnreadCount returns how many notifications are unread, for the bell badge
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Response "Count fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/notifications/unread [get]
func UnreadCount(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		count, err := store.CountUnreadNotifications(userID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Count fetched successfully", map[string]int{"count": count}))
	}
}

// MarkRead marks one notification as read
// @Summary Mark a notification read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response "Notification marked read"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/notifications/{id}/read [post]
func MarkRead(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		notificationID := r.PathValue("id")
		if notificationID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("notification ID is required")))
			return
		}

		if err := store.MarkNotificationRead(notificationID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Notification marked read", nil))
	}
}

// MarkAllRead marks every notification of the caller as read
// @Summary Mark all notifications read
// @Tags notifications
// @Success 200 {object} response.Response "Notifications marked read"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/notifications/read [post]
func MarkAllRead(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		if err := store.MarkAllNotificationsRead(userID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Notifications marked read", nil))
	}
}
