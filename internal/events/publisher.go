package events

import (
	"fmt"
	"log/slog"
)

// NotificationStore is the slice of the row store the publisher writes to.
type NotificationStore interface {
	CreateNotification(userID, title, message, notificationType string) (string, error)
}

// Publisher records portal events as notification rows. Delivery is pull:
// clients poll their notification list, nothing is pushed.
type Publisher interface {
	PublishResourcesUploaded(userID, courseName string, uploaded, failed int)
	PublishAnnouncementCreated(userID, title string)
}

// EventPublisher implements the Publisher interface
type EventPublisher struct {
	store NotificationStore
}

func NewEventPublisher(store NotificationStore) *EventPublisher {
	return &EventPublisher{store: store}
}

// PublishResourcesUploaded records the outcome of an upload submission for
// the uploader. A failed write is logged and dropped; notifications are
// best-effort.
func (p *EventPublisher) PublishResourcesUploaded(userID, courseName string, uploaded, failed int) {
	title := "Upload complete"
	message := fmt.Sprintf("%d resources uploaded to %s", uploaded, courseName)
	notificationType := "upload"

	if failed > 0 {
		title = "Upload partially complete"
		message = fmt.Sprintf("%d resources uploaded to %s, %d failed", uploaded, courseName, failed)
		notificationType = "upload_warning"
	}

	if _, err := p.store.CreateNotification(userID, title, message, notificationType); err != nil {
		slog.Error("failed to record upload notification",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}

// PublishAnnouncementCreated records a confirmation for the author.
func (p *EventPublisher) PublishAnnouncementCreated(userID, title string) {
	message := fmt.Sprintf("Announcement %q is now live", title)

	if _, err := p.store.CreateNotification(userID, "Announcement published", message, "announcement"); err != nil {
		slog.Error("failed to record announcement notification",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}
