package storage

import (
	"time"

	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/types/users"
)

type Storage interface {
	// Users
	CreateUser(email, password, fullName string) (string, error)
	GetUserByEmail(email string) (string, string, error)
	GetUserByID(id string) (users.User, error)
	UpdateLastLogin(id string) error
	ListUsers() ([]users.User, error)
	UpdateUser(id string, patch users.UserPatch) (users.User, error)
	DeactivateUser(id string) error

	// Courses
	CreateCourse(in types.CourseInput) (types.Course, error)
	GetCourseByID(id string) (types.Course, error)
	ListActiveCourses() ([]types.Course, error)
	ListCoursesByInstructor(instructorID string) ([]types.Course, error)
	UpdateCourse(id string, patch types.CoursePatch) (types.Course, error)
	ArchiveCourse(id string) error

	// Resources
	CreateResource(in types.ResourceInput) (types.Resource, error)
	GetResourceByID(id string) (types.Resource, error)
	ListResourcesByCourse(courseID string) ([]types.Resource, error)
	ListResourcesByType(resourceType types.ResourceType) ([]types.ProgramResource, error)
	ListResourcesByUploader(uploaderID string) ([]types.UploadedResource, error)
	ListCoursesWithResourceCounts(instructorID string) ([]types.UploadedCourse, error)
	SoftDeleteResource(id string) error
	IncrementResourceViews(id string) error
	IncrementResourceDownloads(id string) error
	CountActiveResources(resourceType types.ResourceType) (int, error)

	// Announcements
	CreateAnnouncement(authorID string, in types.AnnouncementInput) (types.Announcement, error)
	ListActiveAnnouncements() ([]types.Announcement, error)
	UpdateAnnouncementStatus(id, status string) error
	ToggleAnnouncementPin(id string) error
	IncrementAnnouncementViews(id string) error

	// Notifications
	CreateNotification(userID, title, message, notificationType string) (string, error)
	ListNotificationsForUser(userID string) ([]types.Notification, error)
	CountUnreadNotifications(userID string) (int, error)
	MarkNotificationRead(id string) error
	MarkAllNotificationsRead(userID string) error

	// Janitor
	AllResourcePaths() ([]string, error)
	PurgeInactiveResources(olderThan time.Duration) (int64, error)
}
