package resources

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/eduportal/resources-service/internal/cache"
	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/services/media"
	"github.com/eduportal/resources-service/internal/storage"
	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/utils/response"
)

// downloadURLExpiry is how long a presigned download link stays valid.
const downloadURLExpiry = 15 * time.Minute

// ListByCourse returns the active resources of a course
// @Summary List a course's resources
// @Tags resources
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Response "Resources fetched successfully"
// @Router /courses/{id}/resources [get]
func ListByCourse(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := r.PathValue("id")
		if courseID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("course ID is required")))
			return
		}

		resources, err := store.ListResourcesByCourse(courseID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Resources fetched successfully", resources))
	}
}

// ListByType returns all active resources of one kind across courses
// @Summary List resources by type
// @Tags resources
// @Produce json
// @Param type query string true "Resource type (material, video)"
// @Success 200 {object} response.Response "Resources fetched successfully"
// @Failure 400 {object} response.Response "Unknown resource type"
// @Router /resources [get]
func ListByType(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceType := types.ResourceType(r.URL.Query().Get("type"))
		if resourceType != types.ResourceTypeMaterial && resourceType != types.ResourceTypeVideo {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("type must be material or video")))
			return
		}

		resources, err := store.ListResourcesByType(resourceType)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Resources fetched successfully", resources))
	}
}

// MyUploads returns everything the caller has uploaded, with course context
// @Summary List the caller's uploads
// @Tags resources
// @Produce json
// @Success 200 {object} response.Response "Uploads fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/uploads [get]
func MyUploads(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		uploads, err := store.ListResourcesByUploader(userID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Uploads fetched successfully", uploads))
	}
}

// Count returns the active resource count, optionally for one type
// @Summary Count active resources
// @Tags resources
// @Produce json
// @Param type query string false "Resource type (material, video)"
// @Success 200 {object} response.Response "Count fetched successfully"
// @Router /stats/resources [get]
func Count(cacheSvc *cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceType := types.ResourceType(r.URL.Query().Get("type"))
		if resourceType != "" && resourceType != types.ResourceTypeMaterial && resourceType != types.ResourceTypeVideo {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("type must be material or video")))
			return
		}

		count, err := cacheSvc.GetResourceCount(r.Context(), resourceType)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Count fetched successfully", map[string]int{"count": count}))
	}
}

// Delete soft-deletes a resource by flipping its status
// @Summary Delete a resource
// @Tags resources
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Response "Resource deleted successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Not the uploader"
// @Failure 404 {object} response.Response "Resource not found"
// @Security BearerAuth
// @Router /resources/{id} [delete]
func Delete(store storage.Storage, cacheSvc *cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		resourceID := r.PathValue("id")
		if resourceID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("resource ID is required")))
			return
		}

		resource, err := store.GetResourceByID(resourceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("resource not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if resource.UploadedBy != userID {
			response.WriteJSON(w, http.StatusForbidden, response.GeneralError(errors.New("only the uploader can delete a resource")))
			return
		}

		if err := store.SoftDeleteResource(resourceID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		cacheSvc.InvalidateResourceCaches(r.Context())
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Resource deleted successfully", nil))
	}
}

// View records a view and returns the resource with its public URL
// @Summary View a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Response "Resource fetched successfully"
// @Failure 404 {object} response.Response "Resource not found"
// @Router /resources/{id}/view [post]
func View(store storage.Storage, blobs *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := r.PathValue("id")
		if resourceID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("resource ID is required")))
			return
		}

		resource, err := store.GetResourceByID(resourceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("resource not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		// Counter drift on failure is acceptable, the view still succeeds.
		store.IncrementResourceViews(resourceID)

		payload := map[string]interface{}{
			"resource": resource,
			"url":      blobs.PublicURL(resource.FilePath),
		}
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Resource fetched successfully", payload))
	}
}

// Download records a download and returns a presigned link
// @Summary Download a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Response "Download link created"
// @Failure 404 {object} response.Response "Resource not found"
// @Router /resources/{id}/download [post]
func Download(store storage.Storage, blobs *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := r.PathValue("id")
		if resourceID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("resource ID is required")))
			return
		}

		resource, err := store.GetResourceByID(resourceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("resource not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		downloadURL, err := blobs.PresignedDownloadURL(r.Context(), resource.FilePath, downloadURLExpiry)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		store.IncrementResourceDownloads(resourceID)

		payload := map[string]interface{}{
			"url":        downloadURL.String(),
			"expires_in": int(downloadURLExpiry.Seconds()),
			"file_name":  resource.FileName,
		}
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Download link created", payload))
	}
}
