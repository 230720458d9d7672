package courses

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eduportal/resources-service/internal/cache"
	"github.com/eduportal/resources-service/internal/events"
	"github.com/eduportal/resources-service/internal/http/middleware"
	"github.com/eduportal/resources-service/internal/services/uploads"
	"github.com/eduportal/resources-service/internal/storage"
	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/utils/response"
)

// maxMultipartMemory bounds how much of a submission stays in RAM before
// spilling to temp files.
const maxMultipartMemory = 32 << 20

// Upload handles a full course-with-resources submission
// @Summary Create a course and upload its resources
// @Description Create a course row, then upload each attached file sequentially. Partial file failures are reported, not raised.
// @Tags courses
// @Accept mpfd
// @Produce json
// @Param name formData string true "Course name"
// @Param code formData string true "Course code"
// @Param description formData string false "Course description"
// @Param level formData string true "Level (100-500 or graduate)"
// @Param semester formData string true "Semester (first, second, summer)"
// @Param course_type formData string true "Course type (core, elective)"
// @Param course_program formData string true "Course program (general, ai, networking, control)"
// @Param files formData file true "Resource files"
// @Success 201 {object} response.Response "Course created, outcome attached"
// @Failure 400 {object} response.Response "Validation failed"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Course creation failed"
// @Security BearerAuth
// @Router /courses/upload [post]
func Upload(records uploads.RecordStore, blobs uploads.BlobStore, cacheSvc *cache.CacheService, publisher events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid multipart form")))
			return
		}

		input := uploads.Input{
			Course: types.CourseInput{
				Name:          r.FormValue("name"),
				Code:          r.FormValue("code"),
				Description:   r.FormValue("description"),
				InstructorID:  userID,
				Level:         r.FormValue("level"),
				Semester:      r.FormValue("semester"),
				CourseType:    r.FormValue("course_type"),
				CourseProgram: r.FormValue("course_program"),
			},
		}

		var openFiles []io.Closer
		defer func() {
			for _, f := range openFiles {
				f.Close()
			}
		}()

		for _, header := range r.MultipartForm.File["files"] {
			file, err := header.Open()
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("failed to read uploaded file")))
				return
			}
			openFiles = append(openFiles, file)

			input.Files = append(input.Files, uploads.FileInput{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
			})
		}

		workflow := uploads.New(records, blobs)
		outcome, err := workflow.Run(r.Context(), input)
		if err != nil {
			var validationErr *uploads.ValidationError
			switch {
			case errors.Is(err, uploads.ErrAuthenticationRequired):
				response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(err))
			case errors.As(err, &validationErr):
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			default:
				slog.Error("course creation failed", slog.String("error", err.Error()), slog.String("user_id", userID))
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			}
			return
		}

		cacheSvc.InvalidateCourseCaches(r.Context())
		cacheSvc.InvalidateResourceCaches(r.Context())
		publisher.PublishResourcesUploaded(userID, outcome.Course.Name, len(outcome.Resources), len(outcome.Failed))

		slog.Info("Course created with resources",
			slog.String("course_id", outcome.Course.ID),
			slog.Int("uploaded", len(outcome.Resources)),
			slog.Int("failed", len(outcome.Failed)))

		if len(outcome.Failed) > 0 {
			names := make([]string, 0, len(outcome.Failed))
			for _, failed := range outcome.Failed {
				names = append(names, failed.FileName)
			}
			warning := fmt.Sprintf("%d files could not be uploaded", len(outcome.Failed))
			response.WriteJSON(w, http.StatusCreated, response.PartialOK(outcome.Summary(), warning, names, outcome))
			return
		}

		response.WriteJSON(w, http.StatusCreated, response.RequestOK(outcome.Summary(), outcome))
	}
}

// List returns active courses, optionally filtered by instructor
// @Summary List active courses
// @Tags courses
// @Produce json
// @Param instructor query string false "Instructor ID"
// @Success 200 {object} response.Response "Courses fetched successfully"
// @Router /courses [get]
func List(store storage.Storage, cacheSvc *cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The instructor filter bypasses the cache; only the full active
		// list is hot enough to cache.
		if instructorID := r.URL.Query().Get("instructor"); instructorID != "" {
			courses, err := store.ListCoursesByInstructor(instructorID)
			if err != nil {
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusOK, response.RequestOK("Courses fetched successfully", courses))
			return
		}

		courses, err := cacheSvc.GetActiveCourses(r.Context())
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Courses fetched successfully", courses))
	}
}

// Get returns one course by id
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Response "Course fetched successfully"
// @Failure 404 {object} response.Response "Course not found"
// @Router /courses/{id} [get]
func Get(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := r.PathValue("id")
		if courseID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("course ID is required")))
			return
		}

		course, err := store.GetCourseByID(courseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("course not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Course fetched successfully", course))
	}
}

// MyCourses returns the caller's courses with resource counts
// @Summary List the caller's courses
// @Tags courses
// @Produce json
// @Success 200 {object} response.Response "Courses fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /me/courses [get]
func MyCourses(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		courses, err := store.ListCoursesWithResourceCounts(userID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Courses fetched successfully", courses))
	}
}

// Update applies a partial update to a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param patch body types.CoursePatch true "Fields to update"
// @Success 200 {object} response.Response "Course updated successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /courses/{id} [patch]
func Update(store storage.Storage, cacheSvc *cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		courseID := r.PathValue("id")
		if courseID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("course ID is required")))
			return
		}

		var patch types.CoursePatch
		err := json.NewDecoder(r.Body).Decode(&patch)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		validate := validator.New()
		if err := validate.Struct(patch); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		course, err := store.UpdateCourse(courseID, patch)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		cacheSvc.InvalidateCourseCaches(r.Context())
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Course updated successfully", course))
	}
}

// Archive soft-deletes a course by flipping its status
// @Summary Archive a course
// @Tags courses
// @Param id path string true "Course ID"
// @Success 200 {object} response.Response "Course archived successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func Archive(store storage.Storage, cacheSvc *cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		courseID := r.PathValue("id")
		if courseID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("course ID is required")))
			return
		}

		if err := store.ArchiveCourse(courseID); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		cacheSvc.InvalidateCourseCaches(r.Context())
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Course archived successfully", nil))
	}
}
