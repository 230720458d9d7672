package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/validation"
)

// RecordStore is the row-store side of the gateway: the course row must be
// inserted before any resource row referencing it.
type RecordStore interface {
	CreateCourse(in types.CourseInput) (types.Course, error)
	CreateResource(in types.ResourceInput) (types.Resource, error)
}

// BlobStore is the object-store side of the gateway.
type BlobStore interface {
	Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

// State tracks where a workflow instance is. CourseFailed and Completed are
// terminal; UploadingFiles never transitions back to CreatingCourse.
type State string

const (
	StateIdle           State = "idle"
	StateCreatingCourse State = "creating_course"
	StateCourseFailed   State = "course_failed"
	StateUploadingFiles State = "uploading_files"
	StateCompleted      State = "completed"
)

// FileInput is one candidate file. Title and Description are optional; an
// empty Title falls back to the file name without its extension.
type FileInput struct {
	Name        string
	Size        int64
	ContentType string
	Title       string
	Description string
	Content     io.Reader
}

// Input is a full submission: course metadata plus at least one file.
type Input struct {
	Course types.CourseInput
	Files  []FileInput
}

type FailedFile struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// Outcome aggregates one invocation: the created course, the resources
// created in input order, and the files that failed with their reasons.
// Partial failure is not an error; only the course step can fail the run.
type Outcome struct {
	Course    types.Course   `json:"course"`
	Resources []types.Resource `json:"resources"`
	Failed    []FailedFile   `json:"failed_files,omitempty"`
}

// Summary renders the toast line for the outcome.
func (o *Outcome) Summary() string {
	total := len(o.Resources) + len(o.Failed)
	if len(o.Failed) == 0 {
		return fmt.Sprintf("%d resources uploaded", len(o.Resources))
	}
	return fmt.Sprintf("%d of %d resources uploaded", len(o.Resources), total)
}

// ErrAuthenticationRequired is returned when no uploader identity is
// resolvable at workflow start.
var ErrAuthenticationRequired = errors.New("authentication required")

var errNoFiles = errors.New("at least one file is required")

// ValidationError rejects a whole submission before any gateway call.
// FileName is set when a specific file failed the file policy.
type ValidationError struct {
	FileName string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("%s: %s", e.FileName, e.Err.Error())
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CourseCreationError is terminal: the course row could not be inserted and
// no files were attempted.
type CourseCreationError struct {
	Err error
}

func (e *CourseCreationError) Error() string {
	return fmt.Sprintf("failed to create course: %s", e.Err.Error())
}

func (e *CourseCreationError) Unwrap() error { return e.Err }

// Workflow runs one course-with-resources submission. Instances are
// single-use and not safe for concurrent Run calls; create one per
// submission.
type Workflow struct {
	records  RecordStore
	blobs    BlobStore
	validate *validator.Validate
	state    State
}

func New(records RecordStore, blobs BlobStore) *Workflow {
	return &Workflow{
		records:  records,
		blobs:    blobs,
		validate: validator.New(),
		state:    StateIdle,
	}
}

func (w *Workflow) State() State {
	return w.state
}

// Run executes the submission: validate everything up front, create the
// course row, then upload each file in input order. A per-file failure is
// recorded and the loop continues; only course creation aborts the run.
func (w *Workflow) Run(ctx context.Context, in Input) (*Outcome, error) {
	// Fail fast on input, before any network call.
	if in.Course.InstructorID == "" {
		return nil, ErrAuthenticationRequired
	}
	if err := w.validate.Struct(in.Course); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if len(in.Files) == 0 {
		return nil, &ValidationError{Err: errNoFiles}
	}
	for _, file := range in.Files {
		if err := validation.ValidateFile(file.Size, file.ContentType); err != nil {
			return nil, &ValidationError{FileName: file.Name, Err: err}
		}
	}

	w.state = StateCreatingCourse
	course, err := w.records.CreateCourse(in.Course)
	if err != nil {
		w.state = StateCourseFailed
		return nil, &CourseCreationError{Err: err}
	}

	w.state = StateUploadingFiles
	outcome := &Outcome{Course: course}

	// Files are uploaded one at a time, in input order. Sequential by
	// design: keeps per-file error attribution deterministic and avoids
	// hammering the object store from one submission.
	for _, file := range in.Files {
		if err := ctx.Err(); err != nil {
			outcome.Failed = append(outcome.Failed, FailedFile{FileName: file.Name, Reason: err.Error()})
			continue
		}

		resource, err := w.uploadOne(ctx, course, file)
		if err != nil {
			slog.Warn("file upload failed",
				slog.String("course_id", course.ID),
				slog.String("file_name", file.Name),
				slog.String("error", err.Error()))
			outcome.Failed = append(outcome.Failed, FailedFile{FileName: file.Name, Reason: err.Error()})
			continue
		}

		outcome.Resources = append(outcome.Resources, resource)
	}

	w.state = StateCompleted
	return outcome, nil
}

// uploadOne stores one file's bytes, then inserts its resource row. The row
// is never inserted unless the bytes landed first.
func (w *Workflow) uploadOne(ctx context.Context, course types.Course, file FileInput) (types.Resource, error) {
	resourceType := ResourceTypeFor(file.ContentType)
	path := StoragePath(course.ID, resourceType, file.Name)

	storedPath, err := w.blobs.Upload(ctx, path, file.Content, file.Size, file.ContentType)
	if err != nil {
		return types.Resource{}, fmt.Errorf("upload failed: %w", err)
	}

	resource, err := w.records.CreateResource(types.ResourceInput{
		Title:        titleFor(file),
		Description:  file.Description,
		ResourceType: resourceType,
		CourseID:     course.ID,
		UploadedBy:   course.InstructorID,
		FilePath:     storedPath,
		FileName:     file.Name,
		FileSize:     file.Size,
		FileType:     file.ContentType,
	})
	if err != nil {
		// The bytes landed but the row did not. Take the blob back out so
		// it does not linger; if that fails too, the janitor sweeps it.
		if removeErr := w.blobs.Remove(ctx, storedPath); removeErr != nil {
			slog.Warn("orphaned blob left in object store",
				slog.String("path", storedPath),
				slog.String("error", removeErr.Error()))
		}
		return types.Resource{}, fmt.Errorf("resource record failed: %w", err)
	}

	return resource, nil
}
