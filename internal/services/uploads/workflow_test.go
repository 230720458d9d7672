package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/validation"
)

// fakeRecords is an in-memory stand-in for the row store.
type fakeRecords struct {
	failCourse      bool
	failResourceFor map[string]bool // keyed by original file name
	courses         []types.Course
	resources       []types.Resource
	nextID          int
	calls           int
}

func (f *fakeRecords) CreateCourse(in types.CourseInput) (types.Course, error) {
	f.calls++
	if f.failCourse {
		return types.Course{}, errors.New("duplicate key value violates unique constraint")
	}

	f.nextID++
	course := types.Course{
		ID:            fmt.Sprintf("%d", f.nextID),
		Name:          in.Name,
		Code:          in.Code,
		Description:   in.Description,
		InstructorID:  in.InstructorID,
		Level:         in.Level,
		Semester:      in.Semester,
		CourseType:    in.CourseType,
		CourseProgram: in.CourseProgram,
		Status:        types.StatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.courses = append(f.courses, course)
	return course, nil
}

func (f *fakeRecords) CreateResource(in types.ResourceInput) (types.Resource, error) {
	f.calls++
	if f.failResourceFor[in.FileName] {
		return types.Resource{}, errors.New("insert into resources failed")
	}

	f.nextID++
	resource := types.Resource{
		ID:           fmt.Sprintf("%d", f.nextID),
		Title:        in.Title,
		Description:  in.Description,
		ResourceType: in.ResourceType,
		CourseID:     in.CourseID,
		UploadedBy:   in.UploadedBy,
		FilePath:     in.FilePath,
		FileName:     in.FileName,
		FileSize:     in.FileSize,
		FileType:     in.FileType,
		Status:       types.StatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.resources = append(f.resources, resource)
	return resource, nil
}

// fakeBlobs is an in-memory stand-in for the object store. Uploads fail when
// the file's content matches failUploadContent; onUpload runs after each
// successful store, letting tests cancel mid-loop.
type fakeBlobs struct {
	objects           map[string][]byte
	failUploadContent string
	failRemove        bool
	removed           []string
	calls             int
	onUpload          func()
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (f *fakeBlobs) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	f.calls++
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if f.failUploadContent != "" && string(data) == f.failUploadContent {
		return "", errors.New("connection reset by peer")
	}

	f.objects[path] = data
	if f.onUpload != nil {
		f.onUpload()
	}
	return path, nil
}

func (f *fakeBlobs) Remove(ctx context.Context, path string) error {
	f.calls++
	if f.failRemove {
		return errors.New("object store unavailable")
	}
	delete(f.objects, path)
	f.removed = append(f.removed, path)
	return nil
}

func validCourseInput() types.CourseInput {
	return types.CourseInput{
		Name:          "Intro to Testing",
		Code:          "CS999",
		InstructorID:  "42",
		Level:         "100",
		Semester:      "first",
		CourseType:    "core",
		CourseProgram: "general",
	}
}

func fileInput(name string, size int64, contentType string) FileInput {
	return FileInput{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Content:     bytes.NewReader([]byte(name)),
	}
}

func TestWorkflow_RejectsOversizedFileBeforeAnyGatewayCall(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	_, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("validA.pdf", 1024, "application/pdf"),
			fileInput("tooBig.mp4", 301*1024*1024, "video/mp4"),
		},
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.FileName != "tooBig.mp4" {
		t.Errorf("expected failing file to be named, got %q", ve.FileName)
	}

	var tooLarge *validation.FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Errorf("expected FileTooLargeError inside the validation error, got %v", err)
	}

	if records.calls != 0 || blobs.calls != 0 {
		t.Errorf("expected zero gateway calls, got %d record calls and %d blob calls", records.calls, blobs.calls)
	}
	if wf.State() != StateIdle {
		t.Errorf("expected workflow to stay idle, got %s", wf.State())
	}
}

func TestWorkflow_RequiresAuthenticatedUploader(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	course := validCourseInput()
	course.InstructorID = ""

	_, err := wf.Run(context.Background(), Input{
		Course: course,
		Files:  []FileInput{fileInput("a.pdf", 1024, "application/pdf")},
	})

	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if records.calls != 0 || blobs.calls != 0 {
		t.Errorf("expected zero gateway calls, got %d record calls and %d blob calls", records.calls, blobs.calls)
	}
}

func TestWorkflow_RequiresAtLeastOneFile(t *testing.T) {
	wf := New(&fakeRecords{}, newFakeBlobs())

	_, err := wf.Run(context.Background(), Input{Course: validCourseInput()})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestWorkflow_CourseFailureShortCircuits(t *testing.T) {
	records := &fakeRecords{failCourse: true}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files:  []FileInput{fileInput("a.pdf", 1024, "application/pdf")},
	})

	var cce *CourseCreationError
	if !errors.As(err, &cce) {
		t.Fatalf("expected CourseCreationError, got %T: %v", err, err)
	}
	if outcome != nil {
		t.Errorf("expected no outcome on course failure, got %+v", outcome)
	}
	if blobs.calls != 0 {
		t.Errorf("expected no files to be attempted, got %d blob calls", blobs.calls)
	}
	if wf.State() != StateCourseFailed {
		t.Errorf("expected course_failed state, got %s", wf.State())
	}
}

func TestWorkflow_PartialFailureAccumulatesWithoutAborting(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	blobs.failUploadContent = "b.pdf"
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("a.pdf", 1024, "application/pdf"),
			fileInput("b.pdf", 1024, "application/pdf"),
			fileInput("c.pdf", 1024, "application/pdf"),
		},
	})
	if err != nil {
		t.Fatalf("partial failure must not raise an error, got %v", err)
	}

	if len(outcome.Resources) != 2 {
		t.Fatalf("expected 2 successful resources, got %d", len(outcome.Resources))
	}
	// Input order is preserved in the successes list.
	if outcome.Resources[0].FileName != "a.pdf" || outcome.Resources[1].FileName != "c.pdf" {
		t.Errorf("expected successes [a.pdf c.pdf], got [%s %s]",
			outcome.Resources[0].FileName, outcome.Resources[1].FileName)
	}

	if len(outcome.Failed) != 1 {
		t.Fatalf("expected 1 failed file, got %d", len(outcome.Failed))
	}
	if outcome.Failed[0].FileName != "b.pdf" || outcome.Failed[0].Reason == "" {
		t.Errorf("expected b.pdf to fail with a reason, got %+v", outcome.Failed[0])
	}

	if wf.State() != StateCompleted {
		t.Errorf("expected completed state, got %s", wf.State())
	}
}

func TestWorkflow_ResourceRowsReferenceStoredBlobs(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("notes.pdf", 2048, "application/pdf"),
			fileInput("lecture.mp4", 4096, "video/mp4"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, resource := range outcome.Resources {
		if !strings.HasPrefix(resource.FilePath, outcome.Course.ID+"/") {
			t.Errorf("path %q does not start with the course id %q", resource.FilePath, outcome.Course.ID)
		}
		if _, ok := blobs.objects[resource.FilePath]; !ok {
			t.Errorf("resource row %s references path %q with no stored bytes", resource.ID, resource.FilePath)
		}
	}

	if outcome.Resources[0].ResourceType != types.ResourceTypeMaterial {
		t.Errorf("expected notes.pdf to be material, got %s", outcome.Resources[0].ResourceType)
	}
	if outcome.Resources[1].ResourceType != types.ResourceTypeVideo {
		t.Errorf("expected lecture.mp4 to be video, got %s", outcome.Resources[1].ResourceType)
	}
	if !strings.Contains(outcome.Resources[1].FilePath, "/video/") {
		t.Errorf("expected video path segment, got %q", outcome.Resources[1].FilePath)
	}
}

func TestWorkflow_IdenticalNamesGetDistinctPaths(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("week1.pdf", 1024, "application/pdf"),
			fileInput("week1.pdf", 1024, "application/pdf"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(outcome.Resources))
	}

	if outcome.Resources[0].FilePath == outcome.Resources[1].FilePath {
		t.Errorf("expected distinct stored paths for identical names, both got %q", outcome.Resources[0].FilePath)
	}
}

func TestWorkflow_RecordFailureRemovesUploadedBlob(t *testing.T) {
	records := &fakeRecords{failResourceFor: map[string]bool{"b.pdf": true}}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("a.pdf", 1024, "application/pdf"),
			fileInput("b.pdf", 1024, "application/pdf"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.Failed) != 1 || outcome.Failed[0].FileName != "b.pdf" {
		t.Fatalf("expected b.pdf to fail, got %+v", outcome.Failed)
	}
	if len(blobs.removed) != 1 {
		t.Fatalf("expected the uploaded blob to be removed after the row insert failed, removed %v", blobs.removed)
	}
	// Only a.pdf's bytes remain.
	if len(blobs.objects) != 1 {
		t.Errorf("expected exactly one stored object, got %d", len(blobs.objects))
	}
}

func TestWorkflow_RecordFailureLeavesOrphanWhenRemoveFails(t *testing.T) {
	records := &fakeRecords{failResourceFor: map[string]bool{"b.pdf": true}}
	blobs := newFakeBlobs()
	blobs.failRemove = true
	wf := New(records, blobs)

	outcome, err := wf.Run(context.Background(), Input{
		Course: validCourseInput(),
		Files:  []FileInput{fileInput("b.pdf", 1024, "application/pdf")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.Failed) != 1 {
		t.Fatalf("expected the file to be reported failed, got %+v", outcome.Failed)
	}
	// The orphaned blob stays in the store; the janitor owns it from here.
	if len(blobs.objects) != 1 {
		t.Errorf("expected the orphaned blob to remain, got %d objects", len(blobs.objects))
	}
}

func TestWorkflow_CancellationBetweenFiles(t *testing.T) {
	records := &fakeRecords{}
	blobs := newFakeBlobs()
	wf := New(records, blobs)

	ctx, cancel := context.WithCancel(context.Background())
	blobs.onUpload = cancel // cancel after the first file's bytes land

	outcome, err := wf.Run(ctx, Input{
		Course: validCourseInput(),
		Files: []FileInput{
			fileInput("a.pdf", 1024, "application/pdf"),
			fileInput("b.pdf", 1024, "application/pdf"),
			fileInput("c.pdf", 1024, "application/pdf"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The first file's result stands; the rest are recorded as failures.
	if len(outcome.Resources) != 1 || outcome.Resources[0].FileName != "a.pdf" {
		t.Fatalf("expected a.pdf to keep its result, got %+v", outcome.Resources)
	}
	if len(outcome.Failed) != 2 {
		t.Fatalf("expected 2 canceled files, got %d", len(outcome.Failed))
	}
	for _, failed := range outcome.Failed {
		if !strings.Contains(failed.Reason, context.Canceled.Error()) {
			t.Errorf("expected cancellation reason for %s, got %q", failed.FileName, failed.Reason)
		}
	}
}

func TestOutcome_Summary(t *testing.T) {
	full := &Outcome{Resources: make([]types.Resource, 3)}
	if got := full.Summary(); got != "3 resources uploaded" {
		t.Errorf("full success summary = %q", got)
	}

	partial := &Outcome{
		Resources: make([]types.Resource, 1),
		Failed:    []FailedFile{{FileName: "b.pdf", Reason: "connection reset by peer"}},
	}
	if got := partial.Summary(); got != "1 of 2 resources uploaded" {
		t.Errorf("partial summary = %q", got)
	}
}

func TestStoragePath_Shape(t *testing.T) {
	path := StoragePath("17", types.ResourceTypeVideo, "lecture one.mp4")

	parts := strings.SplitN(path, "/", 3)
	if len(parts) != 3 {
		t.Fatalf("expected 3 path segments, got %q", path)
	}
	if parts[0] != "17" || parts[1] != "video" {
		t.Errorf("expected course/type segments, got %q", path)
	}
	if !strings.HasSuffix(parts[2], ".mp4") {
		t.Errorf("expected original extension to be kept, got %q", parts[2])
	}
}

func TestGenerateFileName_NoExtension(t *testing.T) {
	name := GenerateFileName("README")
	if strings.Contains(name, ".") {
		t.Errorf("expected no extension for extensionless input, got %q", name)
	}
}
