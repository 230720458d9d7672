package types

import "time"

type ResourceType string

const (
	ResourceTypeMaterial ResourceType = "material"
	ResourceTypeVideo    ResourceType = "video"
)

// Row statuses. Deletion is always a status flip, never a DELETE.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

type Course struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	InstructorID  string    `json:"instructor_id"`
	Level         string    `json:"level"`
	Semester      string    `json:"semester"`
	CourseType    string    `json:"course_type"`
	CourseProgram string    `json:"course_program"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CourseInput carries the metadata for a new course. The categorical fields
// must match the values the portal's dropdowns offer.
type CourseInput struct {
	Name          string `json:"name" validate:"required"`
	Code          string `json:"code" validate:"required"`
	Description   string `json:"description"`
	InstructorID  string `json:"instructor_id" validate:"required"`
	Level         string `json:"level" validate:"required,oneof=100 200 300 400 500 graduate"`
	Semester      string `json:"semester" validate:"required,oneof=first second summer"`
	CourseType    string `json:"course_type" validate:"required,oneof=core elective"`
	CourseProgram string `json:"course_program" validate:"required,oneof=general ai networking control"`
}

// CoursePatch is a partial update; nil fields are left untouched.
type CoursePatch struct {
	Name          *string `json:"name,omitempty"`
	Code          *string `json:"code,omitempty"`
	Description   *string `json:"description,omitempty"`
	Level         *string `json:"level,omitempty" validate:"omitempty,oneof=100 200 300 400 500 graduate"`
	Semester      *string `json:"semester,omitempty" validate:"omitempty,oneof=first second summer"`
	CourseType    *string `json:"course_type,omitempty" validate:"omitempty,oneof=core elective"`
	CourseProgram *string `json:"course_program,omitempty" validate:"omitempty,oneof=general ai networking control"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive archived"`
}

type Resource struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	ResourceType ResourceType `json:"resource_type"`
	CourseID     string       `json:"course_id"`
	UploadedBy   string       `json:"uploaded_by"`
	FilePath     string       `json:"file_path"`
	FileName     string       `json:"file_name"`
	FileSize     int64        `json:"file_size"`
	FileType     string       `json:"file_type"`
	Views        int          `json:"views"`
	Downloads    int          `json:"downloads"`
	Status       string       `json:"status"`
	IsPinned     bool         `json:"is_pinned"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ResourceInput is the record inserted after a file's bytes have landed in
// the object store. FilePath must point at the stored object.
type ResourceInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ResourceType ResourceType `json:"resource_type"`
	CourseID     string       `json:"course_id"`
	UploadedBy   string       `json:"uploaded_by"`
	FilePath     string       `json:"file_path"`
	FileName     string       `json:"file_name"`
	FileSize     int64        `json:"file_size"`
	FileType     string       `json:"file_type"`
}

// UploadedCourse is a course joined with its resource count for the
// "my uploads" screen.
type UploadedCourse struct {
	Course
	ResourceCount int `json:"resource_count"`
}

// UploadedResource is a resource joined with its course's name and code.
type UploadedResource struct {
	Resource
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}

// ProgramResource is a resource joined with its course's program, used by
// the materials/videos browse screens that group by program.
type ProgramResource struct {
	Resource
	CourseProgram string `json:"course_program"`
}
