package uploads

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eduportal/resources-service/internal/types"
)

// ResourceTypeFor derives the resource type from a MIME type: anything under
// video/ is a video, everything else is course material.
func ResourceTypeFor(contentType string) types.ResourceType {
	if strings.HasPrefix(contentType, "video/") {
		return types.ResourceTypeVideo
	}
	return types.ResourceTypeMaterial
}

// StoragePath builds the object-store path for one upload:
// {course_id}/{resource_type}/{unix_millis}-{random_token}.{original_extension}
// The generated file name is collision-resistant, so repeated original names
// within one course/type bucket never clash.
func StoragePath(courseID string, resourceType types.ResourceType, originalName string) string {
	return fmt.Sprintf("%s/%s/%s", courseID, resourceType, GenerateFileName(originalName))
}

// GenerateFileName creates a unique stored name, keeping only the original
// extension.
func GenerateFileName(originalName string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), token)

	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	if ext != "" {
		name += "." + ext
	}

	return name
}

func titleFor(file FileInput) string {
	if file.Title != "" {
		return file.Title
	}
	return strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
}
