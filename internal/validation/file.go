package validation

import (
	"fmt"
	"math"
	"strconv"
)

// MaxFileSize is the upload ceiling: 300 MiB.
const MaxFileSize int64 = 300 * 1024 * 1024

// AllowedFileTypes is the fixed MIME allow-list for uploads: documents,
// presentations, videos, images, and archives.
var AllowedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"video/mp4",
	"video/avi",
	"video/quicktime",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"application/zip",
	"application/x-rar-compressed",
}

// FileTooLargeError reports a file over the size ceiling. Limit is the
// ceiling in bytes.
type FileTooLargeError struct {
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size exceeds %s", FormatFileSize(e.Limit))
}

// UnsupportedFileTypeError reports a MIME type outside the allow-list.
type UnsupportedFileTypeError struct {
	ContentType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("file type %s is not supported", e.ContentType)
}

// ValidateFile checks a candidate file against the upload policy. Size is
// checked first, then MIME type; only the first failing rule is reported.
// Pure: no I/O, no side effects.
func ValidateFile(size int64, contentType string) error {
	if size > MaxFileSize {
		return &FileTooLargeError{Limit: MaxFileSize}
	}

	for _, allowed := range AllowedFileTypes {
		if contentType == allowed {
			return nil
		}
	}

	return &UnsupportedFileTypeError{ContentType: contentType}
}

// FormatFileSize renders a byte count for humans, e.g. "1.5 MB". Non-positive
// counts render as zero.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[i]
}
