package validation

import (
	"errors"
	"testing"
)

func TestValidateFile_SizeBoundary(t *testing.T) {
	// Exactly at the ceiling is accepted.
	if err := ValidateFile(MaxFileSize, "application/pdf"); err != nil {
		t.Fatalf("expected file at the size ceiling to be accepted, got %v", err)
	}

	// One byte over is rejected with FileTooLargeError.
	err := ValidateFile(MaxFileSize+1, "application/pdf")
	if err == nil {
		t.Fatal("expected file over the size ceiling to be rejected")
	}

	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected FileTooLargeError, got %T: %v", err, err)
	}
	if tooLarge.Limit != MaxFileSize {
		t.Fatalf("expected error to carry the ceiling %d, got %d", MaxFileSize, tooLarge.Limit)
	}
}

func TestValidateFile_AllowList(t *testing.T) {
	for _, contentType := range AllowedFileTypes {
		if err := ValidateFile(1024, contentType); err != nil {
			t.Errorf("expected %s to be accepted, got %v", contentType, err)
		}
	}

	err := ValidateFile(1024, "application/x-unknown")
	if err == nil {
		t.Fatal("expected unknown content type to be rejected")
	}

	var unsupported *UnsupportedFileTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFileTypeError, got %T: %v", err, err)
	}
	if unsupported.ContentType != "application/x-unknown" {
		t.Fatalf("expected error to carry the content type, got %q", unsupported.ContentType)
	}
}

func TestValidateFile_SizeCheckedFirst(t *testing.T) {
	// A file that breaks both rules reports only the size error.
	err := ValidateFile(MaxFileSize+1, "application/x-unknown")

	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected size rule to win, got %T: %v", err, err)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{-1, "0 Bytes"},
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{300 * 1024 * 1024, "300 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}

	for _, c := range cases {
		if got := FormatFileSize(c.bytes); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}
