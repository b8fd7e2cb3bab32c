package middleware

import "fmt"

// ValidateUploadSize rejects payloads above maxBytes. Size comes from the
// multipart part header, so the check runs before any image processing.
func ValidateUploadSize(size, maxBytes int64) error {
	if size > maxBytes {
		return fmt.Errorf("upload of %d bytes exceeds limit of %d", size, maxBytes)
	}
	return nil
}
