package security

import (
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// ImageTypes are the photo extensions accepted for raffle images.
var ImageTypes = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText strips markup and control bytes from free-form user input.
func SanitizeText(input string) string {
	return SanitizeString(SanitizeHTML(input))
}

// ValidateFileType checks if file extension is allowed
func ValidateFileType(filename string, allowedTypes []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedTypes {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// ValidateFileSize checks if file size is within limit
func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
