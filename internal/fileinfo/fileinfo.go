package fileinfo

import (
	"mime"
	"path/filepath"
	"strings"
)

// Extensions accepted for ingestion. Matches the formats the extractor and
// derivative generator can decode.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".tif":  true,
}

// Common MIME types for the extensions we care about
var commonMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// Extension returns the lowercased file extension, including the dot.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsAllowedImage checks if a file is an ingestible image based on its extension
func IsAllowedImage(filename string) bool {
	return allowedImageExtensions[Extension(filename)]
}

// IsImageFile checks if a file is an image of any kind based on its extension
func IsImageFile(filename string) bool {
	ext := Extension(filename)
	if allowedImageExtensions[ext] {
		return true
	}
	switch ext {
	case ".gif", ".webp", ".bmp", ".heic", ".heif":
		return true
	default:
		return false
	}
}

// DetectContentType determines the content type of a file based on its extension
func DetectContentType(filename string) string {
	ext := Extension(filename)

	// Check our common types first
	if mimeType, ok := commonMimeTypes[ext]; ok {
		return mimeType
	}

	// Fall back to the standard library
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}

	// Default to binary data
	return "application/octet-stream"
}
