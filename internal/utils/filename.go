package utils

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename strips any path components from an uploaded filename
// and reduces it to a safe character set. Returns "" when nothing safe
// remains, which callers must treat as a missing filename.
func SanitizeFilename(name string) string {
	// Browsers on Windows may send backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")

	return name
}

// FileExtension returns the extension of a sanitized filename without
// the leading dot, or "" when the name has none.
func FileExtension(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return strings.ToLower(ext)
}
