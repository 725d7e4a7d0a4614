// Package storage manages the server-side upload area for image assets.
package storage

import (
	"path/filepath"
	"strings"
)

// allowedExtensions are the image types accepted for upload
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// SanitizeFilename strips path components and unsafe characters from an
// uploaded filename. Path separators become underscores and anything outside
// [A-Za-z0-9._-] is dropped, so the result is always safe to join onto the
// upload directory. Returns "" when nothing safe remains.
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("\\", " ", "/", " ").Replace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_' || r == ' ':
			return r
		}
		return -1
	}, name)
	// Collapse whitespace runs into single underscores
	name = strings.Join(strings.Fields(name), "_")
	// A name of only dots or underscores would escape or hide the file
	return strings.Trim(name, "._")
}

// AllowedFile reports whether the filename carries an accepted image extension
func AllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
