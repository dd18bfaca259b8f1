package errors

import (
	"net"
	"strings"
	"unicode"
)

// ValidateOutputPath validates an export output path for safety.
// It rejects paths that could be used for traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No path traversal sequences (..)
//   - No backslashes (Windows path injection)
//   - Maximum length of 500 characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "output path cannot contain backslashes")
	}

	return nil
}

// ExportFormats lists the supported export formats.
var ExportFormats = []string{"dot", "svg", "json"}

// ValidateExportFormat validates an export format name.
func ValidateExportFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "export format cannot be empty")
	}
	for _, f := range ExportFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown export format: %q (supported: %s)",
		format, strings.Join(ExportFormats, ", "))
}

// ValidateListenAddr validates a host:port listen address for the
// snapshot server.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid listen address %q", addr)
	}
	return nil
}
