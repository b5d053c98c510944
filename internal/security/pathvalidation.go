package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxSanitizedFilenameLen bounds SanitizeFilename's output so a user-supplied
// grid title or label can't produce a pathologically long filename.
const maxSanitizedFilenameLen = 128

// resolveSymlinks resolves path the way filepath.EvalSymlinks does, but
// tolerates path components that don't exist yet — the common case for an
// output file that hasn't been written — by resolving the longest existing
// prefix and rejoining the remainder verbatim, instead of failing outright.
func resolveSymlinks(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dir, base := filepath.Split(filepath.Clean(path))
	dir = filepath.Clean(dir)
	if dir == path {
		return path, nil
	}
	resolvedDir, err := resolveSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

// ValidatePathWithinDirectory checks if a file path is within a safe directory.
// It prevents path traversal attacks by ensuring the resolved path doesn't escape
// the specified safe directory.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	// Clean the path to resolve . and .. components
	cleanPath := filepath.Clean(filePath)

	// Get absolute paths for proper validation
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}

	// Resolve symlinks so a symlink inside safeDir that points outside it
	// (or safeDir itself being a symlink) can't be used to escape the
	// lexical containment check below.
	resolvedPath, err := resolveSymlinks(absPath)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks in path: %w", err)
	}
	resolvedSafeDir, err := resolveSymlinks(absSafeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks in safe directory: %w", err)
	}
	absPath, absSafeDir = resolvedPath, resolvedSafeDir

	// Check if path is within safe directory
	relPath, err := filepath.Rel(absSafeDir, absPath)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}

	// Reject paths that escape the safe directory
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, safeDir)
	}

	return nil
}

// ValidatePathWithinAllowedDirs checks if a file path is within any of the allowed directories.
// Returns nil if the path is valid, or an error describing why it was rejected.
func ValidatePathWithinAllowedDirs(filePath string, allowedDirs []string) error {
	if len(allowedDirs) == 0 {
		return fmt.Errorf("no allowed directories specified")
	}

	for _, dir := range allowedDirs {
		if err := ValidatePathWithinDirectory(filePath, dir); err == nil {
			return nil // Path is valid within this directory
		}
	}

	// Path is not within any allowed directory
	return fmt.Errorf("path must be within one of the allowed directories: %v", allowedDirs)
}

// ValidateExportPath validates a file path for export operations.
// It ensures the path is within either the temp directory or current working directory.
func ValidateExportPath(filePath string) error {
	tempDir := os.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	allowedDirs := []string{tempDir, cwd}
	return ValidatePathWithinAllowedDirs(filePath, allowedDirs)
}

// ValidateOutputPath validates a file path for general output operations
// (CSV, HTML, log files), distinct from ValidateExportPath's plot/grid
// export use. Like ValidateExportPath it restricts writes to the temp
// directory or current working directory.
func ValidateOutputPath(filePath string) error {
	tempDir := os.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	allowedDirs := []string{tempDir, cwd}
	return ValidatePathWithinAllowedDirs(filePath, allowedDirs)
}

// isAllowedFilenameRune reports whether r may appear unescaped in a
// sanitized filename: ASCII letters, digits, '-', '_', and '.'.
func isAllowedFilenameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '-' || r == '_' || r == '.'
}

// SanitizeFilename derives a safe filename component from an arbitrary
// string (e.g. a grid title used to name an export file). Disallowed
// characters are collapsed to a single underscore per run, leading and
// trailing dots/underscores are trimmed, and the result is capped at
// maxSanitizedFilenameLen bytes. An input that sanitizes to nothing
// becomes "unknown".
func SanitizeFilename(name string) string {
	var b strings.Builder
	inRun := false
	for _, r := range name {
		if isAllowedFilenameRune(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}

	result := strings.Trim(b.String(), "._")
	if result == "" {
		return "unknown"
	}
	if len(result) > maxSanitizedFilenameLen {
		result = result[:maxSanitizedFilenameLen]
	}
	return result
}
