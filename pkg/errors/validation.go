package errors

import (
	"strings"
	"unicode"
)

const maxPackageNameLength = 256

// ValidatePackageName validates a package name used to match repository
// names and to name output files.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., //, backslashes)
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageNameLength {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFileName checks that name can be used as a single file name inside
// an output folder. Scoped npm names such as "@babel/core" fail here.
func ValidateFileName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators: %q", name)
	}
	if name == "." {
		return New(ErrCodeInvalidPath, "file name cannot be %q", name)
	}
	return nil
}

// ValidateURL validates a URL string given on the command line.
// Scheme-less input is accepted because it is normalized to http:// later.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeMalformedURL, "URL contains whitespace or control characters")
		}
	}

	if i := strings.Index(rawURL, "://"); i >= 0 {
		scheme := strings.ToLower(rawURL[:i])
		if scheme != "http" && scheme != "https" {
			return New(ErrCodeUnsupported, "URL must use http or https scheme, got %q", scheme)
		}
	}

	return nil
}
