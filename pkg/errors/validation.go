package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateIRI checks that s is an absolute IRI with a scheme, as used for
// ontology identities, synonym properties and datasource qualifiers.
//
// The rules are deliberately loose: any scheme is accepted (http, https,
// urn, file), but the value must not be empty, must not contain whitespace
// or control characters, and must parse as an absolute URI.
func ValidateIRI(s string) error {
	if s == "" {
		return New(ErrCodeInvalidIRI, "IRI cannot be empty")
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidIRI, "IRI %q contains whitespace or control characters", s)
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return Wrap(ErrCodeInvalidIRI, err, "IRI %q cannot be parsed", s)
	}
	if !u.IsAbs() {
		return New(ErrCodeInvalidIRI, "IRI %q is not absolute", s)
	}
	return nil
}

// ValidateURL checks that a service base URL, such as a ZOOMA mirror,
// uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidateOutputPath validates the path of a file the CLI will write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}
