// Package redact strips sensitive fragments from strings before they are
// logged or echoed in error responses: connection strings, tokens, file
// paths, and email addresses must never leave the process verbatim.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	PathPlaceholder       = "[REDACTED_PATH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|sqlite|db)://[^@\s]+@`)

	// Passwords and secrets in key=value or key: value form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|secret)([=:\s]['"]?)[^'"&\s]{3,}`)

	// API keys and bearer tokens
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|token|bearer|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// JWTs: three base64url segments starting with the JSON header magic
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Filesystem paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive fragments from s.
func String(s string) string {
	if s == "" {
		return s
	}

	s = dbConnRegex.ReplaceAllString(s, CredentialPlaceholder)
	s = passwordRegex.ReplaceAllString(s, "${1}${2}"+CredentialPlaceholder)
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+KeyPlaceholder)
	s = jwtRegex.ReplaceAllString(s, "[REDACTED_JWT]")
	s = unixPathRegex.ReplaceAllString(s, PathPlaceholder)
	s = emailRegex.ReplaceAllString(s, EmailPlaceholder)

	return s
}

// Error redacts an error's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
