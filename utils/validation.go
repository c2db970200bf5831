package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(strings.TrimSpace(input))

	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")

	return sanitized
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks if the email has a valid format
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	return true, ""
}
