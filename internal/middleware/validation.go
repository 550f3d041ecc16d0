package middleware

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxTitleLen      = 100 // channels/themes/types/disciplines.title VARCHAR(100)
	MaxVideoTitleLen = 250 // videos.title VARCHAR(250)
	MaxPathLen       = 255 // headband, icon, video, thumbnails VARCHAR(255)
	MaxColorLen      = 10  // channels.color VARCHAR(10)
	MaxPasswordLen   = 50  // videos.password VARCHAR(50)
	MaxNameLen       = 150 // owners.username, groups.name VARCHAR(150)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateTitle trims a title and checks it is present and at most max characters.
func ValidateTitle(title string, max int) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if utf8.RuneCountInString(title) > max {
		return "", fmt.Sprintf("title must be at most %d characters", max)
	}
	return title, ""
}

// ValidateName checks owner usernames and group names.
func ValidateName(field, name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", field + " is required"
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", fmt.Sprintf("%s must be at most %d characters", field, MaxNameLen)
	}
	return name, ""
}

// ValidateOptional checks an optional text field against a length limit.
func ValidateOptional(field string, value *string, max int) string {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return fmt.Sprintf("%s must be at most %d characters", field, max)
	}
	return ""
}

// ParseID parses a positive numeric identity from a path parameter.
func ParseID(raw string) (int64, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ParseOptionalID parses a numeric query filter. Empty means 0 ("any").
func ParseOptionalID(field, raw string) (int64, string) {
	if raw == "" {
		return 0, ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, field + " must be a non-negative integer"
	}
	return id, ""
}

// Choices holds the configured code lists videos are validated against.
type Choices struct {
	Cursus []string
	Langs  []string
}

// ValidateCursus accepts an empty code (the default applies) or a configured one.
func (ch Choices) ValidateCursus(code string) string {
	if code == "" || slices.Contains(ch.Cursus, code) {
		return ""
	}
	return fmt.Sprintf("cursus must be one of %s", strings.Join(ch.Cursus, ", "))
}

// ValidateLang accepts an empty language (the default applies) or a configured one.
func (ch Choices) ValidateLang(lang string) string {
	if lang == "" || slices.Contains(ch.Langs, lang) {
		return ""
	}
	return fmt.Sprintf("mainLang must be one of %s", strings.Join(ch.Langs, ", "))
}
