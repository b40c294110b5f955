package validation

import (
	"errors"
	"strings"
)

// ValidateName validates a person's display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if len(trimmed) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if len(trimmed) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateJobTitle validates an application's job title
func ValidateJobTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("job title is required")
	}

	if len(trimmed) < 3 {
		return errors.New("job title must be at least 3 characters")
	}

	if len(trimmed) > 200 {
		return errors.New("job title is too long (max 200 characters)")
	}

	return nil
}
