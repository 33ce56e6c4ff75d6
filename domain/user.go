package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseUserID accepts the identity provider's uuid subject and returns it in
// canonical lower-case form.
func ParseUserID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("user id is required: %w", ErrInvalidUserID)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidUserID)
	}

	return id.String(), nil
}

func ParseContentID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("content id %q: %w", raw, ErrInvalidInput)
	}

	return id.String(), nil
}
