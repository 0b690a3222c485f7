package service

import (
	"context"
	"strings"

	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

// uniqueCheck is one step of an ordered, short-circuiting uniqueness validation.
type uniqueCheck struct {
	field   string
	value   string
	exclude string
	changed bool
	exists  func(ctx context.Context, value, excludeID string) (bool, error)
	message string
}

// changedFrom reports whether value differs from stored. Folded comparisons ignore case.
func changedFrom(value, stored string, fold bool) bool {
	if fold {
		return !strings.EqualFold(value, stored)
	}
	return value != stored
}

// runUniqueChecks stops at the first taken value and reports it against its field.
// Empty and unchanged values are skipped.
func runUniqueChecks(ctx context.Context, checks []uniqueCheck) error {
	for _, c := range checks {
		if c.value == "" || !c.changed {
			continue
		}
		taken, err := c.exists(ctx, c.value, c.exclude)
		if err != nil {
			return internalError(err, "failed to validate "+c.field)
		}
		if taken {
			return appErrors.Field(c.field, c.message)
		}
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
