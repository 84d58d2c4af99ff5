package database

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking. Drivers opened with
// TranslateError report gorm sentinels; the message checks cover connections
// opened without it.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint")
}

func isCheckConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}
