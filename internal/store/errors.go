package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrConstraint        = errors.New("constraint violation")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// translate maps gorm's translated driver errors onto the store's taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ErrConstraint
	// the sqlite translator does not cover CHECK failures
	case strings.Contains(err.Error(), "constraint"):
		return ErrConstraint
	default:
		return err
	}
}
