package repositories

import (
	"strings"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translate turns driver errors into domain kinds. Anything else is wrapped
// and surfaces as an internal error.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound(entity + " not found")
	case isDuplicateKey(err):
		return errs.New(errs.KindConflict, entity+" already exists", err)
	default:
		return errors.Wrapf(err, "%s query failed", entity)
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
