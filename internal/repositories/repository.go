package repositories

import (
	stderrors "errors"

	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE; dialects without row locks ignore it.
var lockForUpdate = clause.Locking{Strength: "UPDATE"}

// mapError converts gorm errors into application errors.
func mapError(err error, notFoundMsg, internalMsg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(errors.ErrCodeNotFound, notFoundMsg)
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "record already exists")
	}
	if stderrors.Is(err, gorm.ErrInvalidData) {
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid data")
	}
	return errors.Wrap(err, errors.ErrCodeInternalError, internalMsg)
}

// Transactor runs fn inside a database transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) Transaction(fn func(tx *gorm.DB) error) error {
	return t.db.Transaction(fn)
}
