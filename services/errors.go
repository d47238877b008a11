package services

import (
	"errors"
	"job-board-api/apperrors"

	"gorm.io/gorm"
)

// notFoundAs gorm.ErrRecordNotFoundをリソース名付きのNotFoundに変換する
func notFoundAs(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
