package retirement

import (
	"errors"

	retirementerrors "go-personnel/internal/retirement/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return retirementerrors.ErrRetirementNotFound
	}
	return err
}
