package auth

import (
	"errors"

	autherrors "go-personnel/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return autherrors.ErrEmailAlreadyRegistered
		case "users_employee_id_key":
			return autherrors.ErrEmployeeAlreadyLinked
		}
	}

	return err
}
