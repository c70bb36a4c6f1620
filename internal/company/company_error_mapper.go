package company

import (
	"errors"

	autherrors "go-personnel/internal/auth/errors"
	companyerrors "go-personnel/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "companies_email_key":
			return companyerrors.ErrCompanyAlreadyExists
		case "users_email_key":
			return autherrors.ErrEmailAlreadyRegistered
		}
	}
	return err
}
