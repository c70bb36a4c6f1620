package mutation

import (
	"errors"
	"strings"

	mutationerrors "go-personnel/internal/mutation/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mutationerrors.ErrMutationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_mutation_decree" {
		return mutationerrors.ErrDecreeNumberExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_mutation_decree") {
		return mutationerrors.ErrDecreeNumberExists
	}

	return err
}
