package company_test

import (
	"context"
	"testing"

	"go-personnel/internal/company"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (company.Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return company.NewRepository(db), mock
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE LOWER\(email\) = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "is_active"}).
			AddRow(id.String(), "Dinas", "kontak@dinas.go.id", true))

	got, err := repo.GetByEmail(context.Background(), " Kontak@Dinas.go.id ")

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteRegistration(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "company_registrations" WHERE`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteRegistration(ctx, companyID, company.RegistrationTypeNIB))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to delete", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "company_registrations" WHERE`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.DeleteRegistration(ctx, companyID, company.RegistrationTypeNIB)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
