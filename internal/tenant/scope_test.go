package tenant_test

import (
	"testing"

	"go-personnel/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID string
}

func (row) TableName() string { return "mutations" }

func TestEmployeeScope(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "mutations" WHERE company_id = \$1 AND employee_id = \$2`).
		WithArgs("company-1", "emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))

	var rows []row
	err = db.Scopes(tenant.EmployeeScope("company-1", "emp-1")).Find(&rows).Error

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
