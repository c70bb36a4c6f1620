package employeeerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "Employee not found", http.StatusNotFound)

// Unique constraints.
var (
	ErrEmployeeAlreadyExists       = apperror.New(apperror.CodeConflict, "Employee with the same email already exists", http.StatusConflict)
	ErrEmployeeNumberAlreadyExists = apperror.New(apperror.CodeConflict, "Employee number already exists in this company", http.StatusConflict)
)

func invalid(msg string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidInput, msg, http.StatusBadRequest)
}

var (
	ErrInvalidEmployeeID      = invalid("Invalid employee ID")
	ErrDepartmentNotFound     = invalid("Department not found for this company")
	ErrInvalidDate            = invalid("Invalid date format, expected YYYY-MM-DD")
	ErrBirthDateAfterHireDate = invalid("Birth date must be before hire date")
	ErrInvalidStatusFilter    = invalid("Status must be one of ACTIVE, ON_LEAVE, RETIRED")
)
