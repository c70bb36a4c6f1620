package departmenterrors

import (
	"go-personnel/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentCodeExists = apperror.New(
		apperror.CodeConflict,
		"Department code already exists in this company",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeInvalidState,
		"Department still has employees assigned",
		http.StatusConflict,
	)
)
