package retirementerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrRetirementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Retirement record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyRetired = apperror.New(
		apperror.CodeConflict,
		"Employee is already retired",
		http.StatusConflict,
	)
	ErrDecreeNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Retirement decree has not been generated yet",
		http.StatusNotFound,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)
)
