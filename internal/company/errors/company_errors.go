package companyerrors

import (
	"go-personnel/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A company with this email is already registered",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidRegistrationType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid registration type",
		http.StatusBadRequest,
	)

	ErrRegistrationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company registration not found",
		http.StatusNotFound,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)
)
