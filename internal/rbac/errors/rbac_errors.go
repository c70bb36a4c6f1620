package rbacerrors

import (
	"go-personnel/internal/shared/apperror"
	"net/http"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)
	ErrRoleNameExists = apperror.New(
		apperror.CodeConflict,
		"Role name already exists in this company",
		http.StatusConflict,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown permission",
		http.StatusBadRequest,
	)
)
