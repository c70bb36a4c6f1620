package mutationerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrMutationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Mutation not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeRetired = apperror.New(
		apperror.CodeInvalidState,
		"Mutations cannot be recorded for a retired employee",
		http.StatusConflict,
	)
	ErrDecreeNumberExists = apperror.New(
		apperror.CodeConflict,
		"Decree number already used by another mutation",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid effective_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)
	ErrDepartmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"new_department_id is required for a transfer",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found for this company",
		http.StatusBadRequest,
	)
	ErrPositionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"new_position_title is required for a promotion",
		http.StatusBadRequest,
	)
	ErrRankOrGradeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"new_rank or new_grade is required for a grade change",
		http.StatusBadRequest,
	)
	ErrNoChange = apperror.New(
		apperror.CodeInvalidInput,
		"Mutation does not change anything",
		http.StatusBadRequest,
	)
	ErrNotLatestApplied = apperror.New(
		apperror.CodeInvalidState,
		"Only the most recent applied mutation can be deleted",
		http.StatusConflict,
	)
)
